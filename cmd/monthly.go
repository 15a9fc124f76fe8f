/*
Copyright 2020 Google LLC

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ademuri/streaming-history/internal/analysis"
	"github.com/ademuri/streaming-history/internal/chart"
	"github.com/ademuri/streaming-history/internal/history"
)

var monthlyChartPath string
var monthlyCmd = &cobra.Command{
	Use:   "monthly [from (optional)] [to (optional)]",
	Short: "Lists minutes played per month",
	Long:  dateArgsHelp,
	Args:  cobra.RangeArgs(0, 2),
	Run: func(cmd *cobra.Command, args []string) {
		analyser := MonthlyAnalyser{
			SkipBadTimestamps: viper.GetBool("skip-bad-timestamps"),
			ChartPath:         monthlyChartPath,
		}
		err := printAnalysis(os.Stdout, analyser, args)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(monthlyCmd)

	monthlyCmd.Flags().StringVar(&monthlyChartPath, "chart", "", "Also render the series as a bar chart at this path")
}

type MonthlyAnalyser struct {
	SkipBadTimestamps bool

	// If set, the series is also plotted here.
	ChartPath string
}

func (m MonthlyAnalyser) GetName() string {
	return "Minutes per month"
}

func (m MonthlyAnalyser) GetResults(events []history.PlayEvent) (Analysis, error) {
	var a Analysis
	summary, err := analysis.Summarize(events, analysis.Options{SkipBadTimestamps: m.SkipBadTimestamps})
	if err != nil {
		return a, err
	}

	if m.ChartPath != "" {
		if err := chart.MonthlyBarChart(summary.Monthly, m.ChartPath); err != nil {
			return a, err
		}
	}

	a.results = [][]string{{"Month", "Minutes"}}
	var total float64
	for _, month := range analysis.SortedMonths(summary.Monthly) {
		minutes := summary.Monthly[month]
		total += minutes
		a.results = append(a.results, []string{month, formatMinutes(minutes)})
	}

	a.summary = fmt.Sprintf("Found %d months and %s minutes", len(summary.Monthly), formatMinutes(total))
	if summary.Skipped > 0 {
		a.summary += fmt.Sprintf(" (skipped %d records with a malformed endTime)", summary.Skipped)
	}
	return a, nil
}
