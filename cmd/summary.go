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
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/ademuri/streaming-history/internal/analysis"
	"github.com/ademuri/streaming-history/internal/chart"
)

type SummaryConfig struct {
	Source            SourceConfig
	OutputDir         string
	Format            string
	TopN              int
	SkipBadTimestamps bool
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Prints listening totals and top artists and songs, and charts minutes per month",
	Long: `Reads the export once and computes total minutes played, the top artists
and songs by play time, and minutes played per month. The monthly series is
written to <output>/playtime_per_month.png. Nothing is printed or written if any
file or timestamp fails to parse.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		err := runSummary(os.Stdout, summaryConfigFromViper())
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)

	var format string
	summaryCmd.Flags().StringVar(&format, "format", "text", "Output format: 'text' or 'yaml'")
	viper.BindPFlag("format", summaryCmd.Flags().Lookup("format"))
}

func summaryConfigFromViper() SummaryConfig {
	format := viper.GetString("format")
	if format == "" {
		format = "text"
	}
	return SummaryConfig{
		Source:            sourceConfigFromViper(),
		OutputDir:         viper.GetString("output"),
		Format:            format,
		TopN:              viper.GetInt("top"),
		SkipBadTimestamps: viper.GetBool("skip-bad-timestamps"),
	}
}

func runSummary(out io.Writer, config SummaryConfig) error {
	if config.Format != "text" && config.Format != "yaml" {
		return fmt.Errorf("unknown format %q, expected 'text' or 'yaml'", config.Format)
	}

	events, err := loadEvents(config.Source)
	if err != nil {
		return err
	}

	summary, err := analysis.Summarize(events, analysis.Options{
		TopN:              config.TopN,
		SkipBadTimestamps: config.SkipBadTimestamps,
	})
	if err != nil {
		return fmt.Errorf("analyzing history: %w", err)
	}
	if summary.Skipped > 0 {
		slog.Warn("left events out of the monthly chart", "skipped", summary.Skipped)
	}

	chartPath := filepath.Join(config.OutputDir, chart.FileName)
	if err := chart.MonthlyBarChart(summary.Monthly, chartPath); err != nil {
		return fmt.Errorf("plotting: %w", err)
	}
	slog.Debug("wrote chart", "path", chartPath, "months", len(summary.Monthly))

	if config.Format == "yaml" {
		encoder := yaml.NewEncoder(out)
		encoder.SetIndent(2)
		if err := encoder.Encode(summary); err != nil {
			return fmt.Errorf("encoding summary: %w", err)
		}
		return encoder.Close()
	}
	return summary.WriteText(out)
}
