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
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ademuri/streaming-history/internal/analysis"
	"github.com/ademuri/streaming-history/internal/history"
)

const dateArgsHelp = `Optionally restricted to a date or date range. Date strings look like 'yyyy', 'yyyy-mm', or 'yyyy-mm-dd'.`

// RangeConfig is the shared input of the commands that take date arguments.
type RangeConfig struct {
	Source            SourceConfig
	SkipBadTimestamps bool
	Range             dateRange
}

func rangeConfigFromViper(args []string) (RangeConfig, error) {
	r, err := parseDateRangeFromArgs(args)
	if err != nil {
		return RangeConfig{}, err
	}
	return RangeConfig{
		Source:            sourceConfigFromViper(),
		SkipBadTimestamps: viper.GetBool("skip-bad-timestamps"),
		Range:             r,
	}, nil
}

var topArtistsConfig AnalyserConfig
var topArtistsCmd = &cobra.Command{
	Use:   "top-artists [from (optional)] [to (optional)]",
	Short: "Ranks artists by minutes played",
	Long:  dateArgsHelp,
	Args:  cobra.RangeArgs(0, 2),
	Run: func(cmd *cobra.Command, args []string) {
		err := printAnalysis(os.Stdout, TopArtistsAnalyser{Config: topArtistsConfig}, args)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

var topTracksConfig AnalyserConfig
var topTracksCmd = &cobra.Command{
	Use:   "top-tracks [from (optional)] [to (optional)]",
	Short: "Ranks songs by minutes played",
	Long:  dateArgsHelp,
	Args:  cobra.RangeArgs(0, 2),
	Run: func(cmd *cobra.Command, args []string) {
		err := printAnalysis(os.Stdout, TopTracksAnalyser{Config: topTracksConfig}, args)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(topArtistsCmd)
	rootCmd.AddCommand(topTracksCmd)

	for _, c := range []struct {
		cmd    *cobra.Command
		config *AnalyserConfig
	}{{topArtistsCmd, &topArtistsConfig}, {topTracksCmd, &topTracksConfig}} {
		c.cmd.Flags().IntVarP(&c.config.NumToReturn, "number", "n", 10, "number of results to return, 0 for all")
		c.cmd.Flags().Float64Var(&c.config.MinMinutes, "min-minutes", 0, "only return results with more minutes than this")
	}
}

func printAnalysis(out io.Writer, analyser Analyser, args []string) error {
	config, err := rangeConfigFromViper(args)
	if err != nil {
		return err
	}
	result, err := getAnalysis(analyser, config)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, result)
	return nil
}

func getAnalysis(analyser Analyser, config RangeConfig) (Analysis, error) {
	events, err := loadEvents(config.Source)
	if err != nil {
		return Analysis{}, err
	}

	if !config.Range.IsZero() {
		events, err = analysis.Between(events, config.Range.Start, config.Range.End, analysis.Options{
			SkipBadTimestamps: config.SkipBadTimestamps,
		})
		if err != nil {
			return Analysis{}, err
		}
	}

	result, err := analyser.GetResults(events)
	if err != nil {
		return Analysis{}, fmt.Errorf("%s: %w", analyser.GetName(), err)
	}
	if !config.Range.IsZero() {
		result.summary = fmt.Sprintf("%s from %s", result.summary, config.Range)
	}
	return result, nil
}

type TopArtistsAnalyser struct {
	Config AnalyserConfig
}

func (t TopArtistsAnalyser) GetName() string {
	return "Top artists"
}

func (t TopArtistsAnalyser) GetResults(events []history.PlayEvent) (Analysis, error) {
	return rankedAnalysis("Artist", "artists", analysis.TopArtists(events, 0), t.Config), nil
}

type TopTracksAnalyser struct {
	Config AnalyserConfig
}

func (t TopTracksAnalyser) GetName() string {
	return "Top tracks"
}

func (t TopTracksAnalyser) GetResults(events []history.PlayEvent) (Analysis, error) {
	return rankedAnalysis("Song", "songs", analysis.TopTracks(events, 0), t.Config), nil
}

// rankedAnalysis turns a full ranking into a table, applying the result limit
// and minimum after counting everything.
func rankedAnalysis(column, noun string, ranked []analysis.Entry, config AnalyserConfig) Analysis {
	var a Analysis
	a.results = [][]string{{"#", column, "Minutes"}}

	var total float64
	for i, e := range ranked {
		total += e.Minutes
		if config.NumToReturn > 0 && i >= config.NumToReturn {
			continue
		}
		if config.MinMinutes > 0 && e.Minutes <= config.MinMinutes {
			continue
		}
		a.results = append(a.results, []string{fmt.Sprint(i + 1), e.Name, formatMinutes(e.Minutes)})
	}

	a.summary = fmt.Sprintf("Found %d %s and %s minutes", len(ranked), noun, formatMinutes(total))
	return a
}
