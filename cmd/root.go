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
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/ademuri/streaming-history/internal/history"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "streaming-history",
	Short: "Summarizes a streaming history export",
	Long: `Reads every export file in the data directory, prints total listening
time and the top artists and songs, and writes a chart of minutes played per
month to the output directory. Running without a subcommand is the same as
running 'summary'.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		err := runSummary(os.Stdout, summaryConfigFromViper())
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default is $HOME/.streaming-history.yaml)")

	var dataDir string
	rootCmd.PersistentFlags().StringVarP(
		&dataDir, "data", "d", "./data", "Directory containing the streaming history export")
	viper.BindPFlag("data", rootCmd.PersistentFlags().Lookup("data"))

	var outputDir string
	rootCmd.PersistentFlags().StringVarP(
		&outputDir, "output", "o", "./output", "Directory to write the chart to")
	viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))

	var extension string
	rootCmd.PersistentFlags().StringVar(
		&extension, "extension", history.DefaultExtension, "Only read files with this extension")
	viper.BindPFlag("extension", rootCmd.PersistentFlags().Lookup("extension"))

	var top int
	rootCmd.PersistentFlags().IntVar(&top, "top", 10, "Number of artists and songs in the summary")
	viper.BindPFlag("top", rootCmd.PersistentFlags().Lookup("top"))

	var skipBadTimestamps bool
	rootCmd.PersistentFlags().BoolVar(&skipBadTimestamps, "skip-bad-timestamps", false,
		"Log and skip records whose endTime can't be parsed, instead of failing")
	viper.BindPFlag("skip-bad-timestamps", rootCmd.PersistentFlags().Lookup("skip-bad-timestamps"))

	var progress bool
	rootCmd.PersistentFlags().BoolVar(&progress, "progress", false, "Show a progress bar while reading files")
	viper.BindPFlag("progress", rootCmd.PersistentFlags().Lookup("progress"))

	var verbose bool
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".streaming-history" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".streaming-history")
	}

	// STREAMING_HISTORY_DATA, STREAMING_HISTORY_SKIP_BAD_TIMESTAMPS, ...
	viper.SetEnvPrefix("streaming_history")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// If a config file is found, read it in.
	err := viper.ReadInConfig()

	slog.SetDefault(newLogger(viper.GetBool("verbose")))
	if err == nil {
		slog.Debug("using config file", "path", viper.ConfigFileUsed())
	}
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
