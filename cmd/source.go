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

	"github.com/k0kubun/go-ansi"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/viper"

	"github.com/ademuri/streaming-history/internal/history"
)

// SourceConfig says where to read the listening history from.
type SourceConfig struct {
	DataDir   string
	Extension string
	Progress  bool
}

func sourceConfigFromViper() SourceConfig {
	return SourceConfig{
		DataDir:   viper.GetString("data"),
		Extension: viper.GetString("extension"),
		Progress:  viper.GetBool("progress"),
	}
}

// loadEvents reads the whole export once. The directory is checked before
// anything else is done.
func loadEvents(config SourceConfig) ([]history.PlayEvent, error) {
	loader := &history.Loader{Dir: config.DataDir, Extension: config.Extension}
	if err := loader.Check(); err != nil {
		return nil, err
	}

	files, err := loader.Files()
	if err != nil {
		return nil, err
	}
	slog.Debug("found history files", "dir", config.DataDir, "files", len(files))

	var bar *progressbar.ProgressBar
	if config.Progress && len(files) > 0 {
		bar = newProgressBar(len(files))
	}
	loader.OnFile = func(path string, events int) {
		slog.Debug("read history file", "file", path, "events", events)
		if bar != nil {
			bar.Add(1)
		}
	}

	events, err := loader.Load()
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		return nil, fmt.Errorf("loading history: %w", err)
	}
	slog.Debug("loaded history", "events", len(events))
	return events, nil
}

func newProgressBar(files int) *progressbar.ProgressBar {
	return progressbar.NewOptions(
		files,
		progressbar.OptionSetWriter(ansi.NewAnsiStderr()),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetTheme(progressbar.ThemeASCII),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetDescription("[cyan]Reading history files...[reset]"),
	)
}
