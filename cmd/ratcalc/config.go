package main

import (
	"os"
	"path/filepath"

	"github.com/magiconair/properties"
)

// config is the driver configuration. Options on the command line override
// the config file.
type config struct {
	// Prompt is the interactive prompt.
	Prompt string
	// Color enables colored error messages.
	Color bool
	// History is the file for interactive line history. Empty disables
	// history.
	History string
	// Caret enables drawing a caret under the column of an error in
	// interactive sessions.
	Caret bool
}

// defaultConfigPath returns the config file used when -c is not given.
func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "ratcalc", "ratcalc.properties")
}

func defaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".ratcalc_history")
}

// loadConfig reads the config file at path. If must is false, a missing file
// yields the defaults.
func loadConfig(path string, must bool) (config, error) {
	if path == "" {
		return configFrom(properties.NewProperties()), nil
	}
	p, err := properties.LoadFiles([]string{path}, properties.UTF8, !must)
	if err != nil {
		return config{}, err
	}
	return configFrom(p), nil
}

func configFrom(p *properties.Properties) config {
	return config{
		Prompt:  p.GetString("prompt", "> "),
		Color:   p.GetBool("color", true),
		History: os.ExpandEnv(p.GetString("history", defaultHistoryPath())),
		Caret:   p.GetBool("caret", true),
	}
}
