package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// cliSettings is ratingctl's own operator-facing settings file —
// distinct from the engine's internal/ratingengine/config.Config
// (spec.md §4.1 tuning knobs, loaded via yaml.v2). DefaultVenue is what
// the teams and swaps subcommands use when --venue is omitted.
// StoreBackend is parsed and defaults to "memory", but no ratingctl
// subcommand reads it: models are always loaded from and saved to the
// --model file.
type cliSettings struct {
	StoreBackend string `yaml:"store_backend"` // "memory", "redis", or "postgres"
	DefaultVenue string `yaml:"default_venue"`
}

func defaultCLISettings() *cliSettings {
	return &cliSettings{StoreBackend: "memory"}
}

func loadCLISettings(path string) (*cliSettings, error) {
	settings := defaultCLISettings()
	if path == "" {
		return settings, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ratingctl settings: %w", err)
	}
	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("parse ratingctl settings: %w", err)
	}
	return settings, nil
}

// resolveVenue returns venue if set, else the settings file's default,
// else an error — teams and swaps both need a venue from somewhere.
func resolveVenue(venue string, settings *cliSettings) (string, error) {
	if venue != "" {
		return venue, nil
	}
	if settings.DefaultVenue != "" {
		return settings.DefaultVenue, nil
	}
	return "", fmt.Errorf("no --venue given and no default_venue in --settings")
}
