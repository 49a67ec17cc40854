package config

import (
	"os"
	"strings"
)

// Default values for configuration.
const (
	DefaultTopAuthors  = 5
	DefaultTopHours    = 3
	DefaultTopWeekdays = 7
	DefaultTopWords    = 10
	DefaultLogLevel    = "info"
)

// Environment variable names.
const (
	EnvTranscript  = "CHATSTAT_TRANSCRIPT"
	EnvDateLayouts = "CHATSTAT_DATE_LAYOUTS"
	EnvLogLevel    = "CHATSTAT_LOG_LEVEL"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Formats:     []string{"dash", "bracketed"},
		DateLayouts: []string{"1/2/2006", "1/2/06"},
		Report: ReportConfig{
			TopAuthors:  DefaultTopAuthors,
			TopHours:    DefaultTopHours,
			TopWeekdays: DefaultTopWeekdays,
			TopWords:    DefaultTopWords,
		},
		LogLevel: DefaultLogLevel,
	}
}

// applyEnvironmentOverrides applies environment variable overrides to the config.
func (c *Config) applyEnvironmentOverrides() {
	if path := os.Getenv(EnvTranscript); path != "" {
		c.Transcript = path
	}

	if layouts := os.Getenv(EnvDateLayouts); layouts != "" {
		var parsed []string
		for _, l := range strings.Split(layouts, ",") {
			if l = strings.TrimSpace(l); l != "" {
				parsed = append(parsed, l)
			}
		}
		if len(parsed) > 0 {
			c.DateLayouts = parsed
		}
	}

	if level := os.Getenv(EnvLogLevel); level != "" {
		c.LogLevel = level
	}
}
