// Package config provides configuration loading and validation for chatstat.
package config

// Config is the root configuration structure loaded from YAML or TOML.
type Config struct {
	// Transcript is the default transcript path. A path given on the
	// command line takes precedence.
	Transcript string `yaml:"transcript,omitempty" toml:"transcript"`

	// Formats lists the transcript formats that may start a message,
	// in priority order. See parser.FormatNames.
	Formats []string `yaml:"formats,omitempty" toml:"formats"`

	// DateLayouts are Go time layouts tried in order when deriving weekdays.
	DateLayouts []string `yaml:"date_layouts,omitempty" toml:"date_layouts"`

	// Report controls how many rows each ranked table shows.
	Report ReportConfig `yaml:"report" toml:"report"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level,omitempty" toml:"log_level"`
}

// ReportConfig limits the ranked tables in a report.
// Zero shows every entry.
type ReportConfig struct {
	TopAuthors  int `yaml:"top_authors" toml:"top_authors"`
	TopHours    int `yaml:"top_hours" toml:"top_hours"`
	TopWeekdays int `yaml:"top_weekdays" toml:"top_weekdays"`
	TopWords    int `yaml:"top_words" toml:"top_words"`
}
