package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/ccollicutt/chatstat/pkg/parser"
)

// Load reads and validates a configuration file. Files ending in .toml are
// decoded as TOML, everything else as YAML.
func Load(_ context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := decode(path, data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyEnvironmentOverrides()

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault loads path, or returns the validated defaults (with
// environment overrides) when path is empty.
func LoadOrDefault(ctx context.Context, path string) (*Config, error) {
	if path != "" {
		return Load(ctx, path)
	}

	cfg := DefaultConfig()
	cfg.applyEnvironmentOverrides()
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		_, err := toml.Decode(string(data), cfg)
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks a configuration for errors.
func Validate(cfg *Config) error {
	if len(cfg.Formats) == 0 {
		return errors.New("formats: at least one format is required")
	}

	seen := make(map[string]bool)
	for i, name := range cfg.Formats {
		if parser.LookupFormat(name) == nil {
			return fmt.Errorf("formats[%d]: unknown format %q (must be one of %s)",
				i, name, strings.Join(parser.FormatNames(), ", "))
		}
		if seen[name] {
			return fmt.Errorf("formats[%d]: duplicate format %q", i, name)
		}
		seen[name] = true
	}

	if len(cfg.DateLayouts) == 0 {
		return errors.New("date_layouts: at least one layout is required")
	}
	for i, layout := range cfg.DateLayouts {
		if strings.TrimSpace(layout) == "" {
			return fmt.Errorf("date_layouts[%d]: layout is empty", i)
		}
	}

	if err := validateReport(&cfg.Report); err != nil {
		return fmt.Errorf("report: %w", err)
	}

	switch strings.ToLower(cfg.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level: invalid level %q (must be debug, info, warn, or error)", cfg.LogLevel)
	}

	return nil
}

func validateReport(r *ReportConfig) error {
	limits := []struct {
		name  string
		value int
	}{
		{"top_authors", r.TopAuthors},
		{"top_hours", r.TopHours},
		{"top_weekdays", r.TopWeekdays},
		{"top_words", r.TopWords},
	}
	for _, l := range limits {
		if l.value < 0 {
			return fmt.Errorf("%s must be >= 0, got %d", l.name, l.value)
		}
	}
	return nil
}

// ParserFormats resolves the configured format names.
func (c *Config) ParserFormats() []*parser.Format {
	formats := make([]*parser.Format, 0, len(c.Formats))
	for _, name := range c.Formats {
		if f := parser.LookupFormat(name); f != nil {
			formats = append(formats, f)
		}
	}
	return formats
}
