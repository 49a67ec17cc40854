// Package output provides formatting and output generation for chat statistics.
package output

import (
	"time"

	"github.com/ccollicutt/chatstat/pkg/aggregator"
	"github.com/ccollicutt/chatstat/pkg/parser"
)

// Report is the complete analysis output.
type Report struct {
	// Summary provides the headline counts.
	Summary Summary `json:"summary"`

	// Authors, Hours, Weekdays and Words are ranked by count, then key.
	Authors  []aggregator.Entry[string] `json:"authors"`
	Hours    []aggregator.Entry[int]    `json:"hours"`
	Weekdays []aggregator.Entry[string] `json:"weekdays"`
	Words    []aggregator.Entry[string] `json:"words"`

	// Diagnostics records what was skipped or excluded.
	Diagnostics Diagnostics `json:"diagnostics"`

	// Metadata provides context about the analysis.
	Metadata Metadata `json:"metadata"`
}

// Summary provides the headline counts.
type Summary struct {
	// TotalMessages is the number of records parsed.
	TotalMessages int `json:"total_messages"`

	// TotalParticipants is the number of distinct authors.
	TotalParticipants int `json:"total_participants"`

	// SystemMessages is the number of records without an author.
	SystemMessages int `json:"system_messages"`
}

// Diagnostics collects recoverable problems from parsing and aggregation.
type Diagnostics struct {
	Parse    parser.Stats        `json:"parse"`
	Excluded aggregator.Excluded `json:"excluded"`
}

// Metadata provides context about the analysis run.
type Metadata struct {
	// Source is the transcript that was analyzed.
	Source string `json:"source"`

	// ConfigFile is the configuration file used, if any.
	ConfigFile string `json:"config_file,omitempty"`

	// AnalyzedAt is when the analysis finished.
	AnalyzedAt time.Time `json:"analyzed_at"`

	// Duration is how long the analysis took.
	Duration time.Duration `json:"duration"`
}

// ReportOptions controls report construction. Zero limits keep every entry.
type ReportOptions struct {
	TopAuthors  int
	TopHours    int
	TopWeekdays int
	TopWords    int

	Source     string
	ConfigFile string
	StartedAt  time.Time
}

// NewReport creates a Report from aggregate tables and parse statistics.
func NewReport(tables *aggregator.Tables, stats parser.Stats, opts ReportOptions) *Report {
	authored := 0
	for _, c := range tables.Authors {
		authored += c
	}

	now := time.Now()
	report := &Report{
		Summary: Summary{
			TotalMessages:     tables.TotalMessages,
			TotalParticipants: tables.TotalAuthors,
			SystemMessages:    tables.TotalMessages - authored,
		},
		Authors:  tables.TopAuthors(opts.TopAuthors),
		Hours:    tables.TopHours(opts.TopHours),
		Weekdays: tables.TopWeekdays(opts.TopWeekdays),
		Words:    tables.TopWords(opts.TopWords),
		Diagnostics: Diagnostics{
			Parse:    stats,
			Excluded: tables.Excluded,
		},
		Metadata: Metadata{
			Source:     opts.Source,
			ConfigFile: opts.ConfigFile,
			AnalyzedAt: now,
		},
	}

	if !opts.StartedAt.IsZero() {
		report.Metadata.Duration = now.Sub(opts.StartedAt)
	}

	return report
}

// HasWarnings returns true if any line was dropped or malformed, or any
// record was excluded from a table.
func (r *Report) HasWarnings() bool {
	return r.Diagnostics.Parse.HasWarnings() || r.Diagnostics.Excluded.Total() > 0
}
