package aggregator

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/ccollicutt/chatstat/pkg/parser"
)

var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// Aggregator accumulates tables one record at a time. Each table is updated
// independently; a bad date never stops the author, hour or word counts.
type Aggregator struct {
	layouts []string
	logger  *slog.Logger
	tables  *Tables
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithDateLayouts sets the layouts used to parse record dates.
func WithDateLayouts(layouts ...string) Option {
	return func(a *Aggregator) {
		if len(layouts) > 0 {
			a.layouts = layouts
		}
	}
}

// WithLogger sets the logger used for exclusion messages.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Aggregator) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// New creates an empty aggregator.
func New(opts ...Option) *Aggregator {
	a := &Aggregator{
		layouts: DefaultDateLayouts,
		logger:  slog.New(slog.DiscardHandler),
		tables:  newTables(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Add counts one record.
func (a *Aggregator) Add(rec *parser.Record) {
	t := a.tables
	t.TotalMessages++

	if rec.Author != nil {
		if t.Authors[*rec.Author] == 0 {
			t.TotalAuthors++
		}
		t.Authors[*rec.Author]++
	}

	if hour, err := ParseHour(rec.Time); err == nil {
		t.Hours[hour]++
	} else {
		t.Excluded.Hours++
		a.logger.Debug("excluding record from hour table", "line", rec.Line, "error", err)
	}

	if day, err := ParseWeekday(rec.Date, a.layouts); err == nil {
		t.Weekdays[day.String()]++
	} else {
		t.Excluded.Weekdays++
		a.logger.Debug("excluding record from weekday table", "line", rec.Line, "error", err)
	}

	if rec.Body != "" {
		for _, word := range wordPattern.FindAllString(strings.ToLower(rec.Body), -1) {
			t.Words[word]++
		}
	}
}

// Tables returns a snapshot of the tables accumulated so far.
func (a *Aggregator) Tables() *Tables {
	return a.tables.clone()
}

// Aggregate computes the tables for a record sequence.
func Aggregate(records []parser.Record, opts ...Option) *Tables {
	a := New(opts...)
	for i := range records {
		a.Add(&records[i])
	}
	return a.tables
}

// FromSource drains src and computes its tables without holding every
// record in memory.
func FromSource(ctx context.Context, src parser.RecordSource, opts ...Option) (*Tables, error) {
	a := New(opts...)
	for {
		rec, err := src.Next(ctx)
		if err == io.EOF {
			return a.tables, nil
		}
		if err != nil {
			return nil, fmt.Errorf("reading records: %w", err)
		}
		a.Add(rec)
	}
}
