package parser

import (
	"log/slog"
	"strings"
)

const byteOrderMark = "\ufeff"

// Parser reconstructs records from transcript lines. It holds at most one
// pending record: lines are pushed with Feed and the last record is flushed
// with Finish. A Parser is single-use; create a new one for every transcript.
type Parser struct {
	classifier *Classifier
	logger     *slog.Logger

	pending *Record
	stats   Stats
	done    bool
}

// Option configures a Parser.
type Option func(*Parser)

// WithFormats restricts the parser to the given formats.
func WithFormats(formats ...*Format) Option {
	return func(p *Parser) {
		if len(formats) > 0 {
			p.classifier = NewClassifier(formats...)
		}
	}
}

// WithLogger sets the logger used for parse warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// New creates a parser with the default formats.
func New(opts ...Option) *Parser {
	p := &Parser{
		classifier: defaultClassifier,
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Feed processes one line. If the line starts a new message, the previously
// pending record is finalized and returned with ok set to true.
//
// A start line whose fields cannot be extracted is counted as malformed and
// treated as a continuation of the pending record. Continuations that arrive
// before any message are dropped. Feed after Finish is a no-op.
func (p *Parser) Feed(line string) (rec *Record, ok bool) {
	if p.done {
		return nil, false
	}

	p.stats.Lines++
	lineNum := p.stats.Lines
	if lineNum == 1 {
		line = strings.TrimPrefix(line, byteOrderMark)
	}

	if f := p.classifier.Match(line); f != nil {
		fields, err := extractWith(f, line, true)
		if err == nil {
			rec, ok = p.finalize()
			p.start(fields, lineNum)
			return rec, ok
		}
		p.malformed(lineNum, line, err)
	}

	if p.pending == nil {
		p.stats.Dropped++
		p.logger.Debug("dropping line outside any message", "line", lineNum)
		return nil, false
	}

	p.pending.Fragments = append(p.pending.Fragments, line)
	p.stats.Continuations++
	return nil, false
}

// Finish flushes the pending record, if any. The parser accepts no further lines.
func (p *Parser) Finish() (*Record, bool) {
	if p.done {
		return nil, false
	}
	p.done = true
	return p.finalize()
}

// Stats returns the counters accumulated so far.
func (p *Parser) Stats() Stats {
	s := p.stats
	s.Warnings = append([]Warning(nil), p.stats.Warnings...)
	return s
}

func (p *Parser) start(fields Fields, lineNum int) {
	p.stats.MessageStarts++
	p.pending = &Record{
		Date:      fields.Date,
		Time:      fields.Time,
		Author:    fields.Author,
		Fragments: []string{fields.Body},
		Line:      lineNum,
		Format:    fields.Format,
	}
}

func (p *Parser) finalize() (*Record, bool) {
	if p.pending == nil {
		return nil, false
	}
	rec := p.pending
	rec.Body = joinFragments(rec.Fragments)
	p.pending = nil
	p.stats.Records++
	return rec, true
}

func (p *Parser) malformed(lineNum int, line string, err error) {
	p.stats.Malformed++
	if len(p.stats.Warnings) < MaxWarnings {
		p.stats.Warnings = append(p.stats.Warnings, Warning{
			Line: lineNum,
			Text: line,
			Err:  err.Error(),
		})
	}
	p.logger.Warn("treating malformed message line as continuation",
		"line", lineNum, "error", err)
}

// ParseLines parses an in-memory transcript.
func ParseLines(lines []string, opts ...Option) ([]Record, Stats) {
	p := New(opts...)
	var records []Record
	for _, line := range lines {
		if rec, ok := p.Feed(line); ok {
			records = append(records, *rec)
		}
	}
	if rec, ok := p.Finish(); ok {
		records = append(records, *rec)
	}
	return records, p.Stats()
}
