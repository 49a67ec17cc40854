package output

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/ccollicutt/chatstat/pkg/aggregator"
)

const rule = "=================================================="

// TextFormatter formats reports as human-readable text.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the report as text.
func (f *TextFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	if f.opts.Quiet {
		return f.formatQuiet(report, w)
	}
	return f.formatFull(report, w)
}

func (f *TextFormatter) formatQuiet(report *Report, w io.Writer) error {
	_, err := fmt.Fprintf(w, "chatstat: %d messages, %d participants, %d warnings\n",
		report.Summary.TotalMessages,
		report.Summary.TotalParticipants,
		warningCount(report))
	return err
}

func (f *TextFormatter) formatFull(report *Report, w io.Writer) error {
	var b strings.Builder

	b.WriteString(rule + "\n")
	b.WriteString("CHAT ANALYSIS REPORT\n")
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "Total Messages: %d\n", report.Summary.TotalMessages)
	fmt.Fprintf(&b, "Total Participants: %d\n", report.Summary.TotalParticipants)
	b.WriteString("\n")

	fmt.Fprintf(&b, "Top %d Most Active Participants:\n", len(report.Authors))
	width := keyWidth(report.Authors)
	for i, e := range report.Authors {
		fmt.Fprintf(&b, "%d. %s : %d messages\n", i+1, runewidth.FillRight(e.Key, width), e.Count)
	}
	b.WriteString("\n")

	b.WriteString("Most Active Hours:\n")
	for _, e := range report.Hours {
		fmt.Fprintf(&b, "%d:00 - %d messages\n", e.Key, e.Count)
	}
	b.WriteString("\n")

	b.WriteString("Most Active Days:\n")
	width = keyWidth(report.Weekdays)
	for _, e := range report.Weekdays {
		fmt.Fprintf(&b, "%s : %d messages\n", runewidth.FillRight(e.Key, width), e.Count)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "Top %d Most Used Words:\n", len(report.Words))
	width = keyWidth(report.Words)
	for _, e := range report.Words {
		fmt.Fprintf(&b, "%s : %d times\n", runewidth.FillRight(e.Key, width), e.Count)
	}

	if f.opts.Verbose {
		f.formatDiagnostics(report, &b)
	} else if n := warningCount(report); n > 0 {
		fmt.Fprintf(&b, "\n%d warnings (use --verbose for details)\n", n)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func (f *TextFormatter) formatDiagnostics(report *Report, b *strings.Builder) {
	p := report.Diagnostics.Parse
	ex := report.Diagnostics.Excluded

	b.WriteString("\n---\n")
	fmt.Fprintf(b, "Source: %s\n", report.Metadata.Source)
	fmt.Fprintf(b, "Lines read: %d\n", p.Lines)
	fmt.Fprintf(b, "Message starts: %d\n", p.MessageStarts)
	fmt.Fprintf(b, "Continuation lines: %d\n", p.Continuations)
	fmt.Fprintf(b, "System messages: %d\n", report.Summary.SystemMessages)
	fmt.Fprintf(b, "Dropped lines: %d\n", p.Dropped)
	fmt.Fprintf(b, "Malformed lines: %d\n", p.Malformed)
	fmt.Fprintf(b, "Excluded from hours: %d\n", ex.Hours)
	fmt.Fprintf(b, "Excluded from weekdays: %d\n", ex.Weekdays)
	fmt.Fprintf(b, "Duration: %s\n", report.Metadata.Duration.Round(time.Millisecond))

	for _, warn := range p.Warnings {
		fmt.Fprintf(b, "  - line %d: %s\n", warn.Line, warn.Err)
	}
}

func warningCount(report *Report) int {
	p := report.Diagnostics.Parse
	return p.Dropped + p.Malformed + report.Diagnostics.Excluded.Total()
}

// keyWidth returns the widest display width among entry keys.
func keyWidth(entries []aggregator.Entry[string]) int {
	width := 0
	for _, e := range entries {
		if w := runewidth.StringWidth(e.Key); w > width {
			width = w
		}
	}
	return width
}
