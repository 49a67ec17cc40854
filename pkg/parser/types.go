// Package parser reads chat transcript exports and reconstructs the messages
// they contain, including messages that span several lines.
package parser

import "strings"

// Record is one fully reconstructed message.
type Record struct {
	// Date is the calendar date as authored (e.g. "12/25/2023").
	Date string `json:"date"`

	// Time is the time of day as authored (e.g. "2:30 PM").
	Time string `json:"time"`

	// Author is the sender. Nil for system lines with no attributable sender.
	Author *string `json:"author"`

	// Body is the full message text, fragments joined by a single space.
	Body string `json:"body"`

	// Fragments holds the initial body text followed by each continuation
	// line exactly as it appeared in the transcript.
	Fragments []string `json:"-"`

	// Line is the 1-based line number of the message-start line.
	Line int `json:"line"`

	// Format is the name of the transcript format that matched the start line.
	Format string `json:"format"`
}

// HasAuthor reports whether the record is attributed to a sender.
func (r *Record) HasAuthor() bool {
	return r.Author != nil
}

// AuthorName returns the author, or "" for system lines.
func (r *Record) AuthorName() string {
	if r.Author == nil {
		return ""
	}
	return *r.Author
}

// Fields are the parts of a message-start line.
type Fields struct {
	Date   string
	Time   string
	Author *string
	Body   string
	Format string
}

// Stats counts what the parser saw. Recoverable problems are reported here
// instead of aborting the parse.
type Stats struct {
	// Lines is the number of lines fed to the parser.
	Lines int `json:"lines"`

	// MessageStarts is the number of lines that began a new record.
	MessageStarts int `json:"message_starts"`

	// Continuations is the number of lines appended to an open record.
	Continuations int `json:"continuations"`

	// Dropped is the number of lines seen while no record was open.
	Dropped int `json:"dropped"`

	// Malformed is the number of start lines whose fields could not be read.
	Malformed int `json:"malformed"`

	// Records is the number of records emitted.
	Records int `json:"records"`

	// Warnings holds the first MaxWarnings malformed lines.
	Warnings []Warning `json:"warnings,omitempty"`
}

// MaxWarnings bounds Stats.Warnings.
const MaxWarnings = 100

// Warning describes a recoverable parse problem.
type Warning struct {
	Line int    `json:"line"`
	Text string `json:"text"`
	Err  string `json:"error"`
}

// HasWarnings returns true if any line was dropped or malformed.
func (s *Stats) HasWarnings() bool {
	return s.Dropped > 0 || s.Malformed > 0
}

func joinFragments(fragments []string) string {
	return strings.Join(fragments, " ")
}
