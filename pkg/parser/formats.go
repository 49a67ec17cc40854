package parser

import (
	"regexp"
	"strings"
)

// Format names.
const (
	FormatDash      = "dash"
	FormatBracketed = "bracketed"
)

// Format is one recognized transcript line format. Each format owns the
// pattern that marks a message-start line and the splitter that cuts such a
// line into its timestamp and remainder.
type Format struct {
	Name       string         // Identifier used in config and output
	Pattern    *regexp.Regexp // Anchored message-start pattern
	PatternStr string         // Pattern source for display
	Example    string         // Example message-start line

	split func(line string) (timestamp, remainder string, err error)
}

// DefaultFormats returns the recognized formats in priority order.
func DefaultFormats() []*Format {
	return []*Format{dashFormat, bracketedFormat}
}

// LookupFormat returns the format with the given name, or nil.
func LookupFormat(name string) *Format {
	for _, f := range DefaultFormats() {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// FormatNames returns the names of all recognized formats.
func FormatNames() []string {
	formats := DefaultFormats()
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = f.Name
	}
	return names
}

// Recent exports put a narrow no-break space (U+202F) or a no-break space
// (U+00A0) before AM/PM; RE2's \s matches ASCII whitespace only.
const (
	dashPattern      = `^\d{1,2}/\d{1,2}/\d{2,4},\s\d{1,2}:\d{2}[\s\x{202F}\x{00A0}][AP]M\s-\s(.+?):\s(.+)`
	bracketedPattern = `^\[\d{1,2}/\d{1,2}/\d{2,4},\s\d{1,2}:\d{2}:\d{2}(?:[\s\x{202F}\x{00A0}][AP]M)?\]\s(.+?):\s(.+)`
)

var dashFormat = &Format{
	Name:       FormatDash,
	Pattern:    regexp.MustCompile(dashPattern),
	PatternStr: dashPattern,
	Example:    "12/25/2023, 2:30 PM - Alice: Hello there",
	split:      splitDash,
}

var bracketedFormat = &Format{
	Name:       FormatBracketed,
	Pattern:    regexp.MustCompile(bracketedPattern),
	PatternStr: bracketedPattern,
	Example:    "[12/25/23, 2:30:15 PM] Alice: Hello there",
	split:      splitBracketed,
}

// splitDash cuts "<date>, <time> - <rest>" on the first " - ".
func splitDash(line string) (string, string, error) {
	timestamp, remainder, ok := strings.Cut(line, " - ")
	if !ok {
		return "", "", &MalformedLineError{Line: line, Reason: `missing " - " separator`}
	}
	return timestamp, remainder, nil
}

// splitBracketed cuts "[<date>, <time>] <rest>" on the first "] ".
func splitBracketed(line string) (string, string, error) {
	if !strings.HasPrefix(line, "[") {
		return "", "", &MalformedLineError{Line: line, Reason: `missing leading "["`}
	}
	timestamp, remainder, ok := strings.Cut(line[1:], "] ")
	if !ok {
		return "", "", &MalformedLineError{Line: line, Reason: `missing "] " separator`}
	}
	return timestamp, remainder, nil
}
