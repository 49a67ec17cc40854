package parser

import (
	"errors"
	"fmt"
)

// ErrSourceUnavailable is matched by errors from opening or reading a transcript.
var ErrSourceUnavailable = errors.New("transcript source unavailable")

// ErrMalformedLine is matched by errors from ExtractFields.
var ErrMalformedLine = errors.New("malformed message line")

// SourceError reports a transcript that could not be opened or read.
type SourceError struct {
	Path string
	Err  error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("reading transcript %s: %v", e.Path, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrSourceUnavailable) true for any SourceError.
func (e *SourceError) Is(target error) bool {
	return target == ErrSourceUnavailable
}

// MalformedLineError reports a line whose fields could not be extracted.
type MalformedLineError struct {
	Line   string
	Reason string
}

func (e *MalformedLineError) Error() string {
	return fmt.Sprintf("malformed message line %q: %s", e.Line, e.Reason)
}

// Is makes errors.Is(err, ErrMalformedLine) true for any MalformedLineError.
func (e *MalformedLineError) Is(target error) bool {
	return target == ErrMalformedLine
}
