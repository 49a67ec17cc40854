package parser

import "strings"

// Extract splits line into date, time, author and initial body.
//
// The format whose start pattern matches is used. Lines matching no format
// are tried against each format's splitter in order and come back without an
// author. Only the first occurrence of each delimiter is used, so " - " and
// ": " inside the message text are preserved.
//
// Errors are *MalformedLineError.
func (c *Classifier) Extract(line string) (Fields, error) {
	if f := c.Match(line); f != nil {
		return extractWith(f, line, true)
	}

	var firstErr error
	for _, f := range c.formats {
		fields, err := extractWith(f, line, false)
		if err == nil {
			return fields, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	if firstErr == nil {
		firstErr = &MalformedLineError{Line: line, Reason: "no formats configured"}
	}
	return Fields{}, firstErr
}

func extractWith(f *Format, line string, authored bool) (Fields, error) {
	timestamp, remainder, err := f.split(line)
	if err != nil {
		return Fields{}, err
	}

	date, clock, ok := strings.Cut(timestamp, ", ")
	if !ok {
		return Fields{}, &MalformedLineError{Line: line, Reason: `missing ", " between date and time`}
	}

	fields := Fields{
		Date:   date,
		Time:   clock,
		Body:   remainder,
		Format: f.Name,
	}

	if authored {
		if author, body, ok := strings.Cut(remainder, ": "); ok && author != "" {
			fields.Author = &author
			fields.Body = body
		}
	}

	if fields.Body == "" {
		return Fields{}, &MalformedLineError{Line: line, Reason: "empty message text"}
	}

	return fields, nil
}
