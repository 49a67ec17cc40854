package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsMessageStart(t *testing.T) {
	tests := []struct {
		name string
		line string
		want bool
	}{
		{"dash format", "12/25/2023, 2:30 PM - Alice: Hello there", true},
		{"single digit fields", "1/5/23, 9:05 AM - Bob: hi", true},
		{"bracketed format", "[12/25/23, 2:30:15 PM] Alice: Hello", true},
		{"bracketed 24 hour", "[25/12/2023, 14:30:15] Alice: Hello", true},
		{"system line without author", "12/25/2023, 2:30 PM - Messages are end-to-end encrypted.", false},
		{"continuation text", "how are you?", false},
		{"blank line", "", false},
		{"not anchored", "said 12/25/2023, 2:30 PM - Alice: hi", false},
		{"missing am pm", "12/25/2023, 14:30 - Alice: hi", false},
		{"empty body", "12/25/2023, 2:30 PM - Alice: ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsMessageStart(tt.line))
		})
	}
}

func TestClassifier_RestrictedFormats(t *testing.T) {
	c := NewClassifier(LookupFormat(FormatDash))

	assert.True(t, c.IsMessageStart("12/25/2023, 2:30 PM - Alice: Hello"))
	assert.False(t, c.IsMessageStart("[12/25/23, 2:30:15 PM] Alice: Hello"))
	assert.Len(t, c.Formats(), 1)
}

func TestExtractFields(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		date   string
		time   string
		author string // "" means no author expected
		body   string
		format string
	}{
		{
			name:   "simple message",
			line:   "12/25/2023, 2:30 PM - Alice: Hello there",
			date:   "12/25/2023",
			time:   "2:30 PM",
			author: "Alice",
			body:   "Hello there",
			format: FormatDash,
		},
		{
			name:   "body contains dash separator",
			line:   "12/25/2023, 2:30 PM - Alice: before - after",
			date:   "12/25/2023",
			time:   "2:30 PM",
			author: "Alice",
			body:   "before - after",
			format: FormatDash,
		},
		{
			name:   "body contains colon separator",
			line:   "12/25/2023, 2:30 PM - Alice: note: read this: now",
			date:   "12/25/2023",
			time:   "2:30 PM",
			author: "Alice",
			body:   "note: read this: now",
			format: FormatDash,
		},
		{
			name:   "system line",
			line:   "12/25/2023, 2:30 PM - Bob added Carol",
			date:   "12/25/2023",
			time:   "2:30 PM",
			body:   "Bob added Carol",
			format: FormatDash,
		},
		{
			name:   "bracketed",
			line:   "[12/25/23, 2:30:15 PM] Alice: Hello - world",
			date:   "12/25/23",
			time:   "2:30:15 PM",
			author: "Alice",
			body:   "Hello - world",
			format: FormatBracketed,
		},
		{
			name:   "author with spaces and phone number",
			line:   "3/1/24, 11:59 PM - +1 555 0100: late",
			date:   "3/1/24",
			time:   "11:59 PM",
			author: "+1 555 0100",
			body:   "late",
			format: FormatDash,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields, err := ExtractFields(tt.line)
			require.NoError(t, err)

			assert.Equal(t, tt.date, fields.Date)
			assert.Equal(t, tt.time, fields.Time)
			assert.Equal(t, tt.body, fields.Body)
			assert.Equal(t, tt.format, fields.Format)
			if tt.author == "" {
				assert.Nil(t, fields.Author)
			} else {
				require.NotNil(t, fields.Author)
				assert.Equal(t, tt.author, *fields.Author)
			}
		})
	}
}

func TestExtractFields_Malformed(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"header without separator", "WhatsApp Chat with Family"},
		{"missing date time comma", "12/25/2023 2:30 PM - Alice: hi"},
		{"empty remainder", "12/25/2023, 2:30 PM - "},
		{"blank", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractFields(tt.line)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedLine))

			var mle *MalformedLineError
			require.True(t, errors.As(err, &mle))
			assert.Equal(t, tt.line, mle.Line)
		})
	}
}

func TestExtractFields_TabSeparatedStartLine(t *testing.T) {
	// Matches the start pattern (\s accepts a tab) but has no literal ", ".
	line := "12/25/2023,\t2:30 PM - Alice: hi"
	require.True(t, IsMessageStart(line))

	_, err := ExtractFields(line)
	assert.ErrorIs(t, err, ErrMalformedLine)
}

func TestExtractFields_AuthorIsDistinctFromEmpty(t *testing.T) {
	fields, err := ExtractFields("12/25/2023, 2:30 PM - just a notice")
	require.NoError(t, err)
	assert.Nil(t, fields.Author)

	rec := Record{Author: fields.Author}
	assert.False(t, rec.HasAuthor())
	assert.Equal(t, "", rec.AuthorName())
}
