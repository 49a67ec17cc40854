package parser

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTranscript(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chat.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestFileSource_Next(t *testing.T) {
	path := writeTranscript(t, `12/25/2023, 2:30 PM - Alice: Hello
how are you?
12/25/2023, 2:31 PM - Bob: fine
`)

	src, err := OpenFile(path)
	require.NoError(t, err)
	defer src.Close()

	ctx := context.Background()
	var records []*Record
	for {
		rec, err := src.Next(ctx)
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		records = append(records, rec)
	}

	require.Len(t, records, 2)
	assert.Equal(t, "Hello how are you?", records[0].Body)
	assert.Equal(t, "fine", records[1].Body)
	assert.Equal(t, 3, records[1].Line)
	assert.Equal(t, path, src.Path())

	_, err = src.Next(ctx)
	assert.Equal(t, io.EOF, err, "source is not restartable")
	assert.Nil(t, src.file, "file closed after exhaustion")
}

func TestFileSource_CRLF(t *testing.T) {
	path := writeTranscript(t, "12/25/2023, 2:30 PM - Alice: Hello\r\nworld\r\n")

	records, _, err := ParseFile(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Hello world", records[0].Body)
}

func TestFileSource_EmptyFile(t *testing.T) {
	path := writeTranscript(t, "")

	records, stats, err := ParseFile(context.Background(), path)
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Equal(t, 0, stats.Lines)
}

func TestOpenFile_NotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.txt")

	_, err := OpenFile(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSourceUnavailable))
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Contains(t, err.Error(), path)
}

func TestParseFile_NotFound(t *testing.T) {
	records, _, err := ParseFile(context.Background(), "/nonexistent/chat.txt")
	assert.ErrorIs(t, err, ErrSourceUnavailable)
	assert.Nil(t, records)
}

func TestParseFile_Stats(t *testing.T) {
	path := writeTranscript(t, `Chat export
12/25/2023, 2:30 PM - Alice: Hello
12/25/2023,	2:31 PM - Bob: tabbed
12/25/2023, 2:32 PM - Carol: Bye
`)

	records, stats, err := ParseFile(context.Background(), path)
	require.NoError(t, err)

	assert.Len(t, records, 2)
	assert.Equal(t, 4, stats.Lines)
	assert.Equal(t, 2, stats.MessageStarts)
	assert.Equal(t, 1, stats.Dropped)
	assert.Equal(t, 1, stats.Malformed)
	assert.Equal(t, 2, stats.Records)
}

func TestReaderSource_LineTooLong(t *testing.T) {
	long := "12/25/2023, 2:30 PM - Alice: " + strings.Repeat("x", MaxLineSize+1)
	src := NewReaderSource(strings.NewReader(long), "long.txt")

	_, err := Collect(context.Background(), src)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSourceUnavailable)

	var se *SourceError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "long.txt", se.Path)
}

func TestReaderSource_ContextCanceled(t *testing.T) {
	src := NewReaderSource(strings.NewReader("12/25/2023, 2:30 PM - Alice: Hi\n"), "chat.txt")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := src.Next(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
