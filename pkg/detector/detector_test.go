package detector

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccollicutt/chatstat/pkg/parser"
)

func TestDetector_DetectFromLines_Dash(t *testing.T) {
	lines := []string{
		"12/25/2023, 2:30 PM - Alice: Hello",
		"12/25/2023, 2:31 PM - Bob: Hi",
		"12/26/2023, 9:00 AM - Alice: Morning",
	}

	result := New().DetectFromLines(lines)
	require.True(t, result.HasMatch(), "expected to detect a format")

	best := result.BestMatch()
	assert.Equal(t, parser.FormatDash, best.Format.Name)
	assert.Equal(t, 1.0, best.Confidence)
	assert.Equal(t, DateOrderMonthFirst, result.DateOrder)
	assert.Equal(t, []string{"1/2/2006"}, result.DateLayouts)
}

func TestDetector_DetectFromLines_BracketedDayFirst(t *testing.T) {
	lines := []string{
		"[25/12/23, 14:30:15] Alice: Hello",
		"[25/12/23, 14:31:00] Bob: Hi",
	}

	result := New().DetectFromLines(lines)

	best := result.BestMatch()
	require.NotNil(t, best, "expected to detect a format")
	assert.Equal(t, parser.FormatBracketed, best.Format.Name)
	assert.Equal(t, DateOrderDayFirst, result.DateOrder)
	assert.Equal(t, []string{"2/1/06"}, result.DateLayouts)
	assert.Empty(t, result.AmbiguityNote)
}

func TestDetector_DetectFromLines_Ambiguous(t *testing.T) {
	lines := []string{
		"01/05/2024, 10:30 AM - Alice: hi",
		"01/06/24, 10:35 AM - Bob: hey",
	}

	result := New().DetectFromLines(lines)

	assert.Equal(t, DateOrderAmbiguous, result.DateOrder)
	assert.NotEmpty(t, result.AmbiguityNote)
	assert.Equal(t, []string{"1/2/2006", "1/2/06"}, result.DateLayouts)
}

func TestDetector_DetectFromLines_ContinuationsLowerConfidence(t *testing.T) {
	lines := []string{
		"12/25/2023, 2:30 PM - Alice: Hello",
		"this continues",
		"",
		"12/25/2023, 2:31 PM - Bob: Hi",
	}

	result := New().DetectFromLines(lines)

	assert.Equal(t, 3, result.SampledLines, "blank lines are not sampled")
	require.NotNil(t, result.BestMatch())
	assert.Equal(t, 2, result.BestMatch().MatchCount)
	assert.Equal(t, 2, result.ParsedLines)
}

func TestDetector_DetectFromLines_MixedFormats(t *testing.T) {
	lines := []string{
		"[12/25/23, 2:30:15 PM] Alice: one",
		"12/25/2023, 2:30 PM - Bob: two",
		"[12/25/23, 2:31:15 PM] Alice: three",
	}

	result := New().DetectFromLines(lines)

	require.Len(t, result.Matches, 2)
	assert.Equal(t, parser.FormatBracketed, result.BestMatch().Format.Name)
}

func TestDetector_DetectFromLines_NoMatch(t *testing.T) {
	lines := []string{
		"No timestamp here",
		"Just some text",
	}

	result := New().DetectFromLines(lines)

	assert.False(t, result.HasMatch())
	assert.Equal(t, DateOrderUnknown, result.DateOrder)
}

func TestDetector_DetectFromLines_EmptyInput(t *testing.T) {
	result := New().DetectFromLines([]string{})

	assert.False(t, result.HasMatch())
	assert.Zero(t, result.SampledLines)
}

func TestDetector_WithSampleSize(t *testing.T) {
	assert.Equal(t, 50, New(WithSampleSize(50)).sampleSize)
}

func TestDetector_WithSampleSize_Invalid(t *testing.T) {
	assert.Equal(t, 100, New(WithSampleSize(-1)).sampleSize)
}

func TestDetector_DetectFromFile(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "chat.txt")
	content := "\ufeff12/25/2023, 2:30 PM - Alice: Hello\n\n12/25/2023, 2:31 PM - Bob: Hi\n"
	require.NoError(t, os.WriteFile(tmpFile, []byte(content), 0644))

	result, err := New(WithSampleSize(1)).DetectFromFile(context.Background(), tmpFile)
	require.NoError(t, err)

	assert.Equal(t, 1, result.SampledLines)
	assert.True(t, result.HasMatch(), "byte order mark should not hide the format")
}

func TestDetector_DetectFromFile_NotFound(t *testing.T) {
	_, err := New().DetectFromFile(context.Background(), "/nonexistent/chat.txt")
	assert.ErrorIs(t, err, parser.ErrSourceUnavailable)
}

func TestDetector_DetectFromFile_LongLine(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "chat.txt")
	long := "12/25/2023, 2:30 PM - Alice: " + strings.Repeat("x", 70*1024)
	content := long + "\n12/25/2023, 2:31 PM - Bob: Hi\n"
	require.NoError(t, os.WriteFile(tmpFile, []byte(content), 0644))

	result, err := New().DetectFromFile(context.Background(), tmpFile)
	require.NoError(t, err)

	assert.Equal(t, 2, result.SampledLines)
	require.NotNil(t, result.BestMatch())
	assert.Equal(t, 2, result.BestMatch().MatchCount)
}
