package output

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccollicutt/chatstat/pkg/aggregator"
	"github.com/ccollicutt/chatstat/pkg/parser"
)

func TestNewJSONFormatter(t *testing.T) {
	f := NewJSONFormatter(FormatOptions{})
	require.NotNil(t, f)
	assert.Equal(t, "json", f.Name())
}

func TestJSONFormatter_Format(t *testing.T) {
	f := NewJSONFormatter(FormatOptions{})
	report := createTestReport()

	var buf bytes.Buffer
	require.NoError(t, f.Format(context.Background(), report, &buf))

	var parsed Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &parsed), "output is not valid JSON")

	assert.Equal(t, 4, parsed.Summary.TotalMessages)
	assert.Equal(t, 2, parsed.Summary.TotalParticipants)
	require.Len(t, parsed.Authors, 2)
	assert.Equal(t, aggregator.Entry[string]{Key: "Alice", Count: 2}, parsed.Authors[0])
	require.Len(t, parsed.Hours, 2)
	assert.Equal(t, 9, parsed.Hours[0].Key)
	assert.Equal(t, 1, parsed.Diagnostics.Parse.Dropped)
	assert.Equal(t, "chat.txt", parsed.Metadata.Source)
}

func TestJSONFormatter_Format_SnakeCaseKeys(t *testing.T) {
	f := NewJSONFormatter(FormatOptions{})

	var buf bytes.Buffer
	require.NoError(t, f.Format(context.Background(), createTestReport(), &buf))

	var raw map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))
	for _, key := range []string{"summary", "authors", "hours", "weekdays", "words", "diagnostics", "metadata"} {
		assert.Contains(t, raw, key)
	}
	summary, ok := raw["summary"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(4), summary["total_messages"])
}

func TestJSONFormatter_Format_Quiet(t *testing.T) {
	f := NewJSONFormatter(FormatOptions{Quiet: true})
	report := createTestReport()

	var buf bytes.Buffer
	require.NoError(t, f.Format(context.Background(), report, &buf))

	// Quiet mode should only output summary
	var parsed Summary
	require.NoError(t, json.Unmarshal(buf.Bytes(), &parsed))
	assert.Equal(t, 4, parsed.TotalMessages)
}

func TestJSONFormatter_Format_Empty(t *testing.T) {
	f := NewJSONFormatter(FormatOptions{})
	report := NewReport(aggregator.Aggregate(nil), parser.Stats{}, ReportOptions{})

	var buf bytes.Buffer
	require.NoError(t, f.Format(context.Background(), report, &buf))

	var parsed Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &parsed))
	assert.Zero(t, parsed.Summary.TotalMessages)
}

func TestJSONFormatter_Format_Metadata(t *testing.T) {
	f := NewJSONFormatter(FormatOptions{})

	baseTime := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	report := &Report{
		Summary: Summary{TotalMessages: 10, TotalParticipants: 3},
		Metadata: Metadata{
			Source:     "family.txt",
			ConfigFile: "chatstat.yaml",
			AnalyzedAt: baseTime,
			Duration:   5 * time.Second,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, f.Format(context.Background(), report, &buf))

	var parsed Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &parsed))

	assert.Equal(t, "chatstat.yaml", parsed.Metadata.ConfigFile)
	assert.True(t, parsed.Metadata.AnalyzedAt.Equal(baseTime))
	assert.Equal(t, 5*time.Second, parsed.Metadata.Duration)
}
