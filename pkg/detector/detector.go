// Package detector provides automatic transcript format detection.
package detector

import (
	"bufio"
	"context"
	"os"
	"sort"
	"strings"

	"github.com/ccollicutt/chatstat/pkg/parser"
)

// DetectionResult holds the result of analyzing a transcript.
type DetectionResult struct {
	Matches       []FormatMatch // Formats that matched, sorted by confidence descending
	SampledLines  int           // Number of non-blank lines sampled
	ParsedLines   int           // Number of message-start lines for the best format
	DateOrder     DateOrder     // Inferred ordering of date fields
	DateLayouts   []string      // Suggested date_layouts for the config
	AmbiguityNote string        // Warning about date ordering if applicable
}

// FormatMatch represents a format that matched with its confidence score.
type FormatMatch struct {
	Format     *parser.Format
	Confidence float64 // Share of sampled lines that start a message in this format
	MatchCount int     // Number of lines that matched
	SampleLine string  // Example line that matched
}

// Detector analyzes transcripts to identify their line format.
type Detector struct {
	formats    []*parser.Format
	sampleSize int
}

// Option configures the Detector.
type Option func(*Detector)

// WithSampleSize sets the number of lines to sample (default 100).
func WithSampleSize(n int) Option {
	return func(d *Detector) {
		if n > 0 {
			d.sampleSize = n
		}
	}
}

// New creates a new Detector over every recognized format.
func New(opts ...Option) *Detector {
	d := &Detector{
		formats:    parser.DefaultFormats(),
		sampleSize: 100,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DetectFromFile analyzes a transcript file and returns detected formats.
func (d *Detector) DetectFromFile(ctx context.Context, path string) (*DetectionResult, error) {
	lines, err := d.sampleFile(ctx, path)
	if err != nil {
		return nil, err
	}
	return d.DetectFromLines(lines), nil
}

// DetectFromLines analyzes a slice of transcript lines.
func (d *Detector) DetectFromLines(lines []string) *DetectionResult {
	result := &DetectionResult{DateOrder: DateOrderUnknown}

	type formatStats struct {
		format     *parser.Format
		priority   int
		matchCount int
		sampleLine string
		dates      *dateShape
	}

	stats := make(map[string]*formatStats)

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		result.SampledLines++

		for i, format := range d.formats {
			if !format.Pattern.MatchString(line) {
				continue
			}

			s := stats[format.Name]
			if s == nil {
				s = &formatStats{
					format:     format,
					priority:   i,
					sampleLine: line,
					dates:      newDateShape(),
				}
				stats[format.Name] = s
			}
			s.matchCount++

			if fields, err := parser.NewClassifier(format).Extract(line); err == nil {
				s.dates.add(fields.Date)
			}
		}
	}

	if result.SampledLines == 0 {
		return result
	}

	ordered := make([]*formatStats, 0, len(stats))
	for _, s := range stats {
		ordered = append(ordered, s)
	}

	// Sort by match count descending, then by format priority
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].matchCount != ordered[j].matchCount {
			return ordered[i].matchCount > ordered[j].matchCount
		}
		return ordered[i].priority < ordered[j].priority
	})

	for _, s := range ordered {
		result.Matches = append(result.Matches, FormatMatch{
			Format:     s.format,
			Confidence: float64(s.matchCount) / float64(result.SampledLines),
			MatchCount: s.matchCount,
			SampleLine: s.sampleLine,
		})
	}

	if len(ordered) > 0 {
		best := ordered[0]
		result.ParsedLines = best.matchCount
		result.DateOrder = best.dates.order()
		result.DateLayouts = best.dates.layouts()

		if result.DateOrder == DateOrderAmbiguous {
			result.AmbiguityNote = "Every sampled date fits both MM/DD and DD/MM ordering. " +
				"Assuming month-first; for day-first exports use date_layouts: [\"2/1/2006\", \"2/1/06\"]"
		}
	}

	return result
}

// sampleFile reads up to sampleSize non-blank lines from a file.
// Uses simple head sampling for efficiency.
func (d *Detector) sampleFile(_ context.Context, path string) ([]string, error) {
	file, err := os.Open(path) // #nosec G304 -- path is provided by user via CLI
	if err != nil {
		return nil, &parser.SourceError{Path: path, Err: err}
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), parser.MaxLineSize)

	first := true
	for scanner.Scan() && len(lines) < d.sampleSize {
		line := scanner.Text()
		if first {
			line = strings.TrimPrefix(line, "\ufeff")
			first = false
		}
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, &parser.SourceError{Path: path, Err: err}
	}

	return lines, nil
}

// BestMatch returns the highest confidence match, or nil if none found.
func (r *DetectionResult) BestMatch() *FormatMatch {
	if len(r.Matches) == 0 {
		return nil
	}
	return &r.Matches[0]
}

// HasMatch returns true if at least one format matched.
func (r *DetectionResult) HasMatch() bool {
	return len(r.Matches) > 0
}
