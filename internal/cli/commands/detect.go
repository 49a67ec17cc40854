package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ccollicutt/chatstat/pkg/config"
	"github.com/ccollicutt/chatstat/pkg/detector"
)

// DetectOptions holds command-line options for the detect command.
type DetectOptions struct {
	Output      string
	SampleSize  int
	ShowAll     bool
	WriteConfig string
}

// NewDetectCommand creates the detect command.
func NewDetectCommand() *cobra.Command {
	opts := &DetectOptions{}

	cmd := &cobra.Command{
		Use:   "detect <transcript>",
		Short: "Detect the line format of a chat transcript",
		Long: `Analyze a transcript to detect which export format it uses.

Samples lines from the file and tests them against every recognized
message-start format. Reports the detected format with a confidence score,
infers whether dates are month-first or day-first, and prints a ready-to-use
configuration snippet.

Optionally generates a starter config file with --write-config.

Supports:
  - dash:      12/25/2023, 2:30 PM - Alice: Hello
  - bracketed: [12/25/23, 2:30:15 PM] Alice: Hello

Example:
  chatstat detect chat.txt
  chatstat detect --sample 500 chat.txt
  chatstat detect --write-config chatstat.yaml chat.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDetect(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().IntVarP(&opts.SampleSize, "sample", "n", 100, "Number of lines to sample")
	cmd.Flags().BoolVar(&opts.ShowAll, "all", false, "Show all detected formats, not just the best match")
	cmd.Flags().StringVarP(&opts.WriteConfig, "write-config", "w", "", "Write starter config to file (will not overwrite)")

	return cmd
}

func runDetect(cmd *cobra.Command, args []string, opts *DetectOptions) error {
	transcript := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()

	d := detector.New(detector.WithSampleSize(opts.SampleSize))

	result, err := d.DetectFromFile(ctx, transcript)
	if err != nil {
		return fmt.Errorf("detection failed: %w", err)
	}

	// Write config file if requested
	if opts.WriteConfig != "" {
		if err := writeStarterConfig(out, result, transcript, opts.WriteConfig); err != nil {
			return err
		}
	}

	switch opts.Output {
	case "json":
		return outputDetectJSON(out, result, transcript, opts)
	default:
		return outputDetectText(out, result, transcript, opts)
	}
}

func outputDetectText(w io.Writer, result *detector.DetectionResult, transcript string, opts *DetectOptions) error {
	fmt.Fprintln(w, "=== Transcript Format Detection ===")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "File: %s\n", transcript)
	fmt.Fprintf(w, "Lines sampled: %d\n", result.SampledLines)
	fmt.Fprintf(w, "Message lines: %d\n", result.ParsedLines)
	fmt.Fprintln(w)

	if !result.HasMatch() {
		fmt.Fprintln(w, "No transcript format detected.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Tip: The file may not be a chat export, or may use an unsupported format.")
		fmt.Fprintln(w, "Check the first few lines manually.")
		return nil
	}

	best := result.BestMatch()
	fmt.Fprintf(w, "Detected Format: %s\n", best.Format.Name)
	fmt.Fprintf(w, "Confidence: %.1f%% (%d/%d lines matched)\n",
		best.Confidence*100, best.MatchCount, result.SampledLines)
	fmt.Fprintf(w, "Date order: %s\n", result.DateOrder)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Sample match:\n  %s\n", best.SampleLine)
	fmt.Fprintln(w)

	if result.AmbiguityNote != "" {
		fmt.Fprintf(w, "Note: %s\n", result.AmbiguityNote)
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "--- Configuration snippet (copy to your config file) ---")
	fmt.Fprintln(w)
	snippet, err := yaml.Marshal(snippetConfig(result))
	if err != nil {
		return fmt.Errorf("rendering config snippet: %w", err)
	}
	fmt.Fprint(w, string(snippet))
	fmt.Fprintln(w)

	// Show alternatives if requested
	if opts.ShowAll && len(result.Matches) > 1 {
		fmt.Fprintln(w, "--- Alternative formats detected ---")
		for i, m := range result.Matches[1:] {
			fmt.Fprintf(w, "%d. %s (%.1f%% confidence)\n", i+2, m.Format.Name, m.Confidence*100)
			fmt.Fprintf(w, "   pattern: '%s'\n", m.Format.PatternStr)
		}
		fmt.Fprintln(w)
	}

	return nil
}

// JSONMatch represents a format match in JSON output.
type JSONMatch struct {
	Name       string  `json:"name"`
	Pattern    string  `json:"pattern"`
	Confidence float64 `json:"confidence"`
	MatchCount int     `json:"match_count"`
	SampleLine string  `json:"sample_line"`
}

// JSONOutput represents the full JSON output.
type JSONOutput struct {
	File          string      `json:"file"`
	Matches       []JSONMatch `json:"matches"`
	SampledLines  int         `json:"sampled_lines"`
	ParsedLines   int         `json:"parsed_lines"`
	DateOrder     string      `json:"date_order"`
	DateLayouts   []string    `json:"date_layouts,omitempty"`
	AmbiguityNote string      `json:"ambiguity_note,omitempty"`
}

func outputDetectJSON(w io.Writer, result *detector.DetectionResult, transcript string, opts *DetectOptions) error {
	output := JSONOutput{
		File:          transcript,
		SampledLines:  result.SampledLines,
		ParsedLines:   result.ParsedLines,
		DateOrder:     string(result.DateOrder),
		DateLayouts:   result.DateLayouts,
		AmbiguityNote: result.AmbiguityNote,
		Matches:       make([]JSONMatch, 0),
	}

	matches := result.Matches
	if !opts.ShowAll && len(matches) > 1 {
		matches = matches[:1] // Only show best match
	}

	for _, m := range matches {
		output.Matches = append(output.Matches, JSONMatch{
			Name:       m.Format.Name,
			Pattern:    m.Format.PatternStr,
			Confidence: m.Confidence,
			MatchCount: m.MatchCount,
			SampleLine: m.SampleLine,
		})
	}

	encoder := sonic.ConfigStd.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// snippetConfig holds the detected settings without a transcript path.
func snippetConfig(result *detector.DetectionResult) *config.Config {
	cfg := config.DefaultConfig()
	if best := result.BestMatch(); best != nil {
		cfg.Formats = []string{best.Format.Name}
	}
	if len(result.DateLayouts) > 0 {
		cfg.DateLayouts = result.DateLayouts
	}
	return cfg
}

// writeStarterConfig generates a starter config file with the detected format.
func writeStarterConfig(w io.Writer, result *detector.DetectionResult, transcript, configPath string) error {
	// Check if file already exists
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file already exists: %s (will not overwrite)", configPath)
	}

	if !result.HasMatch() {
		return fmt.Errorf("cannot generate config: no transcript format detected")
	}

	content, err := generateStarterConfig(transcript, result)
	if err != nil {
		return err
	}

	// #nosec G306 - config file doesn't need restrictive permissions
	if err := os.WriteFile(configPath, content, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Fprintf(w, "Wrote starter config to: %s\n\n", configPath)
	return nil
}

// generateStarterConfig renders a YAML config for the detected format.
func generateStarterConfig(transcript string, result *detector.DetectionResult) ([]byte, error) {
	absTranscript := transcript
	if abs, err := filepath.Abs(transcript); err == nil {
		absTranscript = abs
	}

	cfg := snippetConfig(result)
	cfg.Transcript = absTranscript

	body, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("rendering config: %w", err)
	}

	best := result.BestMatch()
	header := fmt.Sprintf("# chatstat configuration\n# Generated by: chatstat detect\n# Detected format: %s (%.0f%% confidence), dates %s\n\n",
		best.Format.Name, best.Confidence*100, result.DateOrder)

	return append([]byte(header), body...), nil
}
