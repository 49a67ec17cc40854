package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/chatstat/pkg/aggregator"
	"github.com/ccollicutt/chatstat/pkg/config"
	"github.com/ccollicutt/chatstat/pkg/detector"
	"github.com/ccollicutt/chatstat/pkg/parser"
)

// diagnoseSampleSize is the number of non-blank transcript lines checked.
const diagnoseSampleSize = 50

// DiagnoseOptions holds options for the diagnose command
type DiagnoseOptions struct {
	Verbose bool
}

// DiagnosticResult represents the result of a single diagnostic check
type DiagnosticResult struct {
	Check    string
	Status   string // "ok", "warning", "error"
	Message  string
	Details  []string
	Suggests []string
}

// NewDiagnoseCommand creates the diagnose command
func NewDiagnoseCommand() *cobra.Command {
	opts := &DiagnoseOptions{}

	cmd := &cobra.Command{
		Use:   "diagnose <config-file>",
		Short: "Diagnose common configuration issues",
		Long: `Diagnose common configuration issues.

This command checks your configuration file for common problems:
- Config file syntax and structure
- Transcript existence and accessibility
- Configured formats matching the transcript's message lines
- Date layouts parsing the transcript's dates

Example:
  chatstat diagnose chatstat.yaml
  chatstat diagnose -v chatstat.yaml  # verbose output`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return runDiagnose(ctx, cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show detailed diagnostic output")

	return cmd
}

func runDiagnose(ctx context.Context, w io.Writer, configPath string, opts *DiagnoseOptions) error {
	results := []DiagnosticResult{}

	// 1. Check config file existence
	result := checkConfigExists(configPath)
	results = append(results, result)
	if result.Status == "error" {
		printDiagnostics(w, results, opts)
		return nil
	}

	// 2. Parse config file
	cfg, result := checkConfigParseable(ctx, configPath)
	results = append(results, result)
	if result.Status == "error" {
		printDiagnostics(w, results, opts)
		return nil
	}

	// 3. Check transcript
	result = checkTranscript(cfg)
	results = append(results, result)

	// 4. Check formats and date layouts against the transcript
	if result.Status != "error" {
		results = append(results, checkTranscriptContent(ctx, cfg, opts)...)
	}

	printDiagnostics(w, results, opts)
	return nil
}

func checkConfigExists(path string) DiagnosticResult {
	result := DiagnosticResult{
		Check: "Config File",
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		result.Status = "error"
		result.Message = fmt.Sprintf("Config file not found: %s", path)
		result.Suggests = []string{
			"Check the file path is correct",
			"Use 'chatstat detect <transcript> --write-config chatstat.yaml' to generate a starter config",
		}
		return result
	}
	if err != nil {
		result.Status = "error"
		result.Message = fmt.Sprintf("Cannot access config file: %v", err)
		result.Suggests = []string{"Check file permissions"}
		return result
	}
	if info.IsDir() {
		result.Status = "error"
		result.Message = "Path is a directory, not a file"
		return result
	}

	result.Status = "ok"
	result.Message = fmt.Sprintf("Found: %s (%d bytes)", path, info.Size())
	return result
}

func checkConfigParseable(ctx context.Context, path string) (*config.Config, DiagnosticResult) {
	result := DiagnosticResult{
		Check: "Config Syntax",
	}

	cfg, err := config.Load(ctx, path)
	if err != nil {
		result.Status = "error"
		result.Message = fmt.Sprintf("Failed to load config: %v", err)
		switch {
		case strings.Contains(err.Error(), "yaml"):
			result.Suggests = []string{
				"Check YAML syntax - ensure proper indentation (use spaces, not tabs)",
			}
		case strings.Contains(err.Error(), "toml"):
			result.Suggests = []string{
				"Check TOML syntax - strings must be quoted and arrays closed",
			}
		case strings.Contains(err.Error(), "formats"):
			result.Suggests = []string{
				fmt.Sprintf("Supported formats: %s", strings.Join(parser.FormatNames(), ", ")),
			}
		}
		return nil, result
	}

	result.Status = "ok"
	result.Message = "Config file loaded successfully"
	result.Details = []string{
		fmt.Sprintf("Formats: %s", strings.Join(cfg.Formats, ", ")),
		fmt.Sprintf("Date layouts: %s", strings.Join(cfg.DateLayouts, ", ")),
	}
	return cfg, result
}

func checkTranscript(cfg *config.Config) DiagnosticResult {
	result := DiagnosticResult{
		Check: "Transcript",
	}

	if cfg.Transcript == "" {
		result.Status = "warning"
		result.Message = "No transcript configured"
		result.Suggests = []string{
			"Set transcript in the config or pass a path to 'chatstat analyze'",
		}
		return result
	}

	info, err := os.Stat(cfg.Transcript)
	switch {
	case os.IsNotExist(err):
		result.Status = "error"
		result.Message = fmt.Sprintf("File does not exist: %s", cfg.Transcript)
		result.Suggests = []string{"Check if the transcript path is correct"}
	case err != nil:
		result.Status = "error"
		result.Message = fmt.Sprintf("Cannot access file: %v", err)
		result.Suggests = []string{"Check file permissions"}
	case info.IsDir():
		result.Status = "error"
		result.Message = "Path is a directory, not a file"
	case info.Size() == 0:
		result.Status = "warning"
		result.Message = "File is empty (0 bytes)"
	default:
		result.Status = "ok"
		result.Message = fmt.Sprintf("File exists (%d bytes)", info.Size())
	}
	return result
}

func checkTranscriptContent(ctx context.Context, cfg *config.Config, opts *DiagnoseOptions) []DiagnosticResult {
	if cfg.Transcript == "" {
		return nil
	}

	d := detector.New(detector.WithSampleSize(diagnoseSampleSize))
	detected, err := d.DetectFromFile(ctx, cfg.Transcript)
	if err != nil {
		return []DiagnosticResult{{
			Check:   "Format Test",
			Status:  "warning",
			Message: fmt.Sprintf("Cannot read transcript: %v", err),
		}}
	}
	if detected.SampledLines == 0 {
		return nil
	}

	return []DiagnosticResult{
		checkFormats(cfg, detected, opts),
		checkDateLayouts(ctx, cfg, opts),
	}
}

func checkFormats(cfg *config.Config, detected *detector.DetectionResult, opts *DiagnoseOptions) DiagnosticResult {
	result := DiagnosticResult{
		Check: "Format Test",
	}

	configured := make(map[string]bool)
	for _, name := range cfg.Formats {
		configured[name] = true
	}

	matched := 0
	var sample string
	for _, m := range detected.Matches {
		if configured[m.Format.Name] {
			matched += m.MatchCount
			if sample == "" {
				sample = m.SampleLine
			}
		}
	}

	switch {
	case matched == 0:
		result.Status = "error"
		result.Message = fmt.Sprintf("Configured formats match none of %d sample lines", detected.SampledLines)
		if best := detected.BestMatch(); best != nil {
			result.Suggests = []string{
				fmt.Sprintf("Detected format: %s", best.Format.Name),
				fmt.Sprintf("Add %q to formats", best.Format.Name),
			}
		} else {
			result.Suggests = []string{"The file may not be a supported chat export"}
		}
	case matched*2 < detected.SampledLines:
		// Multi-line messages lower the ratio, so this is only a warning.
		result.Status = "warning"
		result.Message = fmt.Sprintf("Only %d/%d sample lines start a message", matched, detected.SampledLines)
		result.Suggests = []string{"Expected if many messages span several lines"}
	default:
		result.Status = "ok"
		result.Message = fmt.Sprintf("%d/%d sample lines start a message", matched, detected.SampledLines)
	}

	if opts.Verbose && sample != "" {
		result.Details = []string{"Sample match:", truncate(sample, 80)}
	}
	return result
}

func checkDateLayouts(ctx context.Context, cfg *config.Config, opts *DiagnoseOptions) DiagnosticResult {
	result := DiagnosticResult{
		Check: "Date Layouts",
	}

	src, err := parser.OpenFile(cfg.Transcript, parser.WithFormats(cfg.ParserFormats()...))
	if err != nil {
		result.Status = "warning"
		result.Message = fmt.Sprintf("Cannot read transcript: %v", err)
		return result
	}
	defer src.Close()

	checked, failed := 0, 0
	var sampleFail string
	for checked < diagnoseSampleSize {
		rec, err := src.Next(ctx)
		if err != nil {
			break
		}
		checked++
		if _, err := aggregator.ParseWeekday(rec.Date, cfg.DateLayouts); err != nil {
			failed++
			if sampleFail == "" {
				sampleFail = rec.Date
			}
		}
	}

	switch {
	case checked == 0:
		result.Status = "warning"
		result.Message = "No messages to check"
	case failed > 0:
		result.Status = "warning"
		result.Message = fmt.Sprintf("%d/%d sampled dates do not parse; they will be left out of weekday counts", failed, checked)
		result.Details = []string{"Sample date that didn't parse:", sampleFail}
		result.Suggests = []string{
			"Use 'chatstat detect " + cfg.Transcript + "' to infer date layouts",
			`Day-first exports need date_layouts: ["2/1/2006", "2/1/06"]`,
		}
	default:
		result.Status = "ok"
		result.Message = fmt.Sprintf("All %d sampled dates parse", checked)
		if opts.Verbose {
			result.Details = []string{fmt.Sprintf("Layouts: %s", strings.Join(cfg.DateLayouts, ", "))}
		}
	}
	return result
}

func printDiagnostics(w io.Writer, results []DiagnosticResult, opts *DiagnoseOptions) {
	fmt.Fprintln(w, "=== chatstat Configuration Diagnostics ===")
	fmt.Fprintln(w)

	okCount := 0
	warnCount := 0
	errCount := 0

	for _, r := range results {
		// Status icon
		var icon string
		switch r.Status {
		case "ok":
			icon = "PASS"
			okCount++
		case "warning":
			icon = "WARN"
			warnCount++
		case "error":
			icon = "FAIL"
			errCount++
		}

		fmt.Fprintf(w, "[%s] %s\n", icon, r.Check)
		fmt.Fprintf(w, "    %s\n", r.Message)

		if opts.Verbose || r.Status != "ok" {
			for _, d := range r.Details {
				fmt.Fprintf(w, "      - %s\n", d)
			}
		}

		for _, s := range r.Suggests {
			fmt.Fprintf(w, "      Hint: %s\n", s)
		}

		fmt.Fprintln(w)
	}

	// Summary
	fmt.Fprintln(w, "---")
	fmt.Fprintf(w, "Summary: %d passed, %d warnings, %d errors\n", okCount, warnCount, errCount)

	if errCount > 0 {
		fmt.Fprintln(w, "\nFix the errors above before running analysis.")
	} else if warnCount > 0 {
		fmt.Fprintln(w, "\nConfiguration is usable but has warnings.")
	} else {
		fmt.Fprintln(w, "\nConfiguration looks good!")
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
