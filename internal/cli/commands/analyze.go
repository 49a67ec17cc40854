package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/chatstat/internal/logger"
	"github.com/ccollicutt/chatstat/pkg/aggregator"
	"github.com/ccollicutt/chatstat/pkg/config"
	"github.com/ccollicutt/chatstat/pkg/output"
	"github.com/ccollicutt/chatstat/pkg/parser"
)

// ExitCode is set by commands to indicate the result
var ExitCode = 0

// AnalyzeOptions holds command-line options for the analyze command.
type AnalyzeOptions struct {
	ConfigFile string
	Output     string
	Verbose    bool
	Quiet      bool
	Strict     bool
	LogLevel   string

	TopAuthors  int
	TopHours    int
	TopWeekdays int
	TopWords    int
}

// NewAnalyzeCommand creates the analyze command.
func NewAnalyzeCommand() *cobra.Command {
	opts := &AnalyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze [transcript]",
		Short: "Compute statistics for a chat transcript",
		Long: `Parse a chat transcript and report message statistics.

Reports:
  - Total messages and participants
  - Most active participants
  - Most active hours of the day
  - Most active days of the week
  - Most used words

The transcript may be given as an argument or via the transcript setting in
the configuration file (or CHATSTAT_TRANSCRIPT).

Exit codes:
  0 - Analysis completed
  1 - Lines were dropped, malformed or excluded (with --strict)
  2 - Configuration or runtime error`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, args, opts)
		},
	}

	// Flags
	cmd.Flags().StringVarP(&opts.ConfigFile, "config", "c", "", "Configuration file (YAML or TOML)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show parse diagnostics and warnings")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Summary only, no details")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "Exit 1 when lines were dropped, malformed or excluded")
	cmd.Flags().StringVar(&opts.LogLevel, "log-level", "", "Log level (debug|info|warn|error)")

	// Report limits; zero shows every entry
	cmd.Flags().IntVar(&opts.TopAuthors, "top-authors", -1, "Number of participants to show")
	cmd.Flags().IntVar(&opts.TopHours, "top-hours", -1, "Number of hours to show")
	cmd.Flags().IntVar(&opts.TopWeekdays, "top-weekdays", -1, "Number of weekdays to show")
	cmd.Flags().IntVar(&opts.TopWords, "top-words", -1, "Number of words to show")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string, opts *AnalyzeOptions) error {
	started := time.Now()
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(ctx, opts.ConfigFile)
	if err != nil {
		return err
	}
	applyReportFlags(cfg, opts)

	transcript, err := resolveTranscript(cfg, args)
	if err != nil {
		return err
	}

	log := newLogger(cmd, cfg, opts.LogLevel)

	formatter, err := output.NewFormatter(opts.Output, output.FormatOptions{
		Verbose: opts.Verbose,
		Quiet:   opts.Quiet,
	})
	if err != nil {
		return err
	}

	src, err := parser.OpenFile(transcript,
		parser.WithFormats(cfg.ParserFormats()...),
		parser.WithLogger(log),
	)
	if err != nil {
		return err
	}
	defer src.Close()

	tables, err := aggregator.FromSource(ctx, src,
		aggregator.WithDateLayouts(cfg.DateLayouts...),
		aggregator.WithLogger(log),
	)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	stats := src.Stats()
	log.Debug("analysis complete",
		"source", transcript,
		"records", stats.Records,
		"dropped", stats.Dropped,
		"malformed", stats.Malformed)

	report := output.NewReport(tables, stats, output.ReportOptions{
		TopAuthors:  cfg.Report.TopAuthors,
		TopHours:    cfg.Report.TopHours,
		TopWeekdays: cfg.Report.TopWeekdays,
		TopWords:    cfg.Report.TopWords,
		Source:      transcript,
		ConfigFile:  opts.ConfigFile,
		StartedAt:   started,
	})

	if err := formatter.Format(ctx, report, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	if opts.Strict && report.HasWarnings() {
		ExitCode = 1
	}

	return nil
}

// loadConfig loads path, or the defaults when no path is given.
func loadConfig(ctx context.Context, path string) (*config.Config, error) {
	cfg, err := config.LoadOrDefault(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// resolveTranscript prefers the positional argument over the configured path.
func resolveTranscript(cfg *config.Config, args []string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	if cfg.Transcript != "" {
		return cfg.Transcript, nil
	}
	return "", fmt.Errorf("no transcript given (pass a path or set transcript in the config or %s)", config.EnvTranscript)
}

// applyReportFlags overrides configured report limits with explicitly set flags.
func applyReportFlags(cfg *config.Config, opts *AnalyzeOptions) {
	if opts.TopAuthors >= 0 {
		cfg.Report.TopAuthors = opts.TopAuthors
	}
	if opts.TopHours >= 0 {
		cfg.Report.TopHours = opts.TopHours
	}
	if opts.TopWeekdays >= 0 {
		cfg.Report.TopWeekdays = opts.TopWeekdays
	}
	if opts.TopWords >= 0 {
		cfg.Report.TopWords = opts.TopWords
	}
}

// newLogger builds the stderr logger; a non-empty flag wins over the config level.
func newLogger(cmd *cobra.Command, cfg *config.Config, flagLevel string) *slog.Logger {
	level := cfg.LogLevel
	if flagLevel != "" {
		level = flagLevel
	}
	return logger.New(cmd.ErrOrStderr(), level)
}
