package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/chatstat/pkg/output"
	"github.com/ccollicutt/chatstat/pkg/parser"
)

// RecordsOptions holds command-line options for the records command.
type RecordsOptions struct {
	ConfigFile string
	Output     string
	LogLevel   string
}

// NewRecordsCommand creates the records command.
func NewRecordsCommand() *cobra.Command {
	opts := &RecordsOptions{}

	cmd := &cobra.Command{
		Use:   "records [transcript]",
		Short: "Print the messages reconstructed from a transcript",
		Long: `Parse a chat transcript and print one entry per message.

Continuation lines are joined to the message they belong to. Lines before the
first message are dropped.

Example:
  chatstat records chat.txt
  chatstat records -o json chat.txt`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecords(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigFile, "config", "c", "", "Configuration file (YAML or TOML)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().StringVar(&opts.LogLevel, "log-level", "", "Log level (debug|info|warn|error)")

	return cmd
}

func runRecords(cmd *cobra.Command, args []string, opts *RecordsOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(ctx, opts.ConfigFile)
	if err != nil {
		return err
	}

	transcript, err := resolveTranscript(cfg, args)
	if err != nil {
		return err
	}

	log := newLogger(cmd, cfg, opts.LogLevel)

	records, stats, err := parser.ParseFile(ctx, transcript,
		parser.WithFormats(cfg.ParserFormats()...),
		parser.WithLogger(log),
	)
	if err != nil {
		return err
	}
	if stats.HasWarnings() {
		log.Warn("transcript parsed with warnings",
			"source", transcript,
			"records", stats.Records,
			"dropped", stats.Dropped,
			"malformed", stats.Malformed)
	}

	if err := output.FormatRecords(cmd.OutOrStdout(), records, opts.Output); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}
	return nil
}
