package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/chatstat/pkg/config"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a configuration file",
		Long: `Validate a chatstat configuration file without running analysis.

Checks:
  - YAML or TOML syntax
  - Format names
  - Date layouts
  - Report limits and log level
  - Transcript file existence (warning only)`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	configPath := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Validating %s...\n", configPath)

	// Load and validate config
	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	// Report what we found
	fmt.Fprintf(out, "\nConfiguration valid!\n")
	fmt.Fprintf(out, "  Formats:      %s\n", strings.Join(cfg.Formats, ", "))
	fmt.Fprintf(out, "  Date layouts: %s\n", strings.Join(cfg.DateLayouts, ", "))
	fmt.Fprintf(out, "  Report:       top %d participants, %d hours, %d days, %d words\n",
		cfg.Report.TopAuthors, cfg.Report.TopHours, cfg.Report.TopWeekdays, cfg.Report.TopWords)
	fmt.Fprintf(out, "  Log level:    %s\n", cfg.LogLevel)

	// Check the transcript exists (warning only)
	if cfg.Transcript == "" {
		fmt.Fprintf(out, "\nNo transcript configured; pass one to analyze.\n")
	} else if _, err := os.Stat(cfg.Transcript); err != nil {
		fmt.Fprintf(out, "\nWarning: transcript %s is not accessible: %v\n", cfg.Transcript, err)
	} else {
		fmt.Fprintf(out, "\nTranscript: %s\n", cfg.Transcript)
	}

	return nil
}
