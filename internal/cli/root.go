// Package cli provides the command-line interface for chatstat.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/chatstat/internal/cli/commands"
	"github.com/ccollicutt/chatstat/internal/cli/plugins"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	return run(os.Args[1:], plugins.DefaultFinder(), plugins.StdStreams())
}

func run(args []string, finder *plugins.Finder, streams plugins.Streams) int {
	commands.ExitCode = 0

	rootCmd := NewRootCommand()
	rootCmd.SetArgs(args)
	rootCmd.SetIn(streams.In)
	rootCmd.SetOut(streams.Out)
	rootCmd.SetErr(streams.Err)

	// An unknown first argument may be a plugin command
	pluginCandidate := ""
	if len(args) > 0 && len(args[0]) > 0 && args[0][0] != '-' && !isBuiltinCommand(rootCmd, args[0]) {
		pluginCandidate = args[0]
		if pluginPath, err := finder.Find(pluginCandidate); err == nil {
			return plugins.Execute(pluginPath, args[1:], streams)
		}
		// Plugin not found - will fall through to Cobra which will show error
	}

	if err := rootCmd.Execute(); err != nil {
		if pluginCandidate != "" {
			_, _ = fmt.Fprintln(streams.Err, plugins.FormatNotFoundError(pluginCandidate))
			return 2
		}
		// SilenceErrors prevents Cobra from printing this
		_, _ = fmt.Fprintf(streams.Err, "Error: %v\n", err)
		return 2 // Configuration or runtime error
	}
	return commands.ExitCode
}

// isBuiltinCommand checks if a command name is a built-in cobra command.
func isBuiltinCommand(rootCmd *cobra.Command, name string) bool {
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == name || cmd.HasAlias(name) {
			return true
		}
	}
	// Also check for special commands like help and completion
	return name == "help" || name == "completion"
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "chatstat",
		Short: "Message statistics for exported chat transcripts",
		Long: `chatstat parses exported chat transcripts and reports who talks most,
when the chat is busiest, and which words come up most often.

Messages that span several lines are reassembled before counting. Lines
that cannot be read are counted and reported instead of stopping the run.

PLUGINS:
  chatstat supports plugins for extended functionality. Plugins are standalone
  binaries named chatstat-<command> that are automatically discovered and invoked.

  Plugin locations (searched in order):
    1. Same directory as the chatstat binary
    2. ~/.chatstat/plugins/
    3. Anywhere in PATH

  Known plugins:
    chart    Activity charts from analyze -o json
    export   CSV export of messages and statistics`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add subcommands
	rootCmd.AddCommand(commands.NewAnalyzeCommand())
	rootCmd.AddCommand(commands.NewRecordsCommand())
	rootCmd.AddCommand(commands.NewDetectCommand())
	rootCmd.AddCommand(commands.NewDiagnoseCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
