// Package plugins runs external chatstat-<command> binaries for commands that
// are not built in. Chart rendering and spreadsheet export live in such
// plugins; they read chatstat's JSON output instead of linking against it.
package plugins

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Prefix is prepended to a command name to form the plugin binary name.
const Prefix = "chatstat-"

// EnvBinary is set for plugins to the path of the invoking chatstat binary,
// so they can call back into "chatstat analyze -o json" or "chatstat records -o json".
const EnvBinary = "CHATSTAT_BIN"

// KnownPlugins lists plugins that have official implementations available.
// These get special error messages describing what they do.
var KnownPlugins = map[string]string{
	"chart":  "Renders activity charts (hours, weekdays, participants) from 'chatstat analyze -o json'.",
	"export": "Writes parsed messages and statistics to CSV for spreadsheets.",
}

// ErrPluginNotFound is returned when no plugin binary can be located.
var ErrPluginNotFound = errors.New("plugin not found")

// Finder locates plugin binaries.
type Finder struct {
	// Dirs are searched in order before PATH.
	Dirs []string

	// UsePath enables the final PATH lookup.
	UsePath bool
}

// DefaultFinder searches, in order:
//  1. Same directory as the chatstat binary
//  2. ~/.chatstat/plugins/
//  3. Anywhere in PATH
func DefaultFinder() *Finder {
	var dirs []string
	if execPath, err := os.Executable(); err == nil {
		dirs = append(dirs, filepath.Dir(execPath))
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(homeDir, ".chatstat", "plugins"))
	}
	return &Finder{Dirs: dirs, UsePath: true}
}

// FindPlugin searches the default locations for chatstat-<command>.
func FindPlugin(command string) (string, error) {
	return DefaultFinder().Find(command)
}

// Find returns the full path to the chatstat-<command> binary.
func (f *Finder) Find(command string) (string, error) {
	if command == "" || strings.ContainsAny(command, `/\`) {
		return "", ErrPluginNotFound
	}
	pluginName := Prefix + command

	for _, dir := range f.Dirs {
		candidate := filepath.Join(dir, pluginName)
		if isExecutable(candidate) {
			return candidate, nil
		}
	}

	if f.UsePath {
		if path, err := exec.LookPath(pluginName); err == nil {
			return path, nil
		}
	}

	return "", ErrPluginNotFound
}

// Streams are the standard streams handed to a plugin process.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// StdStreams returns the process's own standard streams.
func StdStreams() Streams {
	return Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

// Execute runs a plugin with the given arguments and returns its exit code.
func Execute(pluginPath string, args []string, streams Streams) int {
	cmd := exec.Command(pluginPath, args...) // #nosec G204 -- plugin path comes from Find
	cmd.Stdin = streams.In
	cmd.Stdout = streams.Out
	cmd.Stderr = streams.Err
	cmd.Env = os.Environ()
	if self, err := os.Executable(); err == nil {
		cmd.Env = append(cmd.Env, EnvBinary+"="+self)
	}

	err := cmd.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode()
		}
		fmt.Fprintf(streams.Err, "Error executing plugin: %v\n", err)
		return 1
	}

	return 0
}

// FormatNotFoundError returns a helpful error message when a plugin is not found.
// If the command is a known plugin, it says what the plugin does.
func FormatNotFoundError(command string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "unknown command %q for \"chatstat\"\n", command)

	if info, ok := KnownPlugins[command]; ok {
		fmt.Fprintf(&sb, "\n%q is available as a plugin.\n", command)
		sb.WriteString(info)
		sb.WriteString("\n\nInstall the plugin binary as one of:\n")
	} else {
		sb.WriteString("\nIf this is a plugin, install the binary as one of:\n")
	}

	fmt.Fprintf(&sb, "  - %s%s in the same directory as chatstat\n", Prefix, command)
	fmt.Fprintf(&sb, "  - ~/.chatstat/plugins/%s%s\n", Prefix, command)
	fmt.Fprintf(&sb, "  - %s%s anywhere in your PATH\n", Prefix, command)

	sb.WriteString("\nRun 'chatstat --help' for usage.")

	return sb.String()
}

// isExecutable checks if a regular file exists with an execute bit set.
func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular() && info.Mode()&0111 != 0
}
