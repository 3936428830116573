package logging

import (
	"fmt"
	"io"
	"os"
)

// User-facing output functions with status prefixes.
// These write to Stdout/Stderr directly for CLI output,
// separate from the structured debug logging.

var (
	// Stdout receives info and success lines.
	Stdout io.Writer = os.Stdout
	// Stderr receives warning and error lines.
	Stderr io.Writer = os.Stderr
)

// SetOutput redirects user-facing output. Nil writers restore the defaults.
func SetOutput(stdout, stderr io.Writer) {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	Stdout = stdout
	Stderr = stderr
}

// UserInfo prints an info message to stdout.
func UserInfo(format string, args ...interface{}) {
	fmt.Fprintf(Stdout, "ℹ "+format+"\n", args...)
}

// UserSuccess prints a success message to stdout.
func UserSuccess(format string, args ...interface{}) {
	fmt.Fprintf(Stdout, "✓ "+format+"\n", args...)
}

// UserWarning prints a warning message to stderr.
func UserWarning(format string, args ...interface{}) {
	fmt.Fprintf(Stderr, "⚠ "+format+"\n", args...)
}

// UserError prints an error message to stderr.
func UserError(format string, args ...interface{}) {
	fmt.Fprintf(Stderr, "✗ "+format+"\n", args...)
}
