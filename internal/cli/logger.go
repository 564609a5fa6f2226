// Package cli implements the precompress command-line interface.
package cli

import (
	"fmt"
	"io"
	"os"
)

// Logger provides logging functionality with verbose support. Progress and
// summaries go to stdout, per-file problems to stderr.
type Logger struct {
	out     io.Writer
	errOut  io.Writer
	verbose bool
}

// NewLogger creates a new Logger instance.
func NewLogger(verbose bool) *Logger {
	return &Logger{
		out:     os.Stdout,
		errOut:  os.Stderr,
		verbose: verbose,
	}
}

// Info prints an informational message to stdout.
func (l *Logger) Info(format string, args ...any) {
	fmt.Fprintf(l.out, format+"\n", args...)
}

// Error prints an error message to stderr.
func (l *Logger) Error(format string, args ...any) {
	fmt.Fprintf(l.errOut, format+"\n", args...)
}

// Verbose prints a debug message to stdout if verbose mode is enabled.
func (l *Logger) Verbose(format string, args ...any) {
	if l.verbose {
		fmt.Fprintf(l.out, "[VERBOSE] "+format+"\n", args...)
	}
}

// IsVerbose returns whether verbose mode is enabled.
func (l *Logger) IsVerbose() bool {
	return l.verbose
}
