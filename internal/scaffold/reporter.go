package scaffold

import (
	"fmt"
	"io"
	"os"
)

// Reporter receives step-level progress during a scaffold run.
type Reporter interface {
	// StepStarted is called when a step begins.
	StepStarted(name string)
	// StepCompleted is called when a step finishes successfully.
	StepCompleted(name string)
	// StepFailed is called when a step returns an error.
	StepFailed(name string, err error)
}

// noopReporter is the default when no reporter is attached.
type noopReporter struct{}

func (noopReporter) StepStarted(string)       {}
func (noopReporter) StepCompleted(string)     {}
func (noopReporter) StepFailed(string, error) {}

// ConsoleReporter prints one line per step transition.
type ConsoleReporter struct {
	out io.Writer
}

// NewConsoleReporter creates a ConsoleReporter writing to os.Stdout.
func NewConsoleReporter() *ConsoleReporter {
	return &ConsoleReporter{out: os.Stdout}
}

// NewConsoleReporterWithWriter creates a ConsoleReporter with a custom
// writer (for testing).
func NewConsoleReporterWithWriter(w io.Writer) *ConsoleReporter {
	return &ConsoleReporter{out: w}
}

func (r *ConsoleReporter) StepStarted(name string) {
	_, _ = fmt.Fprintf(r.out, "→ %s...\n", name)
}

func (r *ConsoleReporter) StepCompleted(name string) {
	_, _ = fmt.Fprintf(r.out, "✓ %s\n", name)
}

func (r *ConsoleReporter) StepFailed(name string, err error) {
	_, _ = fmt.Fprintf(r.out, "✗ %s: %v\n", name, err)
}
