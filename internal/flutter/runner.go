// Package flutter wraps the external flutter toolchain. Every call is a
// black-box invocation: the generated project comes entirely from the tool,
// and any non-zero exit aborts the caller's run.
package flutter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"slices"
	"strings"
)

// Sentinel errors for toolchain operations.
var (
	// ErrFlutterNotFound indicates the flutter binary is not on PATH.
	ErrFlutterNotFound = errors.New("flutter: flutter binary not found in PATH")

	// ErrCommandFailed indicates a flutter invocation exited non-zero.
	ErrCommandFailed = errors.New("flutter: command failed")

	// ErrUnknownPlatform indicates a platform name outside the known set.
	ErrUnknownPlatform = errors.New("flutter: unknown platform")
)

// KnownPlatforms are the platform targets flutter create accepts.
var KnownPlatforms = []string{"ios", "android", "web", "macos", "linux", "windows"}

// ValidatePlatforms checks every entry against the known platform set.
func ValidatePlatforms(platforms []string) error {
	if len(platforms) == 0 {
		return fmt.Errorf("%w: no platforms given", ErrUnknownPlatform)
	}
	for _, p := range platforms {
		if !slices.Contains(KnownPlatforms, p) {
			return fmt.Errorf("%w: %q (known: %s)", ErrUnknownPlatform, p, strings.Join(KnownPlatforms, ", "))
		}
	}
	return nil
}

// CreateOptions configures a flutter create invocation.
type CreateOptions struct {
	Org         string   // Organization identifier (reverse-DNS).
	ProjectName string   // Validated application identifier.
	Platforms   []string // Target platforms, comma-joined on the command line.
}

// Runner drives the flutter CLI. Implementations execute in a fixed working
// directory; construct one runner per project.
type Runner interface {
	// Create runs flutter create with the given options against the
	// working directory.
	Create(ctx context.Context, opts CreateOptions) error

	// Config runs flutter config with the given flags
	// (e.g. --enable-web, --enable-macos-desktop).
	Config(ctx context.Context, flags ...string) error

	// PubGet resolves and installs pub dependencies.
	PubGet(ctx context.Context) error

	// Doctor checks the toolchain installation.
	Doctor(ctx context.Context) error

	// Test runs the project's test suite.
	Test(ctx context.Context) error

	// Run launches the app on the named device and blocks until it exits.
	Run(ctx context.Context, device string) error
}

// CommandError carries the details of a failed flutter invocation.
type CommandError struct {
	Args     []string
	ExitCode int
	Stderr   string
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	msg := fmt.Sprintf("flutter %s exited with code %d", strings.Join(e.Args, " "), e.ExitCode)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}

// Unwrap supports errors.Is(err, ErrCommandFailed).
func (e *CommandError) Unwrap() error {
	return ErrCommandFailed
}

// execRunner is the concrete Runner backed by os/exec.
type execRunner struct {
	workDir string
	verbose bool
	stdout  io.Writer
	stderr  io.Writer
	stdin   io.Reader
	logger  *slog.Logger
}

// Option configures an execRunner.
type Option func(*execRunner)

// WithVerbose streams command output to the runner's writers instead of
// capturing it.
func WithVerbose(verbose bool) Option {
	return func(r *execRunner) { r.verbose = verbose }
}

// WithOutput redirects streamed command output (default os.Stdout/os.Stderr).
func WithOutput(stdout, stderr io.Writer) Option {
	return func(r *execRunner) {
		r.stdout = stdout
		r.stderr = stderr
	}
}

// WithLogger sets the structured logger (default: discard).
func WithLogger(logger *slog.Logger) Option {
	return func(r *execRunner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRunner creates a Runner executing in workDir.
func NewRunner(workDir string, opts ...Option) Runner {
	r := &execRunner{
		workDir: workDir,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
		stdin:   os.Stdin,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// LookPath reports whether the flutter binary is available.
func LookPath() error {
	if _, err := exec.LookPath("flutter"); err != nil {
		return ErrFlutterNotFound
	}
	return nil
}

// InstallHint returns a short instruction for installing Flutter.
func InstallHint() string {
	return "Install Flutter from https://docs.flutter.dev/get-started/install and ensure it is on your PATH."
}

func (r *execRunner) Create(ctx context.Context, opts CreateOptions) error {
	return r.execute(ctx,
		"create",
		"--org", opts.Org,
		"--project-name", opts.ProjectName,
		"--platforms", strings.Join(opts.Platforms, ","),
		".",
	)
}

func (r *execRunner) Config(ctx context.Context, flags ...string) error {
	return r.execute(ctx, append([]string{"config"}, flags...)...)
}

func (r *execRunner) PubGet(ctx context.Context) error {
	return r.execute(ctx, "pub", "get")
}

func (r *execRunner) Doctor(ctx context.Context) error {
	return r.execute(ctx, "doctor")
}

func (r *execRunner) Test(ctx context.Context) error {
	return r.execute(ctx, "test")
}

// Run attaches stdin so the hot-reload keys (r, R, q) reach the tool.
func (r *execRunner) Run(ctx context.Context, device string) error {
	cmd := exec.CommandContext(ctx, "flutter", "run", "-d", device)
	cmd.Dir = r.workDir
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr
	cmd.Stdin = r.stdin

	r.logger.Info("running flutter", "args", []string{"run", "-d", device}, "dir", r.workDir)
	if err := cmd.Run(); err != nil {
		return r.wrapExitError([]string{"run", "-d", device}, err, "")
	}
	return nil
}

// execute runs flutter with args in the working directory. Output is
// streamed in verbose mode and captured otherwise, so failures can report
// what the tool printed.
func (r *execRunner) execute(ctx context.Context, args ...string) error {
	cmd := exec.CommandContext(ctx, "flutter", args...)
	cmd.Dir = r.workDir

	var stderrBuf bytes.Buffer
	if r.verbose {
		cmd.Stdout = r.stdout
		cmd.Stderr = r.stderr
	} else {
		cmd.Stdout = io.Discard
		cmd.Stderr = &stderrBuf
	}

	r.logger.Info("running flutter", "args", args, "dir", r.workDir)
	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return r.wrapExitError(args, err, stderrBuf.String())
	}
	return nil
}

func (r *execRunner) wrapExitError(args []string, err error, stderr string) error {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &CommandError{Args: args, ExitCode: exitErr.ExitCode(), Stderr: stderr}
	}
	if errors.Is(err, exec.ErrNotFound) {
		return ErrFlutterNotFound
	}
	return fmt.Errorf("%w: flutter %s: %v", ErrCommandFailed, strings.Join(args, " "), err)
}
