// Package scaffold orchestrates project generation: flutter create, manifest
// patching, and template emission run as a fixed sequence of named steps
// with fail-fast semantics. The first failing step aborts the whole run and
// leaves the project tree in whatever partial state existed at that point.
package scaffold

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/appforge-dev/appforge/internal/appname"
	"github.com/appforge-dev/appforge/internal/flutter"
	"github.com/appforge-dev/appforge/internal/pubspec"
	"github.com/appforge-dev/appforge/internal/template"
)

// Options configures a scaffold run. The value is treated as immutable and
// threaded through every step.
type Options struct {
	AppName    string   // Validated application identifier.
	Org        string   // Organization identifier for flutter create.
	Platforms  []string // Target platforms.
	ParentDir  string   // Directory in which the project folder is created.
	Device     string   // Launch device for flutter run (default: chrome).
	SkipPubGet bool     // Skip dependency installation steps.
	SkipTests  bool     // Skip the flutter test step.
	SkipRun    bool     // Skip the flutter run step.
}

// Result summarizes a completed scaffold run.
type Result struct {
	ProjectDir   string   // Absolute path of the generated project.
	CreatedFiles []string // Project-relative paths of emitted template files.
	Warnings     []string // Non-fatal notes collected along the way.
}

// Scaffolder generates a new Flutter project skeleton.
type Scaffolder interface {
	// Scaffold runs every step in order and returns the result of the
	// first failure, if any.
	Scaffold(ctx context.Context, opts Options) (*Result, error)
}

// RunnerFactory builds a flutter.Runner bound to a project directory.
// Injected so tests can substitute a stub toolchain.
type RunnerFactory func(projectDir string) flutter.Runner

// scaffolder is the concrete implementation of Scaffolder.
type scaffolder struct {
	newRunner RunnerFactory
	emitter   *template.Emitter
	reporter  Reporter
	logger    *slog.Logger
}

// New creates a Scaffolder with the given dependencies. A nil reporter
// disables progress output; a nil logger discards log records.
func New(newRunner RunnerFactory, emitter *template.Emitter, reporter Reporter, logger *slog.Logger) Scaffolder {
	if reporter == nil {
		reporter = noopReporter{}
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &scaffolder{
		newRunner: newRunner,
		emitter:   emitter,
		reporter:  reporter,
		logger:    logger,
	}
}

// state carries the mutable run state between steps.
type state struct {
	opts       Options
	projectDir string
	manifest   string
	runner     flutter.Runner
	result     *Result
}

// step is one named unit of the pipeline.
type step struct {
	name string
	skip func(Options) bool
	run  func(ctx context.Context, st *state) error
}

// Scaffold validates the options and runs the pipeline.
func (s *scaffolder) Scaffold(ctx context.Context, opts Options) (*Result, error) {
	if err := appname.Validate(opts.AppName); err != nil {
		return nil, err
	}
	if err := flutter.ValidatePlatforms(opts.Platforms); err != nil {
		return nil, err
	}
	if opts.Device == "" {
		opts.Device = "chrome"
	}

	parent := opts.ParentDir
	if parent == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		parent = cwd
	}
	absParent, err := filepath.Abs(parent)
	if err != nil {
		return nil, fmt.Errorf("resolve parent directory %q: %w", parent, err)
	}

	projectDir := filepath.Join(absParent, opts.AppName)
	st := &state{
		opts:       opts,
		projectDir: projectDir,
		manifest:   filepath.Join(projectDir, "pubspec.yaml"),
		runner:     s.newRunner(projectDir),
		result:     &Result{ProjectDir: projectDir},
	}

	s.logger.Info("scaffolding project",
		"name", opts.AppName,
		"org", opts.Org,
		"platforms", opts.Platforms,
		"dir", projectDir,
	)

	for _, stp := range s.steps() {
		if stp.skip != nil && stp.skip(opts) {
			s.logger.Info("step skipped", "step", stp.name)
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s.reporter.StepStarted(stp.name)
		if err := stp.run(ctx, st); err != nil {
			s.reporter.StepFailed(stp.name, err)
			return nil, fmt.Errorf("%s: %w", stp.name, err)
		}
		s.reporter.StepCompleted(stp.name)
	}

	s.logger.Info("project scaffolded", "files", len(st.result.CreatedFiles))
	return st.result, nil
}

// steps returns the pipeline in execution order. The order matters: later
// steps emit files whose source text imports symbols written by earlier
// ones, and the manifest must gain dependencies before pub get installs
// them.
func (s *scaffolder) steps() []step {
	return []step{
		{
			name: "create Flutter project",
			run: func(ctx context.Context, st *state) error {
				if err := os.MkdirAll(st.projectDir, 0o755); err != nil {
					return fmt.Errorf("create project directory: %w", err)
				}
				if err := st.runner.Create(ctx, flutter.CreateOptions{
					Org:         st.opts.Org,
					ProjectName: st.opts.AppName,
					Platforms:   st.opts.Platforms,
				}); err != nil {
					return err
				}
				if err := st.runner.Config(ctx, "--enable-web"); err != nil {
					return err
				}
				return st.runner.Config(ctx, "--enable-macos-desktop")
			},
		},
		{
			name: "set initial version",
			run: func(_ context.Context, st *state) error {
				return pubspec.Patch(st.manifest, func(doc *pubspec.Document) error {
					if !doc.SetInitialVersion() {
						st.result.Warnings = append(st.result.Warnings,
							"pubspec version was not the flutter create default; left unchanged")
					}
					return nil
				})
			},
		},
		{
			name: "verify toolchain",
			run: func(ctx context.Context, st *state) error {
				return st.runner.Doctor(ctx)
			},
		},
		{
			name: "install base dependencies",
			skip: func(o Options) bool { return o.SkipPubGet },
			run: func(ctx context.Context, st *state) error {
				return st.runner.PubGet(ctx)
			},
		},
		{
			name: "add state and routing dependencies",
			run: func(_ context.Context, st *state) error {
				return pubspec.Patch(st.manifest, func(doc *pubspec.Document) error {
					if _, err := doc.AddDependencies(
						"State management and dependency injection",
						pubspec.StateDependencies,
					); err != nil {
						return err
					}
					doc.EnsureMaterialDesign()
					return nil
				})
			},
		},
		{
			name: "install dependencies",
			skip: func(o Options) bool { return o.SkipPubGet },
			run: func(ctx context.Context, st *state) error {
				return st.runner.PubGet(ctx)
			},
		},
		{
			name: "emit application templates",
			run: func(ctx context.Context, st *state) error {
				written, err := s.emitter.Emit(ctx, st.projectDir, template.StageCore,
					&template.Context{AppName: st.opts.AppName})
				st.result.CreatedFiles = append(st.result.CreatedFiles, written...)
				return err
			},
		},
		{
			name: "run tests",
			skip: func(o Options) bool { return o.SkipTests },
			run: func(ctx context.Context, st *state) error {
				return st.runner.Test(ctx)
			},
		},
		{
			name: "launch app",
			skip: func(o Options) bool { return o.SkipRun },
			run: func(ctx context.Context, st *state) error {
				return st.runner.Run(ctx, st.opts.Device)
			},
		},
		{
			name: "add backend dependencies",
			run: func(_ context.Context, st *state) error {
				return pubspec.Patch(st.manifest, func(doc *pubspec.Document) error {
					_, err := doc.AddDependencies("Backend communication", pubspec.BackendDependencies)
					return err
				})
			},
		},
		{
			name: "install backend dependencies",
			skip: func(o Options) bool { return o.SkipPubGet },
			run: func(ctx context.Context, st *state) error {
				return st.runner.PubGet(ctx)
			},
		},
		{
			name: "emit backend templates",
			run: func(ctx context.Context, st *state) error {
				written, err := s.emitter.Emit(ctx, st.projectDir, template.StageBackend,
					&template.Context{AppName: st.opts.AppName})
				st.result.CreatedFiles = append(st.result.CreatedFiles, written...)
				return err
			},
		},
	}
}
