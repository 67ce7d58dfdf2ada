package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/appforge-dev/appforge/internal/appname"
	"github.com/appforge-dev/appforge/internal/cli/wizard"
	"github.com/appforge-dev/appforge/internal/config"
	"github.com/appforge-dev/appforge/internal/flutter"
	"github.com/appforge-dev/appforge/internal/scaffold"
	"github.com/appforge-dev/appforge/internal/template"
	"github.com/appforge-dev/appforge/internal/ui"
	"github.com/appforge-dev/appforge/pkg/version"
)

var newCmd = &cobra.Command{
	Use:   "new [app-name]",
	Short: "Scaffold a new Flutter application",
	Long: `Scaffold a new Flutter application with the AppForge stack.

Usage patterns:
  appforge new my_app        Create ./my_app/ and scaffold inside it
  appforge new               Prompt for the app name interactively

The app name must be lowercase, start with a letter, and contain only
letters, numbers, and underscores.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNew,
}

func init() {
	rootCmd.AddCommand(newCmd)

	newCmd.Flags().String("org", "", "Organization identifier for flutter create (default: com.app.template)")
	newCmd.Flags().String("platforms", "", "Comma-separated target platforms (default: ios,android,web,macos)")
	newCmd.Flags().String("dir", "", "Parent directory for the project folder (default: current directory)")
	newCmd.Flags().String("device", "", "Device for the launch step (default: chrome)")
	newCmd.Flags().Bool("non-interactive", false, "Skip the wizard; the app name must be given as an argument")
	newCmd.Flags().Bool("skip-pub-get", false, "Skip dependency installation steps")
	newCmd.Flags().Bool("skip-tests", false, "Skip the flutter test step")
	newCmd.Flags().Bool("skip-run", false, "Skip launching the app after scaffolding")
	newCmd.Flags().Bool("verbose", false, "Stream flutter command output")
	newCmd.Flags().Bool("no-color", false, "Disable colored output")
}

// getStringFlag retrieves a string flag value from the command.
func getStringFlag(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		return ""
	}
	return val
}

// getBoolFlag retrieves a bool flag value from the command.
func getBoolFlag(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		return false
	}
	return val
}

// runNew executes the scaffold workflow.
func runNew(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	cfg, err := config.LoadDefault()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	org := getStringFlag(cmd, "org")
	if org == "" {
		org = cfg.Org
	}
	platforms := cfg.Platforms
	if raw := getStringFlag(cmd, "platforms"); raw != "" {
		platforms = splitPlatforms(raw)
	}
	device := getStringFlag(cmd, "device")
	if device == "" {
		device = cfg.Device
	}

	nonInteractive := getBoolFlag(cmd, "non-interactive")
	interactive := !nonInteractive && isatty.IsTerminal(os.Stdin.Fd())

	appName := ""
	if len(args) > 0 {
		appName = args[0]
	}

	if appName == "" {
		if !interactive {
			return errors.New("app name required: pass it as an argument or run on a terminal")
		}
		printBanner(out, version.GetVersion())
		result, err := wizard.Run()
		if err != nil {
			if errors.Is(err, wizard.ErrCancelled) {
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Scaffold cancelled.")
				return nil
			}
			return fmt.Errorf("wizard failed: %w", err)
		}
		appName = result.AppName
	}

	// Flag-provided names bypass the wizard, so validate here as well.
	if err := appname.Validate(appName); err != nil {
		return err
	}

	if err := flutter.LookPath(); err != nil {
		return fmt.Errorf("%w\n  %s", err, flutter.InstallHint())
	}

	verbose := getBoolFlag(cmd, "verbose")
	noColor := getBoolFlag(cmd, "no-color")

	theme := ui.NewTheme(ui.ThemeConfig{NoColor: noColor})
	hm := ui.NewHeadlessManager()
	if nonInteractive {
		hm.ForceHeadless(true)
	}

	var reporter scaffold.Reporter
	var spinReporter *spinnerReporter
	if verbose {
		// Streamed tool output and an animated spinner would fight over
		// the terminal; fall back to plain step lines.
		reporter = scaffold.NewConsoleReporter()
	} else {
		spinReporter = newSpinnerReporter(ui.NewProgress(theme, hm))
		reporter = spinReporter
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if verbose {
		logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))
	}

	factory := func(dir string) flutter.Runner {
		return flutter.NewRunner(dir,
			flutter.WithVerbose(verbose),
			flutter.WithLogger(logger),
		)
	}

	fsys, err := template.EmbeddedTemplates()
	if err != nil {
		return fmt.Errorf("load embedded templates: %w", err)
	}

	sc := scaffold.New(factory, template.NewEmitter(fsys), reporter, logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	result, err := sc.Scaffold(ctx, scaffold.Options{
		AppName:    appName,
		Org:        org,
		Platforms:  platforms,
		ParentDir:  getStringFlag(cmd, "dir"),
		Device:     device,
		SkipPubGet: getBoolFlag(cmd, "skip-pub-get"),
		SkipTests:  getBoolFlag(cmd, "skip-tests"),
		SkipRun:    getBoolFlag(cmd, "skip-run"),
	})
	if spinReporter != nil {
		spinReporter.Stop()
	}
	if err != nil {
		return fmt.Errorf("scaffold failed: %w", err)
	}

	details := []string{
		renderKeyValueLines([]kvPair{
			{"App", appname.Display(appName)},
			{"Location", result.ProjectDir},
			{"Platforms", strings.Join(platforms, ", ")},
			{"Files", fmt.Sprintf("%d generated", len(result.CreatedFiles))},
		}),
	}
	for _, w := range result.Warnings {
		details = append(details, cliWarn.Render("Warning: "+w))
	}
	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, renderSuccessCard(appName+" scaffolded", details...))

	printNextSteps(out, result.ProjectDir)
	return nil
}

// splitPlatforms parses a comma-separated platform list.
func splitPlatforms(raw string) []string {
	parts := strings.Split(raw, ",")
	platforms := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			platforms = append(platforms, trimmed)
		}
	}
	return platforms
}

// spinnerReporter drives a ui spinner from scaffold step transitions.
type spinnerReporter struct {
	progress ui.Progress
	spinner  ui.Spinner
}

func newSpinnerReporter(p ui.Progress) *spinnerReporter {
	return &spinnerReporter{progress: p}
}

func (r *spinnerReporter) StepStarted(name string) {
	if r.spinner == nil {
		r.spinner = r.progress.Spinner(name)
		return
	}
	r.spinner.SetTitle(name)
}

func (r *spinnerReporter) StepCompleted(string) {}

func (r *spinnerReporter) StepFailed(string, error) {
	r.Stop()
}

// Stop halts the spinner if one was started.
func (r *spinnerReporter) Stop() {
	if r.spinner != nil {
		r.spinner.Stop()
		r.spinner = nil
	}
}
