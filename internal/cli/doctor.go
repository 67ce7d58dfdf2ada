package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/appforge-dev/appforge/internal/flutter"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the Flutter toolchain",
	Long:  "Run flutter doctor and report whether the toolchain is ready for scaffolding.",
	RunE:  runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	if err := flutter.LookPath(); err != nil {
		return fmt.Errorf("%w\n  %s", err, flutter.InstallHint())
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolve working directory: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	runner := flutter.NewRunner(cwd,
		flutter.WithVerbose(true),
		flutter.WithOutput(cmd.OutOrStdout(), cmd.ErrOrStderr()),
	)
	if err := runner.Doctor(ctx); err != nil {
		return fmt.Errorf("flutter doctor reported problems: %w", err)
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), cliSuccess.Render("✓ Flutter toolchain is ready"))
	return nil
}
