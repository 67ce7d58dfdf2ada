// Package cli implements the appforge command tree.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/appforge-dev/appforge/pkg/version"
)

var rootCmd = &cobra.Command{
	Use:   "appforge",
	Short: "AppForge: scaffold Flutter application skeletons",
	Long: `AppForge bootstraps new Flutter applications with a predetermined stack:
Riverpod state management, go_router navigation, a light/dark theme system,
and a dio-based API client, all wired together and verified with a first
test run.`,
	Version: version.GetVersion(),
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("appforge %s\n", version.GetVersion()))
}
