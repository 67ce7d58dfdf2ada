// Package wizard provides the interactive prompt that collects the
// application name for a new project.
package wizard

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/appforge-dev/appforge/internal/appname"
)

// ErrCancelled indicates the user aborted the wizard (Ctrl-C / Esc).
var ErrCancelled = errors.New("wizard: cancelled by user")

// Result holds the user's answers.
type Result struct {
	AppName string // Validated application identifier.
}

// Run executes the app-name prompt and returns the result. The form
// re-prompts with a diagnostic until the input matches the identifier
// grammar; there is no retry limit. Aborting the form returns ErrCancelled.
func Run() (*Result, error) {
	result := &Result{}

	input := huh.NewInput().
		Title("App name").
		Description("Lowercase letters, numbers and underscores; must start with a letter.").
		Placeholder("my_app").
		Value(&result.AppName).
		Validate(func(val string) error {
			return appname.Validate(strings.TrimSpace(val))
		})

	form := huh.NewForm(huh.NewGroup(input)).
		WithTheme(newWizardTheme()).
		WithAccessible(false)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, ErrCancelled
		}
		return nil, fmt.Errorf("wizard error: %w", err)
	}

	result.AppName = strings.TrimSpace(result.AppName)
	return result, nil
}

// newWizardTheme builds the huh theme matching the CLI palette.
func newWizardTheme() *huh.Theme {
	t := huh.ThemeBase()

	primary := lipgloss.AdaptiveColor{Light: "#C45A3C", Dark: "#DA7756"}
	errColor := lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#EF4444"}

	t.Focused.Title = t.Focused.Title.Foreground(primary).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"})
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(errColor)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(errColor)
	t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(primary)

	return t
}
