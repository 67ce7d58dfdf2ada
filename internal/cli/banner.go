package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/glamour"
)

// printBanner writes the CLI banner with the current version.
func printBanner(w io.Writer, version string) {
	_, _ = fmt.Fprintln(w, cliPrimary.Bold(true).Render("AppForge")+" "+cliMuted.Render(version))
	_, _ = fmt.Fprintln(w, cliMuted.Render("Flutter application scaffolding"))
	_, _ = fmt.Fprintln(w)
}

// nextStepsMarkdown is the post-scaffold guide, rendered with glamour when
// the terminal supports it.
const nextStepsMarkdown = `# Next steps

Your app is scaffolded and its first test run has passed.

- ` + "`cd %s`" + ` and start editing ` + "`lib/`" + `
- ` + "`flutter run -d chrome`" + ` to relaunch the app
- Press **r** to hot reload, **R** to hot restart, **q** to quit
- Point ` + "`ApiClient`" + ` in ` + "`lib/core/backend/api_client.dart`" + ` at your API
`

// printNextSteps renders the getting-started guide for the generated
// project. Falls back to the raw markdown when rendering fails.
func printNextSteps(w io.Writer, projectDir string) {
	md := fmt.Sprintf(nextStepsMarkdown, projectDir)
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		_, _ = fmt.Fprintln(w, md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		_, _ = fmt.Fprintln(w, md)
		return
	}
	_, _ = fmt.Fprint(w, out)
}
