// Package ui provides terminal output components for the appforge CLI:
// headless detection, spinners, and progress bars with non-TTY fallbacks.
package ui

// Colors holds the color palette for UI components.
type Colors struct {
	Primary   string
	Secondary string
	Success   string
	Error     string
}

// Theme configures the appearance of UI components.
type Theme struct {
	NoColor bool
	Colors  Colors
}

// ThemeConfig configures theme construction.
type ThemeConfig struct {
	NoColor bool
}

// NewTheme creates a Theme with the default palette.
func NewTheme(cfg ThemeConfig) *Theme {
	return &Theme{
		NoColor: cfg.NoColor,
		Colors: Colors{
			Primary:   "#DA7756",
			Secondary: "#4B5563",
			Success:   "#10B981",
			Error:     "#EF4444",
		},
	}
}
