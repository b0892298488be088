// Package lipgloss renders benchmark scores using the Lipgloss styling library.
package lipgloss

// Palette holds the semantic colors used for score output.
type Palette struct {
	Pass    string // Scores at or above the pass threshold
	Partial string // Scores between the partial and pass thresholds
	Fail    string
	Header  string
	Border  string
	Muted   string
}

// Theme is a named palette with score thresholds.
type Theme struct {
	palette Palette
	// Scores at or above these percentages use Pass and Partial colors.
	passAt    float64
	partialAt float64
}

// Palette returns the color palette for this theme.
func (t *Theme) Palette() Palette {
	return t.palette
}

// ScoreColor returns the palette color for a percentage score.
func (t *Theme) ScoreColor(score float64) string {
	switch {
	case score >= t.passAt:
		return t.palette.Pass
	case score >= t.partialAt:
		return t.palette.Partial
	default:
		return t.palette.Fail
	}
}

// DefaultTheme returns the default theme (dark background optimized).
func DefaultTheme() *Theme {
	return DarkTheme()
}

// ThemeFor picks the dark or light theme for the terminal background.
func ThemeFor(hasDarkBackground bool) *Theme {
	if hasDarkBackground {
		return DarkTheme()
	}
	return LightTheme()
}

// DarkTheme returns a theme optimized for dark terminal backgrounds.
func DarkTheme() *Theme {
	return &Theme{
		palette: Palette{
			// Catppuccin Mocha
			Pass:    "#a6e3a1",
			Partial: "#f9e2af",
			Fail:    "#f38ba8",
			Header:  "#89b4fa",
			Border:  "#45475a",
			Muted:   "#6c7086",
		},
		passAt:    80,
		partialAt: 50,
	}
}

// LightTheme returns a theme optimized for light terminal backgrounds.
func LightTheme() *Theme {
	return &Theme{
		palette: Palette{
			// Catppuccin Latte
			Pass:    "#40a02b",
			Partial: "#df8e1d",
			Fail:    "#d20f39",
			Header:  "#1e66f5",
			Border:  "#bcc0cc",
			Muted:   "#9ca0b0",
		},
		passAt:    80,
		partialAt: 50,
	}
}
