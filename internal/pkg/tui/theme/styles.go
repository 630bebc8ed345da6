package theme

import (
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Styles contains the shared terminal styles.
type Styles struct {
	// Text styles
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Muted    lipgloss.Style

	// Layout
	Card lipgloss.Style

	// Bars
	BarFilled lipgloss.Style
	BarEmpty  lipgloss.Style

	// Status indicators
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
}

var (
	defaultStyles *Styles
	once          sync.Once
)

// Default returns the singleton default Styles instance
func Default() *Styles {
	once.Do(func() {
		defaultStyles = newStyles()
	})
	return defaultStyles
}

func newStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(White).
			Background(Blue).
			Padding(0, 1),

		Subtitle: lipgloss.NewStyle().
			Foreground(BrightBlue).
			Bold(true).
			MarginTop(1),

		Label: lipgloss.NewStyle().
			Foreground(LightGray).
			Width(24),

		Value: lipgloss.NewStyle().
			Bold(true).
			Foreground(White),

		Muted: lipgloss.NewStyle().
			Foreground(DimGray),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DarkGray).
			Padding(0, 1),

		BarFilled: lipgloss.NewStyle().
			Foreground(BrightBlue),

		BarEmpty: lipgloss.NewStyle().
			Foreground(DarkGray),

		Success: lipgloss.NewStyle().
			Foreground(Success),

		Warning: lipgloss.NewStyle().
			Foreground(Warning),

		Error: lipgloss.NewStyle().
			Foreground(Error),
	}
}

// Rate renders a formatted rate in its grade color.
func (s *Styles) Rate(rate float64, text string) string {
	return lipgloss.NewStyle().Foreground(RateColor(rate)).Render(text)
}
