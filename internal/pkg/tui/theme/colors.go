package theme

import "github.com/charmbracelet/lipgloss"

// Color palette matching the dashboard
var (
	// Primary colors
	Blue       = lipgloss.Color("#0F4C81")
	BrightBlue = lipgloss.Color("#3B82F6")
	LightBlue  = lipgloss.Color("#93C5FD")

	// Neutrals
	White     = lipgloss.Color("#FFFFFF")
	LightGray = lipgloss.Color("#9CA3AF")
	DimGray   = lipgloss.Color("#6B7280")
	DarkGray  = lipgloss.Color("#374151")

	// Semantic colors
	Success = lipgloss.Color("#22C55E")
	Warning = lipgloss.Color("#F59E0B")
	Error   = lipgloss.Color("#EF4444")
)

// RateColor grades a 0-100 rate: green from 75, amber from 50, red below.
func RateColor(rate float64) lipgloss.Color {
	switch {
	case rate >= 75:
		return Success
	case rate >= 50:
		return Warning
	default:
		return Error
	}
}
