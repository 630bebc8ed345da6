package components

import (
	"strings"

	"github.com/emiliopalmerini/worklog/internal/pkg/tui/theme"
)

// Bar is a fixed-width horizontal gauge for a 0-100 value.
type Bar struct {
	Width  int
	styles *theme.Styles
}

func NewBar(width int) Bar {
	return Bar{Width: width, styles: theme.Default()}
}

// Cells returns how many of Width cells a value fills. Values outside
// 0-100 are clamped.
func (b Bar) Cells(percent float64) int {
	if percent <= 0 || b.Width <= 0 {
		return 0
	}
	if percent >= 100 {
		return b.Width
	}
	return int(percent/100*float64(b.Width) + 0.5)
}

// View renders the bar for percent.
func (b Bar) View(percent float64) string {
	filled := b.Cells(percent)
	return b.styles.BarFilled.Render(strings.Repeat("█", filled)) +
		b.styles.BarEmpty.Render(strings.Repeat("░", b.Width-filled))
}
