// Package tui renders ecoplate dashboards: styled static summaries for
// terminal output and an interactive Bubble Tea dashboard.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/ecoplate/internal/greenops"
	"github.com/rshade/ecoplate/internal/trends"
)

// Palette.
const (
	ColorBrand   = lipgloss.Color("42")
	ColorLabel   = lipgloss.Color("245")
	ColorValue   = lipgloss.Color("255")
	ColorGood    = lipgloss.Color("40")
	ColorWarning = lipgloss.Color("214")
	ColorBad     = lipgloss.Color("196")
	ColorMuted   = lipgloss.Color("240")
)

//nolint:gochecknoglobals // Shared, immutable styles.
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorBrand).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBrand).
			Padding(0, 1)
	HeadingStyle  = lipgloss.NewStyle().Bold(true).Foreground(ColorBrand)
	LabelStyle    = lipgloss.NewStyle().Foreground(ColorLabel)
	ValueStyle    = lipgloss.NewStyle().Foreground(ColorValue).Bold(true)
	GoodStyle     = lipgloss.NewStyle().Foreground(ColorGood)
	WarningStyle  = lipgloss.NewStyle().Foreground(ColorWarning)
	BadStyle      = lipgloss.NewStyle().Foreground(ColorBad)
	HelpStyle     = lipgloss.NewStyle().Foreground(ColorMuted)
	ActiveTab     = lipgloss.NewStyle().Bold(true).Foreground(ColorValue).Background(ColorBrand).Padding(0, 1)
	InactiveTab   = lipgloss.NewStyle().Foreground(ColorLabel).Padding(0, 1)
	BarStyle      = lipgloss.NewStyle().Foreground(ColorBrand)
	SelectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
)

// RatingStyle colours a sustainability rating. HIGH is the best rating.
func RatingStyle(r greenops.Rating) lipgloss.Style {
	switch r {
	case greenops.RatingHigh:
		return GoodStyle
	case greenops.RatingMedium:
		return WarningStyle
	default:
		return BadStyle
	}
}

// TrendStyle colours a trend direction.
func TrendStyle(d trends.TrendDirection) lipgloss.Style {
	switch d {
	case trends.TrendImproving:
		return GoodStyle
	case trends.TrendWorsening:
		return BadStyle
	default:
		return LabelStyle
	}
}

// InsightStyle colours an insight by type.
func InsightStyle(t trends.InsightType) lipgloss.Style {
	switch t {
	case trends.InsightAchievement, trends.InsightCelebration:
		return GoodStyle
	case trends.InsightWarning:
		return WarningStyle
	default:
		return ValueStyle
	}
}
