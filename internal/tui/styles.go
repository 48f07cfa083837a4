package tui

import (
	"github.com/charmbracelet/lipgloss"

	"SpinLedger/internal/model"
)

// Palette
var (
	ColorGain    = lipgloss.Color("#2CD7C7")
	ColorLoss    = lipgloss.Color("#E74C3C")
	ColorNeutral = lipgloss.Color("#8A9BA8")
	ColorAccent  = lipgloss.Color("#F4D03F")
	ColorMuted   = lipgloss.Color("#2C4A54")
	ColorBorder  = lipgloss.Color("#16858E")
)

// Styles
var (
	TitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(ColorGain)
	HeaderStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
	GainStyle     = lipgloss.NewStyle().Foreground(ColorGain)
	LossStyle     = lipgloss.NewStyle().Foreground(ColorLoss)
	NeutralStyle  = lipgloss.NewStyle().Foreground(ColorNeutral)
	MutedStyle    = lipgloss.NewStyle().Foreground(ColorMuted)
	CheckStyle    = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	SelectedStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
	ErrorStyle    = lipgloss.NewStyle().Foreground(ColorLoss)
	StatusStyle   = lipgloss.NewStyle().Foreground(ColorNeutral).Italic(true)
	DialogStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)
)

// trendStyle picks the delta style for a trend.
func trendStyle(t model.Trend) lipgloss.Style {
	switch t {
	case model.TrendGain:
		return GainStyle
	case model.TrendLoss:
		return LossStyle
	case model.TrendNeutral:
		return NeutralStyle
	default:
		return MutedStyle
	}
}
