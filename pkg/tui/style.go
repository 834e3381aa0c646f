package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/unowned-ai/solace/pkg/mood"
)

// Color palette "Blue Moon" from https://gogh-co.github.io/Gogh/
const (
	colorGray     = "#353b52"
	colorWhite    = "#ffffff"
	colorGreen    = "#acfab4"
	colorGreenDim = "#b4c4b4"
	colorRed      = "#e61f44"
	colorRedDim   = "#d06178"
	colorPurple   = "#b9a3eb"
	colorBlue     = "#89ddff"
	colorYellow   = "#ffcb6b"
	colorOrange   = "#f78c6c"
)

// moodAccent tints the title bar after the current mood.
var moodAccent = map[mood.Mood]string{
	mood.Happy:    colorYellow,
	mood.Sad:      colorBlue,
	mood.Anxious:  colorOrange,
	mood.Calm:     colorGreen,
	mood.Stressed: colorRed,
	mood.Neutral:  colorPurple,
}

var (
	subtitleStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color(colorBlue))
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorGray)).
			Background(lipgloss.Color(colorGreen))
	inactiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colorWhite))
	activeTabStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color(colorGray)).
			Background(lipgloss.Color(colorBlue)).
			Padding(0, 1)
	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorBlue)).
			Padding(0, 1)
	userStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(colorGreen))
	botStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(colorPurple))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(colorRed))
	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorGray))
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, true, false, false).
			BorderForeground(lipgloss.Color(colorGray)).
			Padding(0, 2)
)

func titleStyle(m mood.Mood) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.Color(colorGray)).
		Background(lipgloss.Color(moodAccent[m])).
		Padding(0, 2).Align(lipgloss.Center)
}

// TextStatusColorize colors text green when ok and red otherwise.
func TextStatusColorize(text string, ok bool) string {
	if ok {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(colorGreenDim)).Render(text)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(colorRedDim)).Render(text)
}

// Generates pointer symbol when line in focus
func generateLinePointer(isPoint bool, length int) string {
	if isPoint {
		return ">" + strings.Repeat(" ", length-1)
	}
	return strings.Repeat(" ", length)
}

// progressBar renders pct (0-100) as a bar of width cells.
func progressBar(pct float64, width int) string {
	if width <= 0 {
		return ""
	}
	filled := int(pct / 100 * float64(width))
	filled = max(0, min(filled, width))
	return lipgloss.NewStyle().Foreground(lipgloss.Color(colorGreen)).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(lipgloss.Color(colorGray)).Render(strings.Repeat("░", width-filled))
}

// splitWidth returns the left and right column widths for a 40/60 layout.
func splitWidth(total int) (int, int) {
	left := total * 40 / 100
	return left, total - left
}
