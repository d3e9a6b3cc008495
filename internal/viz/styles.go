package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	canvas   lipgloss.Style
	panel    lipgloss.Style
	header   lipgloss.Style
	section  lipgloss.Style
	label    lipgloss.Style
	value    lipgloss.Style
	active   lipgloss.Style
	graph    lipgloss.Style
	help     lipgloss.Style
	results  lipgloss.Style
	formula  lipgloss.Style
	running  lipgloss.Style
	paused   lipgloss.Style
	finished lipgloss.Style
	toasts   [4]lipgloss.Style
}

func newStyles(t Theme) styles {
	toast := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	return styles{
		canvas:   lipgloss.NewStyle().Padding(1, 2).Foreground(t.Primary),
		panel:    lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(t.Muted).Padding(1, 2).Width(46),
		header:   lipgloss.NewStyle().Foreground(t.Primary).Bold(true).MarginBottom(1),
		section:  lipgloss.NewStyle().Foreground(t.Text).Bold(true).MarginTop(1),
		label:    lipgloss.NewStyle().Foreground(t.Muted).Width(14),
		value:    lipgloss.NewStyle().Foreground(t.Text),
		active:   lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		graph:    lipgloss.NewStyle().Foreground(t.Primary).Padding(1, 0),
		help:     lipgloss.NewStyle().Foreground(t.Muted).MarginTop(1),
		results:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.Success).Padding(0, 1).MarginTop(1),
		formula:  lipgloss.NewStyle().Foreground(t.Accent).Italic(true),
		running:  lipgloss.NewStyle().Foreground(t.Success).Bold(true),
		paused:   lipgloss.NewStyle().Foreground(t.Warning).Bold(true),
		finished: lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		toasts: [4]lipgloss.Style{
			ToastInfo:    toast.BorderForeground(t.Primary).Foreground(t.Text),
			ToastSuccess: toast.BorderForeground(t.Success).Foreground(t.Success),
			ToastWarning: toast.BorderForeground(t.Warning).Foreground(t.Warning),
			ToastError:   toast.BorderForeground(t.Error).Foreground(t.Error),
		},
	}
}

// ProgressBar renders a bar percent full. percent is clamped to [0, 1].
func ProgressBar(percent float64, width int) string {
	if width <= 0 {
		return ""
	}
	filled := int(percent * float64(width))
	filled = max(0, min(width, filled))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
