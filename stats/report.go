package stats

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
)

const (
	plotHeight = 6
	plotWidth  = 60
)

// Report renders the summary and a frame-time plot for printing after the screen is released
func (r *Recorder) Report() string {
	s := r.Summary()

	var b strings.Builder
	b.WriteString(headerStyle.Render("particle field"))
	b.WriteString("\n")
	row := func(label, value string) {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), valueStyle.Render(value)))
		b.WriteString("\n")
	}
	row("frames", fmt.Sprintf("%d", s.Frames))
	row("skipped", fmt.Sprintf("%d", s.Skipped))
	row("resets", fmt.Sprintf("%d", s.Resets))
	row("links/frame", fmt.Sprintf("%.1f", s.AvgLinks))
	row("mean", fmt.Sprintf("%.3f ms", s.MeanMs))
	row("p95", fmt.Sprintf("%.3f ms", s.P95Ms))
	row("max", fmt.Sprintf("%.3f ms", s.MaxMs))

	if w := r.Window(); len(w) > 1 {
		plot := asciigraph.Plot(w,
			asciigraph.Height(plotHeight),
			asciigraph.Width(plotWidth),
			asciigraph.Caption("frame time (ms)"),
		)
		b.WriteString(graphStyle.Render(plot))
	}

	return boxStyle.Render(strings.TrimRight(b.String(), "\n"))
}
