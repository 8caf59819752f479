package ui

import (
	"fmt"
	"strings"
	"time"

	"breakreminder/internal/store"

	"github.com/charmbracelet/lipgloss"
)

// StatsPane shows the lifetime usage counters.
type StatsPane struct {
	styles *Styles
	stats  store.Stats
	width  int
}

// NewStatsPane creates an empty statistics pane.
func NewStatsPane(styles *Styles) *StatsPane {
	return &StatsPane{styles: styles}
}

// SetStats replaces the displayed counters.
func (p *StatsPane) SetStats(s store.Stats) {
	p.stats = s
}

// SetSize sets the pane width.
func (p *StatsPane) SetSize(width int) {
	p.width = width
}

// View renders the statistics table.
func (p *StatsPane) View() string {
	s := p.stats
	rows := []struct{ label, value string }{
		{"Total sessions", fmt.Sprintf("%d", s.TotalSessions)},
		{"Total breaks", fmt.Sprintf("%d", s.TotalBreaks)},
		{"Total work time", formatHours(s.TotalWorkTime)},
		{"Longest session", formatMinutes(s.LongestSession)},
		{"Average session", formatMinutes(s.AverageSession)},
		{"Last session", formatLastSession(s.LastSessionTime())},
	}

	label := p.styles.StatLabelStyle.Width(18)

	var b strings.Builder
	b.WriteString(p.styles.PaneTitleStyle.Render("Statistics"))
	b.WriteString("\n")
	for _, r := range rows {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			label.Render(r.label),
			p.styles.StatValueStyle.Render(r.value),
		))
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// formatHours renders seconds as hours with one decimal.
func formatHours(secs float64) string {
	return fmt.Sprintf("%.1f hours", secs/3600)
}

// formatMinutes renders seconds as minutes with one decimal.
func formatMinutes(secs float64) string {
	return fmt.Sprintf("%.1f minutes", secs/60)
}

func formatLastSession(t time.Time) string {
	if t.IsZero() {
		return "Never"
	}
	return t.Local().Format("Mon Jan 2 2006 15:04")
}

// formatCountdown renders a duration as mm:ss, or h:mm:ss past an hour.
func formatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Round(time.Second)
	h := int(d / time.Hour)
	m := int(d%time.Hour) / int(time.Minute)
	sec := int(d%time.Minute) / int(time.Second)
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, sec)
	}
	return fmt.Sprintf("%02d:%02d", m, sec)
}

// formatInterval renders an interval length for the selector.
func formatInterval(d time.Duration) string {
	switch {
	case d >= time.Hour && d%time.Hour == 0:
		return fmt.Sprintf("%dh", int(d/time.Hour))
	case d >= time.Minute && d%time.Minute == 0:
		return fmt.Sprintf("%d min", int(d/time.Minute))
	case d >= time.Minute:
		return d.Round(time.Second).String()
	default:
		return fmt.Sprintf("%d sec", int(d/time.Second))
	}
}
