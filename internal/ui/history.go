package ui

import (
	"fmt"
	"strings"

	"breakreminder/internal/store"

	"github.com/charmbracelet/lipgloss"
)

// historyLimit is how many entries the history view shows.
const historyLimit = 20

// HistoryPane lists the most recent answered prompts, newest first.
type HistoryPane struct {
	styles  *Styles
	entries []store.HistoryEntry
	total   int
	width   int
	height  int
}

// NewHistoryPane creates an empty history pane.
func NewHistoryPane(styles *Styles) *HistoryPane {
	return &HistoryPane{styles: styles}
}

// Refresh reloads the visible entries from history.
func (p *HistoryPane) Refresh(history *store.HistoryStore) {
	p.entries = history.Recent(historyLimit)
	p.total = history.Len()
}

// SetSize sets the pane dimensions.
func (p *HistoryPane) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// Len returns the number of visible entries.
func (p *HistoryPane) Len() int {
	return len(p.entries)
}

// View renders the history list.
func (p *HistoryPane) View() string {
	var b strings.Builder
	title := "Break History"
	if p.total > len(p.entries) {
		title = fmt.Sprintf("Break History (latest %d of %d)", len(p.entries), p.total)
	}
	b.WriteString(p.styles.PaneTitleStyle.Render(title))
	b.WriteString("\n")

	if len(p.entries) == 0 {
		b.WriteString(p.styles.StatLabelStyle.Render("No breaks recorded yet."))
		return b.String()
	}

	// Leave room for the timestamp and action columns.
	textWidth := max(10, p.width-30)
	actionWidth := lipgloss.NewStyle().Width(9)

	rows := len(p.entries)
	if p.height > 0 {
		rows = min(rows, max(1, p.height-2))
	}
	for _, e := range p.entries[:rows] {
		when := "unknown time    "
		if ts := e.Time(); !ts.IsZero() {
			when = ts.Local().Format("2006-01-02 15:04")
		}

		action := string(e.Action)
		switch e.Action {
		case store.ActionContinue:
			action = p.styles.ActionContinueStyle.Render(action)
		case store.ActionStop:
			action = p.styles.ActionStopStyle.Render(action)
		}

		text := e.Message
		if e.Activity != "" {
			text += " · " + e.Activity
		}

		b.WriteString(p.styles.DateStyle.Render(when))
		b.WriteString("  ")
		b.WriteString(actionWidth.Render(action))
		b.WriteString(truncateText(text, textWidth))
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}
