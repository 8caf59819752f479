package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// HelpOverlay renders a help screen
type HelpOverlay struct {
	width   int
	height  int
	styles  *Styles
	global  GlobalKeyMap
	session SessionKeyMap
	prompt  PromptKeyMap
}

// NewHelpOverlay creates a new help overlay with the default key bindings.
func NewHelpOverlay(styles *Styles) *HelpOverlay {
	return &HelpOverlay{
		styles:  styles,
		global:  DefaultGlobalKeyMap(),
		session: DefaultSessionKeyMap(),
		prompt:  DefaultPromptKeyMap(),
	}
}

// SetKeys shows the configured bindings instead of the defaults.
func (h *HelpOverlay) SetKeys(global GlobalKeyMap, session SessionKeyMap, prompt PromptKeyMap) {
	h.global = global
	h.session = session
	h.prompt = prompt
}

// SetSize sets the overlay dimensions
func (h *HelpOverlay) SetSize(width, height int) {
	h.width = width
	h.height = height
}

// View renders the help overlay
func (h *HelpOverlay) View() string {
	overlayWidth := 60
	if h.width > 0 {
		overlayWidth = min(60, max(20, h.width-4))
	}

	overlayStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(h.styles.ColorPrimary).
		Padding(1, 2).
		Width(overlayWidth)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(h.styles.ColorPrimary).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(h.styles.ColorAccent).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(h.styles.ColorWarning).
		Width(12)

	descStyle := lipgloss.NewStyle().
		Foreground(h.styles.ColorText)

	mutedStyle := lipgloss.NewStyle().
		Foreground(h.styles.ColorTextMuted).
		Italic(true)

	line := func(b *strings.Builder, k, desc string) {
		b.WriteString(keyStyle.Render(k) + descStyle.Render(desc) + "\n")
	}
	bind := func(b *strings.Builder, kb key.Binding, desc string) {
		line(b, strings.Join(kb.Keys(), " / "), desc)
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("breakreminder - Keyboard Shortcuts"))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Session"))
	b.WriteString("\n")
	bind(&b, h.session.Prev, "Previous interval")
	bind(&b, h.session.Next, "Next interval")
	bind(&b, h.session.Start, "Start reminders")
	bind(&b, h.session.Stop, "Stop session")
	bind(&b, h.session.Hide, "Hide to tray")
	bind(&b, h.session.Show, "Show window")

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Views"))
	b.WriteString("\n")
	bind(&b, h.session.Settings, "Settings")
	bind(&b, h.session.Stats, "Statistics")
	bind(&b, h.session.History, "History (r refresh, c clear)")

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Break Prompt"))
	b.WriteString("\n")
	bind(&b, h.prompt.Continue, "Continue working")
	bind(&b, h.prompt.EndBreaks, "Stop the session")

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Settings Form"))
	b.WriteString("\n")
	line(&b, "Tab", "Next tab")
	line(&b, "↑ / ↓", "Move between fields")
	line(&b, "Space", "Toggle option")
	line(&b, "Ctrl+S", "Save")
	line(&b, "Esc", "Cancel")

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Global"))
	b.WriteString("\n")
	bind(&b, h.global.Undo, "Undo")
	bind(&b, h.global.Redo, "Redo")
	bind(&b, h.global.Help, "Toggle help")
	bind(&b, h.global.Quit, "Quit")

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("Press ? or Esc to close"))

	content := overlayStyle.Render(b.String())

	return lipgloss.Place(
		h.width,
		h.height,
		lipgloss.Center,
		lipgloss.Center,
		content,
	)
}
