package ui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"breakreminder/internal/store"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// settingsTab identifies a tab of the settings form.
type settingsTab int

const (
	tabIntervals settingsTab = iota
	tabMessages
	tabActivities
	tabSound
)

var settingsTabNames = []string{"Intervals", "Messages", "Activities", "Sound"}

func (t settingsTab) String() string {
	if int(t) < len(settingsTabNames) {
		return settingsTabNames[t]
	}
	return "?"
}

// Rows of the sound tab, in display order.
const (
	soundRowEnabled = iota
	soundRowFile
	soundRowAutoContinue
	soundRowShowActivity
	soundRowCount
)

// formResult tells the app what the last key did to the form.
type formResult int

const (
	formEditing formResult = iota
	formSave
	formCancel
)

// errIntervalValue is wrapped by parseInterval for any unusable value.
var errIntervalValue = errors.New("enter seconds (90) or a duration (25m, 1h30m)")

// SettingsForm edits a copy of the reminder configuration. Nothing reaches
// the store until the app asks for Settings and saves the result.
type SettingsForm struct {
	styles *Styles
	keys   FormKeyMap
	tab    settingsTab
	width  int
	height int

	intervalNames  []string
	intervalInputs []textinput.Model
	intervalFocus  int

	messages   textarea.Model
	activities textarea.Model

	soundEnabled bool
	autoContinue bool
	showActivity bool
	soundFile    textinput.Model
	soundFocus   int

	err string
}

// NewSettingsForm creates a form populated from cfg.
func NewSettingsForm(cfg store.Settings, styles *Styles) *SettingsForm {
	f := &SettingsForm{
		styles:     styles,
		keys:       DefaultFormKeyMap(),
		messages:   newLinesArea("One message per line"),
		activities: newLinesArea("One activity per line"),
		soundFile:  textinput.New(),
	}
	f.soundFile.Placeholder = "path to a .wav file (empty beeps)"
	f.soundFile.Prompt = ""
	f.soundFile.CharLimit = 512
	f.Load(cfg)
	return f
}

func newLinesArea(placeholder string) textarea.Model {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetHeight(8)
	return ta
}

// Load replaces every field with the values in cfg and returns to the first
// tab.
func (f *SettingsForm) Load(cfg store.Settings) {
	f.intervalNames = store.SortedIntervalNames(cfg.Intervals)
	f.intervalInputs = make([]textinput.Model, len(f.intervalNames))
	for i, name := range f.intervalNames {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 16
		ti.Width = 12
		ti.SetValue(strconv.Itoa(cfg.Intervals[name]))
		f.intervalInputs[i] = ti
	}
	f.intervalFocus = 0

	f.messages.SetValue(strings.Join(cfg.Messages, "\n"))
	f.activities.SetValue(strings.Join(cfg.BreakActivities, "\n"))

	f.soundEnabled = cfg.SoundEnabled
	f.autoContinue = cfg.AutoContinue
	f.showActivity = cfg.ShowActivitySuggestion
	f.soundFile.SetValue(cfg.SoundFile)
	f.soundFocus = soundRowEnabled

	f.err = ""
	f.setTab(tabIntervals)
}

// SetSize sets the form dimensions.
func (f *SettingsForm) SetSize(width, height int) {
	f.width = width
	f.height = height
	areaWidth := max(20, width-8)
	f.messages.SetWidth(areaWidth)
	f.activities.SetWidth(areaWidth)
	areaHeight := min(12, max(4, height-10))
	f.messages.SetHeight(areaHeight)
	f.activities.SetHeight(areaHeight)
	f.soundFile.Width = max(10, width-30)
}

// Tab returns the active tab.
func (f *SettingsForm) Tab() settingsTab {
	return f.tab
}

// Err returns the inline error, if any.
func (f *SettingsForm) Err() string {
	return f.err
}

// SetError shows an inline error below the tabs.
func (f *SettingsForm) SetError(msg string) {
	f.err = msg
}

// Settings builds the edited configuration on top of base. On an unusable
// interval value it returns an error, shows it inline and focuses the field.
func (f *SettingsForm) Settings(base store.Settings) (store.Settings, error) {
	next := base.Clone()

	intervals := make(map[string]int, len(f.intervalNames))
	for i, name := range f.intervalNames {
		secs, err := parseInterval(f.intervalInputs[i].Value())
		if err != nil {
			f.setTab(tabIntervals)
			f.focusInterval(i)
			err = fmt.Errorf("%s: %w", name, err)
			f.err = err.Error()
			return base, err
		}
		intervals[name] = secs
	}
	next.Intervals = intervals
	next.Messages = splitLines(f.messages.Value())
	next.BreakActivities = splitLines(f.activities.Value())
	next.SoundEnabled = f.soundEnabled
	next.SoundFile = strings.TrimSpace(f.soundFile.Value())
	next.AutoContinue = f.autoContinue
	next.ShowActivitySuggestion = f.showActivity

	f.err = ""
	return next, nil
}

// Update handles a key press and reports whether the user saved or left.
func (f *SettingsForm) Update(msg tea.KeyMsg) (formResult, tea.Cmd) {
	switch {
	case key.Matches(msg, f.keys.Save):
		return formSave, nil
	case key.Matches(msg, f.keys.Cancel):
		return formCancel, nil
	case key.Matches(msg, f.keys.NextTab):
		return formEditing, f.setTab((f.tab + 1) % settingsTab(len(settingsTabNames)))
	case key.Matches(msg, f.keys.PrevTab):
		n := settingsTab(len(settingsTabNames))
		return formEditing, f.setTab((f.tab + n - 1) % n)
	}

	var cmd tea.Cmd
	switch f.tab {
	case tabIntervals:
		switch {
		case key.Matches(msg, f.keys.NextField):
			return formEditing, f.focusInterval(f.intervalFocus + 1)
		case key.Matches(msg, f.keys.PrevField):
			return formEditing, f.focusInterval(f.intervalFocus - 1)
		}
		if len(f.intervalInputs) > 0 {
			f.intervalInputs[f.intervalFocus], cmd = f.intervalInputs[f.intervalFocus].Update(msg)
		}

	case tabMessages:
		f.messages, cmd = f.messages.Update(msg)

	case tabActivities:
		f.activities, cmd = f.activities.Update(msg)

	case tabSound:
		switch {
		case key.Matches(msg, f.keys.NextField):
			return formEditing, f.focusSound(f.soundFocus + 1)
		case key.Matches(msg, f.keys.PrevField):
			return formEditing, f.focusSound(f.soundFocus - 1)
		case key.Matches(msg, f.keys.Toggle) && f.soundFocus != soundRowFile:
			f.toggleSound()
			return formEditing, nil
		}
		if f.soundFocus == soundRowFile {
			f.soundFile, cmd = f.soundFile.Update(msg)
		}
	}
	return formEditing, cmd
}

func (f *SettingsForm) toggleSound() {
	switch f.soundFocus {
	case soundRowEnabled:
		f.soundEnabled = !f.soundEnabled
	case soundRowAutoContinue:
		f.autoContinue = !f.autoContinue
	case soundRowShowActivity:
		f.showActivity = !f.showActivity
	}
}

// setTab switches tabs and moves keyboard focus to the new tab's field.
func (f *SettingsForm) setTab(tab settingsTab) tea.Cmd {
	f.tab = tab
	for i := range f.intervalInputs {
		f.intervalInputs[i].Blur()
	}
	f.messages.Blur()
	f.activities.Blur()
	f.soundFile.Blur()

	switch tab {
	case tabIntervals:
		return f.focusInterval(f.intervalFocus)
	case tabMessages:
		return f.messages.Focus()
	case tabActivities:
		return f.activities.Focus()
	case tabSound:
		return f.focusSound(f.soundFocus)
	}
	return nil
}

func (f *SettingsForm) focusInterval(i int) tea.Cmd {
	if len(f.intervalInputs) == 0 {
		return nil
	}
	i = clamp(i, 0, len(f.intervalInputs)-1)
	f.intervalInputs[f.intervalFocus].Blur()
	f.intervalFocus = i
	return f.intervalInputs[i].Focus()
}

func (f *SettingsForm) focusSound(row int) tea.Cmd {
	f.soundFocus = clamp(row, 0, soundRowCount-1)
	if f.soundFocus == soundRowFile {
		return f.soundFile.Focus()
	}
	f.soundFile.Blur()
	return nil
}

// View renders the form.
func (f *SettingsForm) View() string {
	var b strings.Builder

	b.WriteString(f.styles.PaneTitleStyle.Render("Settings"))
	b.WriteString("\n")
	b.WriteString(f.renderTabs())
	b.WriteString("\n\n")

	switch f.tab {
	case tabIntervals:
		b.WriteString(f.renderIntervals())
	case tabMessages:
		b.WriteString(f.styles.StatLabelStyle.Render("Break messages, one per line. Blank lines are dropped."))
		b.WriteString("\n")
		b.WriteString(f.messages.View())
	case tabActivities:
		b.WriteString(f.styles.StatLabelStyle.Render("Suggested activities, one per line. Blank lines are dropped."))
		b.WriteString("\n")
		b.WriteString(f.activities.View())
	case tabSound:
		b.WriteString(f.renderSound())
	}

	if f.err != "" {
		b.WriteString("\n\n")
		b.WriteString(f.styles.ErrorStyle.Render(f.err))
	}
	return b.String()
}

func (f *SettingsForm) renderTabs() string {
	parts := make([]string, len(settingsTabNames))
	for i, name := range settingsTabNames {
		if settingsTab(i) == f.tab {
			parts[i] = f.styles.TabActiveStyle.Render("[" + name + "]")
		} else {
			parts[i] = f.styles.TabInactiveStyle.Render(" " + name + " ")
		}
	}
	return strings.Join(parts, "  ")
}

func (f *SettingsForm) renderIntervals() string {
	if len(f.intervalNames) == 0 {
		return f.styles.StatLabelStyle.Render("No intervals configured")
	}
	labelWidth := 0
	for _, name := range f.intervalNames {
		labelWidth = max(labelWidth, lipgloss.Width(name))
	}
	label := lipgloss.NewStyle().Width(labelWidth + 2)

	var b strings.Builder
	for i, name := range f.intervalNames {
		marker := "  "
		if i == f.intervalFocus {
			marker = f.styles.IntervalMarker + " "
		}
		b.WriteString(marker)
		b.WriteString(label.Render(name))
		b.WriteString(f.intervalInputs[i].View())
		b.WriteString(f.styles.StatLabelStyle.Render("  seconds"))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(f.styles.StatLabelStyle.Render("Values take seconds (90) or durations (25m, 1h30m)."))
	return b.String()
}

func (f *SettingsForm) renderSound() string {
	rows := []string{
		f.styles.Toggle(f.soundEnabled) + " Play a sound with each reminder",
		"Sound file  " + f.soundFile.View(),
		f.styles.Toggle(f.autoContinue) + " Continue automatically (no prompt)",
		f.styles.Toggle(f.showActivity) + " Suggest a break activity",
	}
	var b strings.Builder
	for i, row := range rows {
		if i == f.soundFocus {
			b.WriteString(f.styles.IntervalMarker + " ")
		} else {
			b.WriteString("  ")
		}
		b.WriteString(row)
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// parseInterval accepts whole seconds ("90") or a Go duration ("25m").
func parseInterval(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errIntervalValue
	}
	if secs, err := strconv.Atoi(s); err == nil {
		if secs <= 0 {
			return 0, fmt.Errorf("%q must be positive: %w", s, errIntervalValue)
		}
		return secs, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", s, errIntervalValue)
	}
	secs := int(d / time.Second)
	if secs <= 0 {
		return 0, fmt.Errorf("%q is under a second: %w", s, errIntervalValue)
	}
	return secs, nil
}

// splitLines returns the trimmed non-blank lines of s.
func splitLines(s string) []string {
	out := []string{}
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
