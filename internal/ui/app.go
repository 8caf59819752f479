// Package ui provides the terminal user interface for breakreminder.
// This file contains the main App model. It owns the reminder session, the
// tray presence and the stores, and routes every event through the Bubble
// Tea update loop so that state is only touched from one goroutine.
package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"breakreminder/internal/config"
	"breakreminder/internal/reminder"
	"breakreminder/internal/store"
	"breakreminder/internal/tray"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// View identifies the screen shown in the window.
type View int

const (
	ViewMain View = iota
	ViewSettings
	ViewStats
	ViewHistory
)

// LayoutMode determines how the main view is arranged based on terminal width.
type LayoutMode int

const (
	// LayoutWide shows the session panel and the interval list side-by-side.
	LayoutWide LayoutMode = iota
	// LayoutNarrow stacks them.
	LayoutNarrow
)

// AppConfig holds user configuration for the app behavior.
type AppConfig struct {
	Keys                  *config.KeysConfig
	ConfirmClear          bool
	HideOnStart           bool
	NarrowLayoutThreshold int
}

// DefaultAppConfig mirrors the preference defaults.
func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		Keys:                  &config.KeysConfig{},
		ConfirmClear:          true,
		HideOnStart:           true,
		NarrowLayoutThreshold: 60,
	}
}

// Deps are the collaborators the app drives. Only Storage is required.
type Deps struct {
	Storage  *store.Storage
	Presence *tray.Presence
	Player   Alerter
	Notifier Announcer
	// Changes signals external edits of the settings file.
	Changes <-chan struct{}
	Picker  *reminder.Picker
	Logger  *log.Logger
	Now     func() time.Time
}

// App is the main application model.
type App struct {
	storage  *store.Storage
	session  *reminder.Session
	presence *tray.Presence
	player   Alerter
	notifier Announcer
	changes  <-chan struct{}
	logger   *log.Logger
	now      func() time.Time

	styles       *Styles
	config       *AppConfig
	helpOverlay  *HelpOverlay
	settingsForm *SettingsForm
	statsPane    *StatsPane
	historyPane  *HistoryPane
	undoManager  *UndoManager
	confirm      *confirmState

	view        View
	layoutMode  LayoutMode
	hidden      bool
	rehide      bool // hide again once the prompt that surfaced the window is answered
	showHelp    bool
	width       int
	height      int
	status      string
	statusErr   bool
	statusUntil time.Time
	quitting    bool
	breaks      int

	// Key bindings
	keys        GlobalKeyMap
	sessionKeys SessionKeyMap
	promptKeys  PromptKeyMap
	listKeys    ListKeyMap
	helpKeys    HelpKeyMap

	// Widths of the main view panels, set by updateLayout.
	sessionWidth  int
	intervalWidth int
}

type confirmState struct {
	title  string
	body   string
	action func()
}

// NewApp creates a new application around deps.Storage.
func NewApp(deps Deps, styles *Styles, cfg *AppConfig) *App {
	if cfg == nil {
		cfg = DefaultAppConfig()
	}
	if cfg.Keys == nil {
		cfg.Keys = &config.KeysConfig{}
	}
	logger := deps.Logger
	if logger == nil {
		logger = log.New(nopWriter{})
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	presence := deps.Presence
	if presence == nil {
		factory, _, _ := tray.NewFactory(tray.BackendNone, nil, logger)
		presence = tray.NewPresence(factory, logger)
	}

	app := &App{
		storage:      deps.Storage,
		presence:     presence,
		player:       deps.Player,
		notifier:     deps.Notifier,
		changes:      deps.Changes,
		logger:       logger,
		now:          now,
		styles:       styles,
		config:       cfg,
		helpOverlay:  NewHelpOverlay(styles),
		settingsForm: NewSettingsForm(deps.Storage.Config.Settings(), styles),
		statsPane:    NewStatsPane(styles),
		historyPane:  NewHistoryPane(styles),
		undoManager:  NewUndoManager(),
		keys:         NewGlobalKeyMap(cfg.Keys),
		sessionKeys:  NewSessionKeyMap(cfg.Keys),
		promptKeys:   NewPromptKeyMap(cfg.Keys),
		listKeys:     DefaultListKeyMap(),
		helpKeys:     DefaultHelpKeyMap(),
	}
	app.session = reminder.NewSession(deps.Storage.Config, deps.Storage.Stats, deps.Storage.History, deps.Picker, logger)
	app.helpOverlay.SetKeys(app.keys, app.sessionKeys, app.promptKeys)
	return app
}

// Init starts the clock and the listeners for tray and file events.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		waitForTrayCmd(a.presence.Actions()),
		waitForChangeCmd(a.changes),
	)
}

// Update handles all messages and routes them appropriately.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.updateLayout()
		return a, nil

	case tickMsg:
		if a.status != "" && !a.statusUntil.IsZero() && a.now().After(a.statusUntil) {
			a.status = ""
			a.statusErr = false
			a.statusUntil = time.Time{}
		}
		return a, tickCmd()

	case reminderDueMsg:
		return a, a.handleReminderDue(msg.seq)

	case trayActionMsg:
		cmd := a.handleTrayAction(msg.action)
		return a, tea.Batch(cmd, waitForTrayCmd(a.presence.Actions()))

	case settingsChangedMsg:
		a.storage.Config.Reload()
		a.logger.Debug("settings reloaded from disk")
		return a, waitForChangeCmd(a.changes)

	case alertDoneMsg:
		if msg.err != nil {
			a.logger.Warn("notification failed", "err", msg.err)
		}
		return a, nil

	case undoResultMsg:
		if msg.err != nil {
			a.SetStatus("Undo failed: "+msg.err.Error(), true)
		} else if msg.desc != "" {
			a.SetStatus("Undid: "+msg.desc, false)
		} else {
			a.SetStatus("Nothing to undo", false)
		}
		a.historyPane.Refresh(a.storage.History)
		return a, nil

	case redoResultMsg:
		if msg.err != nil {
			a.SetStatus("Redo failed: "+msg.err.Error(), true)
		} else if msg.desc != "" {
			a.SetStatus("Redid: "+msg.desc, false)
		} else {
			a.SetStatus("Nothing to redo", false)
		}
		a.historyPane.Refresh(a.storage.History)
		return a, nil

	case tea.KeyMsg:
		return a, a.handleKey(msg)
	}

	return a, nil
}

// handleKey routes a key press. The prompt, the hidden state and overlays
// take priority over the active view.
func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	// While a prompt is outstanding nothing else is processed.
	if a.session.Prompting() {
		switch {
		case key.Matches(msg, a.promptKeys.Continue):
			return a.continueSession()
		case key.Matches(msg, a.promptKeys.EndBreaks):
			return a.stopSession("Session stopped")
		}
		return nil
	}

	if a.hidden {
		switch {
		case key.Matches(msg, a.sessionKeys.Show):
			return a.show()
		case key.Matches(msg, a.sessionKeys.Stop):
			return a.stopSession("Session stopped")
		case key.Matches(msg, a.keys.Quit):
			return a.quit()
		}
		return nil
	}

	if a.confirm != nil {
		switch msg.String() {
		case "y", "Y", "enter":
			action := a.confirm.action
			a.confirm = nil
			action()
		case "n", "N", "esc":
			a.confirm = nil
			a.SetStatus("Canceled", false)
		}
		return nil
	}

	// Help overlay takes priority
	if a.showHelp {
		if key.Matches(msg, a.helpKeys.Close) {
			a.showHelp = false
		}
		return nil
	}

	if a.view == ViewSettings {
		result, cmd := a.settingsForm.Update(msg)
		switch result {
		case formSave:
			a.saveSettings()
		case formCancel:
			a.view = ViewMain
			a.SetStatus("Settings unchanged", false)
		}
		return cmd
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a.quit()
	case key.Matches(msg, a.keys.Help):
		a.showHelp = true
		return nil
	case key.Matches(msg, a.keys.Undo):
		return undoCmd(a.undoManager)
	case key.Matches(msg, a.keys.Redo):
		return redoCmd(a.undoManager)
	case key.Matches(msg, a.sessionKeys.Settings):
		a.openSettings()
		return nil
	case key.Matches(msg, a.sessionKeys.Stats):
		a.openStats()
		return nil
	case key.Matches(msg, a.sessionKeys.History):
		a.openHistory()
		return nil
	}

	switch a.view {
	case ViewStats:
		if key.Matches(msg, a.listKeys.Back) {
			a.view = ViewMain
		} else if key.Matches(msg, a.listKeys.Refresh) {
			a.statsPane.SetStats(a.storage.Stats.Snapshot())
		}
		return nil

	case ViewHistory:
		switch {
		case key.Matches(msg, a.listKeys.Back):
			a.view = ViewMain
		case key.Matches(msg, a.listKeys.Refresh):
			a.historyPane.Refresh(a.storage.History)
			a.SetStatus("History refreshed", false)
		case key.Matches(msg, a.listKeys.Clear):
			a.requestClearHistory()
		}
		return nil
	}

	switch {
	case key.Matches(msg, a.sessionKeys.Prev):
		a.selectInterval(-1)
	case key.Matches(msg, a.sessionKeys.Next):
		a.selectInterval(1)
	case key.Matches(msg, a.sessionKeys.Start):
		return a.startSession()
	case key.Matches(msg, a.sessionKeys.Stop):
		if !a.session.Running() {
			a.SetStatus("No session running", true)
			return nil
		}
		return a.stopSession("Session stopped")
	case key.Matches(msg, a.sessionKeys.Hide):
		if !a.session.Running() {
			a.SetStatus("Start a session first", true)
			return nil
		}
		return a.hide()
	}
	return nil
}

// handleReminderDue turns a timer expiry into a prompt, or into an
// immediate continue when auto-continue is on.
func (a *App) handleReminderDue(seq uint64) tea.Cmd {
	prompt, ok := a.session.Fire(seq)
	if !ok {
		return nil
	}
	cfg := a.storage.Config.Settings()
	announce := a.hidden || cfg.AutoContinue
	alert := alertCmd(a.player, a.notifier, cfg.SoundEnabled, cfg.SoundFile, announce, prompt)

	if cfg.AutoContinue {
		arm, err := a.session.Continue(a.now())
		if err != nil {
			a.SetStatus("Continue: "+err.Error(), true)
			return alert
		}
		a.breaks++
		if !a.reportSaveErrors() {
			a.SetStatus("Break time: "+prompt.Message, false)
		}
		return tea.Batch(alert, armTimerCmd(arm))
	}

	a.showHelp = false
	a.confirm = nil
	if a.hidden {
		a.hidden = false
		a.rehide = true
		return tea.Batch(alert, tea.EnterAltScreen)
	}
	return alert
}

func (a *App) handleTrayAction(action tray.Action) tea.Cmd {
	a.logger.Debug("tray action", "action", action)
	switch action {
	case tray.ActionShow:
		return a.show()
	case tray.ActionSettings:
		cmd := a.show()
		if !a.session.Prompting() {
			a.openSettings()
		}
		return cmd
	case tray.ActionStopSession:
		if !a.session.Running() {
			return a.show()
		}
		return a.stopSession("Session stopped from tray")
	case tray.ActionQuit:
		return a.quit()
	}
	return nil
}

func (a *App) startSession() tea.Cmd {
	if a.session.Running() {
		a.SetStatus("A session is already running", true)
		return nil
	}
	arm, err := a.session.Start(a.now())
	if err != nil {
		a.SetStatus("Start: "+err.Error(), true)
		return nil
	}
	if !a.reportSaveErrors() {
		a.SetStatus(fmt.Sprintf("Reminding you every %s", formatInterval(arm.Delay)), false)
	}
	cmds := []tea.Cmd{armTimerCmd(arm)}
	if a.config.HideOnStart {
		cmds = append(cmds, a.hide())
	}
	return tea.Batch(cmds...)
}

func (a *App) continueSession() tea.Cmd {
	arm, err := a.session.Continue(a.now())
	if err != nil {
		a.SetStatus("Continue: "+err.Error(), true)
		return nil
	}
	a.breaks++
	if !a.reportSaveErrors() {
		a.SetStatus(fmt.Sprintf("Break recorded. Next reminder in %s", formatInterval(arm.Delay)), false)
	}
	cmds := []tea.Cmd{armTimerCmd(arm)}
	if a.rehide {
		a.rehide = false
		cmds = append(cmds, a.hide())
	}
	return tea.Batch(cmds...)
}

// stopSession ends the session, releases the tray and restores the window.
func (a *App) stopSession(status string) tea.Cmd {
	a.session.Stop(a.now())
	if !a.reportSaveErrors() {
		a.SetStatus(status, false)
	}
	return a.show()
}

// hide leaves the full-screen view and shows the tray icon.
func (a *App) hide() tea.Cmd {
	a.presence.Show()
	a.view = ViewMain
	a.showHelp = false
	if a.hidden {
		return nil
	}
	a.hidden = true
	return tea.ExitAltScreen
}

// show releases the tray icon and restores the full-screen view. The
// session keeps running.
func (a *App) show() tea.Cmd {
	a.presence.Release()
	a.rehide = false
	if !a.hidden {
		return nil
	}
	a.hidden = false
	return tea.EnterAltScreen
}

// quit ends any session and releases the tray before exiting.
func (a *App) quit() tea.Cmd {
	a.session.Stop(a.now())
	a.reportSaveErrors()
	a.presence.Release()
	a.quitting = true
	return tea.Quit
}

func (a *App) selectInterval(delta int) {
	if a.session.Running() {
		a.SetStatus("Stop the session to change the interval", true)
		return
	}
	names := a.storage.Config.IntervalNames()
	if len(names) == 0 {
		return
	}
	current, _ := a.storage.Config.CurrentInterval()
	next := 0
	for i, name := range names {
		if name == current {
			next = (i + delta + len(names)) % len(names)
			break
		}
	}

	before := a.storage.Config.Settings()
	if err := a.storage.Config.SetCurrentInterval(names[next]); err != nil {
		a.SetStatus("Select interval: "+err.Error(), true)
		return
	}
	a.undoManager.Push(NewSelectIntervalAction(a.storage.Config, before, a.storage.Config.Settings()))
}

func (a *App) openSettings() {
	a.settingsForm.Load(a.storage.Config.Settings())
	a.settingsForm.SetSize(a.contentWidth(), a.height)
	a.view = ViewSettings
}

func (a *App) openStats() {
	a.statsPane.SetStats(a.storage.Stats.Snapshot())
	a.view = ViewStats
}

func (a *App) openHistory() {
	a.historyPane.Refresh(a.storage.History)
	a.view = ViewHistory
}

// saveSettings validates the form and persists it. An invalid form keeps
// the view open with the error inline and leaves the configuration intact.
func (a *App) saveSettings() {
	before := a.storage.Config.Settings()
	next, err := a.settingsForm.Settings(before)
	if err != nil {
		return
	}
	if err := a.storage.Config.Replace(next); err != nil {
		if errors.Is(err, store.ErrInvalidSettings) {
			a.settingsForm.SetError(err.Error())
			return
		}
		a.SetStatus("Settings not written to disk: "+err.Error(), true)
	} else {
		a.SetStatus("Settings saved", false)
	}
	a.undoManager.Push(NewSaveSettingsAction(a.storage.Config, before, next))
	a.view = ViewMain
}

func (a *App) requestClearHistory() {
	if a.storage.History.Len() == 0 {
		a.SetStatus("History is already empty", false)
		return
	}
	if !a.config.ConfirmClear {
		a.clearHistory()
		return
	}
	a.confirm = &confirmState{
		title:  "Clear history?",
		body:   fmt.Sprintf("All %d recorded breaks will be removed.", a.storage.History.Len()),
		action: a.clearHistory,
	}
}

func (a *App) clearHistory() {
	entries := a.storage.History.Entries()
	if err := a.storage.History.Clear(); err != nil {
		a.SetStatus("Clear history: "+err.Error(), true)
	} else {
		a.SetStatus("History cleared", false)
	}
	a.undoManager.Push(NewClearHistoryAction(a.storage.History, entries))
	a.historyPane.Refresh(a.storage.History)
}

// reportSaveErrors shows persistence failures from the session as an error
// status. It reports whether there were any.
func (a *App) reportSaveErrors() bool {
	err := a.session.SaveErrors()
	if err == nil {
		return false
	}
	msg, _, _ := strings.Cut(err.Error(), "\n")
	a.SetStatus("Could not save: "+msg, true)
	return true
}

// updateLayout recalculates panel sizes based on terminal dimensions.
func (a *App) updateLayout() {
	a.helpOverlay.SetSize(a.width, a.height)

	threshold := a.config.NarrowLayoutThreshold
	if threshold <= 0 {
		threshold = 60
	}

	totalWidth := a.contentWidth()
	if a.width < threshold {
		a.layoutMode = LayoutNarrow
		a.sessionWidth = totalWidth
		a.intervalWidth = totalWidth
	} else {
		a.layoutMode = LayoutWide
		a.sessionWidth = (totalWidth * 55) / 100
		a.intervalWidth = totalWidth - a.sessionWidth - 1
	}

	contentHeight := max(10, a.height-4)
	a.settingsForm.SetSize(totalWidth, contentHeight)
	a.statsPane.SetSize(totalWidth)
	a.historyPane.SetSize(totalWidth, contentHeight)
}

func (a *App) contentWidth() int {
	return max(20, a.width-4)
}

// View renders the entire app.
func (a *App) View() string {
	if a.quitting {
		return a.renderGoodbye()
	}
	if a.hidden {
		return a.renderHidden()
	}
	if a.session.Prompting() {
		return a.renderPrompt()
	}
	if a.confirm != nil {
		return a.renderConfirm()
	}
	if a.showHelp {
		return a.helpOverlay.View()
	}

	var b strings.Builder
	b.WriteString(a.renderTitleBar())
	b.WriteString("\n")

	switch a.view {
	case ViewSettings:
		b.WriteString(a.styles.PaneFocusedStyle.Width(a.contentWidth()).Render(a.settingsForm.View()))
	case ViewStats:
		b.WriteString(a.styles.PaneFocusedStyle.Width(a.contentWidth()).Render(a.statsPane.View()))
	case ViewHistory:
		b.WriteString(a.styles.PaneFocusedStyle.Width(a.contentWidth()).Render(a.historyPane.View()))
	default:
		b.WriteString(a.renderMain())
	}
	b.WriteString("\n")
	b.WriteString(a.renderHelpBar())

	return b.String()
}

// renderMain shows the session panel and the interval selector.
func (a *App) renderMain() string {
	sessionWidth, intervalWidth := a.sessionWidth, a.intervalWidth
	if sessionWidth == 0 {
		sessionWidth, intervalWidth = a.contentWidth(), a.contentWidth()
	}
	session := a.styles.PaneFocusedStyle.Width(sessionWidth).Render(a.renderSession())
	intervals := a.styles.PaneStyle.Width(intervalWidth).Render(a.renderIntervals())

	if a.layoutMode == LayoutNarrow {
		return lipgloss.JoinVertical(lipgloss.Left, session, intervals)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, session, " ", intervals)
}

func (a *App) renderSession() string {
	var b strings.Builder
	b.WriteString(a.styles.PaneTitleStyle.Render("Session"))
	b.WriteString("\n")

	if a.session.Running() {
		b.WriteString(a.styles.SessionRunningStyle.Render("● Running"))
		b.WriteString("  " + a.styles.StatValueStyle.Render(a.session.IntervalName()))
		b.WriteString("\n\n")
		b.WriteString(a.styles.StatLabelStyle.Render("Next break in "))
		b.WriteString(a.styles.CountdownStyle.Render(formatCountdown(a.session.Remaining(a.now()))))
		b.WriteString("\n")
		b.WriteString(a.styles.StatLabelStyle.Render(fmt.Sprintf("Every %s · %d breaks so far", formatInterval(a.session.Interval()), a.breaks)))
		return b.String()
	}

	name, interval := a.storage.Config.CurrentInterval()
	b.WriteString(a.styles.SessionIdleStyle.Render("○ Idle"))
	b.WriteString("\n\n")
	b.WriteString(a.styles.StatLabelStyle.Render("Selected "))
	b.WriteString(a.styles.StatValueStyle.Render(name))
	b.WriteString(a.styles.StatLabelStyle.Render(" (" + formatInterval(interval) + ")"))
	b.WriteString("\n")
	b.WriteString(a.styles.StatLabelStyle.Render("Press " + helpLabel(a.sessionKeys.Start.Keys()) + " to start reminders"))
	return b.String()
}

func (a *App) renderIntervals() string {
	var b strings.Builder
	b.WriteString(a.styles.PaneTitleStyle.Render("Intervals"))
	b.WriteString("\n")

	cfg := a.storage.Config.Settings()
	current, _ := a.storage.Config.CurrentInterval()
	for _, name := range store.SortedIntervalNames(cfg.Intervals) {
		line := fmt.Sprintf("%s  %s", name, formatInterval(time.Duration(cfg.Intervals[name])*time.Second))
		if name == current {
			b.WriteString(a.styles.IntervalMarker + " " + a.styles.IntervalSelectedStyle.Render(line))
		} else {
			b.WriteString("  " + a.styles.IntervalStyle.Render(line))
		}
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// renderHidden is the single line left in the terminal while hidden.
func (a *App) renderHidden() string {
	var b strings.Builder
	b.WriteString(a.styles.TitleStyle.Render(" breakreminder "))
	b.WriteString(" ")
	if a.session.Running() {
		b.WriteString(a.styles.SessionRunningStyle.Render(a.session.IntervalName()))
		b.WriteString(a.styles.StatLabelStyle.Render(" · next break in "))
		b.WriteString(a.styles.CountdownStyle.Render(formatCountdown(a.session.Remaining(a.now()))))
	} else {
		b.WriteString(a.styles.SessionIdleStyle.Render("idle"))
	}
	b.WriteString("  ")
	b.WriteString(a.styles.RenderHelp(
		helpLabel(a.sessionKeys.Show.Keys()), "show",
		helpLabel(a.sessionKeys.Stop.Keys()), "stop",
		helpLabel(a.keys.Quit.Keys()), "quit",
	))
	if a.status != "" {
		b.WriteString("\n")
		b.WriteString(a.renderStatus())
	}
	return b.String()
}

// renderPrompt shows the break prompt as a modal.
func (a *App) renderPrompt() string {
	prompt, _ := a.session.Prompt()

	overlayWidth := 60
	if a.width > 0 {
		overlayWidth = min(60, max(20, a.width-4))
	}

	overlayStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(a.styles.ColorPrimary).
		Padding(1, 2).
		Width(overlayWidth)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(a.styles.ColorPrimary).
		MarginBottom(1)

	hintStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorTextMuted)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Break Time!"))
	b.WriteString("\n\n")
	b.WriteString(a.styles.PromptMessageStyle.Render(prompt.Text()))
	b.WriteString("\n\n")
	b.WriteString(hintStyle.Render(fmt.Sprintf("[%s] continue    [%s] stop session",
		strings.Join(a.promptKeys.Continue.Keys(), "/"),
		strings.Join(a.promptKeys.EndBreaks.Keys(), "/"))))

	content := overlayStyle.Render(b.String())
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, content)
}

func (a *App) renderConfirm() string {
	overlayWidth := 60
	if a.width > 0 {
		overlayWidth = min(60, max(20, a.width-4))
	}

	overlayStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(a.styles.ColorDanger).
		Padding(1, 2).
		Width(overlayWidth)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(a.styles.ColorDanger).
		MarginBottom(1)

	bodyStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorText)

	hintStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorTextMuted)

	var b strings.Builder
	b.WriteString(titleStyle.Render(a.confirm.title))
	b.WriteString("\n\n")
	b.WriteString(bodyStyle.Render(a.confirm.body))
	b.WriteString("\n\n")
	b.WriteString(hintStyle.Render("[y/enter] confirm    [n/esc] cancel"))

	content := overlayStyle.Render(b.String())
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, content)
}

// renderGoodbye shows an exit message with a summary of this run.
func (a *App) renderGoodbye() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  See you later!\n")
	b.WriteString("\n")
	if a.breaks > 0 {
		b.WriteString(fmt.Sprintf("  Breaks taken: %d\n\n", a.breaks))
	}
	return b.String()
}

// renderTitleBar creates the top title bar with the session state and clock.
func (a *App) renderTitleBar() string {
	title := a.styles.TitleStyle.Render(" breakreminder ")

	var state string
	if a.session.Running() {
		state = a.styles.SessionRunningStyle.Render(fmt.Sprintf("▶ %s %s",
			truncateText(a.session.IntervalName(), 14),
			formatCountdown(a.session.Remaining(a.now()))))
	}

	date := a.styles.DateStyle.Render(a.now().Format("Mon Jan 2 · 15:04"))

	used := lipgloss.Width(title) + lipgloss.Width(state) + lipgloss.Width(date)
	spacer := max(2, a.width-used-2)
	left := strings.Repeat(" ", spacer/2)
	right := strings.Repeat(" ", spacer-spacer/2)

	return title + left + state + right + date
}

// renderHelpBar creates the bottom help bar with context-sensitive hints.
func (a *App) renderHelpBar() string {
	if a.status != "" {
		return a.renderStatus()
	}

	k := func(b key.Binding) string { return b.Help().Key }

	switch a.view {
	case ViewSettings:
		return a.styles.RenderHelp(
			"tab", "next tab",
			"↑/↓", "field",
			"space", "toggle",
			"ctrl+s", "save",
			"esc", "cancel",
		)
	case ViewStats:
		return a.styles.RenderHelp(
			"r", "refresh",
			k(a.sessionKeys.History), "history",
			"esc", "back",
			k(a.keys.Quit), "quit",
		)
	case ViewHistory:
		return a.styles.RenderHelp(
			"r", "refresh",
			"c", "clear",
			k(a.sessionKeys.Stats), "stats",
			"esc", "back",
		)
	}

	if a.session.Running() {
		return a.styles.RenderHelp(
			k(a.sessionKeys.Stop), "stop",
			k(a.sessionKeys.Hide), "hide",
			k(a.sessionKeys.Settings), "settings",
			k(a.sessionKeys.Stats), "stats",
			k(a.sessionKeys.History), "history",
			k(a.keys.Help), "help",
		)
	}
	return a.styles.RenderHelp(
		k(a.sessionKeys.Prev)+"/"+k(a.sessionKeys.Next), "interval",
		k(a.sessionKeys.Start), "start",
		k(a.sessionKeys.Settings), "settings",
		k(a.sessionKeys.Stats), "stats",
		k(a.sessionKeys.History), "history",
		k(a.keys.Help), "help",
		k(a.keys.Quit), "quit",
	)
}

func (a *App) renderStatus() string {
	if a.statusErr {
		return a.styles.ErrorStyle.Render(a.status)
	}
	return a.styles.StatusStyle.Render(a.status)
}

// SetStatus sets a status message to display to the user.
func (a *App) SetStatus(msg string, isErr bool) {
	a.status = msg
	a.statusErr = isErr
	ttl := 5 * time.Second
	if isErr {
		ttl = 8 * time.Second
	}
	a.statusUntil = a.now().Add(ttl)
}

// Run starts the Bubble Tea program and blocks until the user quits.
func Run(deps Deps, styles *Styles, cfg *AppConfig) error {
	app := NewApp(deps, styles, cfg)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	app.presence.Release()
	return err
}

type nopWriter struct{}

func (nopWriter) Write(b []byte) (int, error) { return len(b), nil }
