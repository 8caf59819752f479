package ui

import (
	"math/rand/v2"
	"strings"
	"sync"
	"testing"
	"time"

	"breakreminder/internal/config"
	"breakreminder/internal/reminder"
	"breakreminder/internal/store"
	"breakreminder/internal/tray"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// setupTest prepares the test environment for deterministic rendering.
// Use ASCII profile to disable all color codes in output.
func setupTest(t *testing.T) {
	t.Helper()
	lipgloss.SetColorProfile(termenv.Ascii)
}

// createTestStorage creates a Storage instance with a temporary directory.
func createTestStorage(t *testing.T) *store.Storage {
	t.Helper()
	s, err := store.Open(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("failed to create test storage: %v", err)
	}
	return s
}

// createTestStyles creates a default Styles instance for testing.
func createTestStyles() *Styles {
	return NewStylesFromTheme(&config.ThemeConfig{})
}

func contains(s, substr string) bool {
	return strings.Contains(s, substr)
}

// testClock is a manually advanced clock.
type testClock struct {
	t time.Time
}

func (c *testClock) Now() time.Time { return c.t }

func (c *testClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

// fakeIcon records its lifetime without touching the desktop.
type fakeIcon struct {
	once sync.Once
	done chan struct{}
}

func (f *fakeIcon) Run(chan<- tray.Action) { <-f.done }

func (f *fakeIcon) Stop() { f.once.Do(func() { close(f.done) }) }

// fakeAlerter counts alerts.
type fakeAlerter struct {
	mu    sync.Mutex
	calls int
}

func (f *fakeAlerter) Alert(bool, string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
}

// testHarness bundles an App with the fakes behind it.
type testHarness struct {
	app     *App
	storage *store.Storage
	clock   *testClock
	icons   *[]*fakeIcon
	alerter *fakeAlerter
}

// newTestApp builds an App over temp storage, a fake tray and a fixed
// clock. cfg may be nil.
func newTestApp(t *testing.T, cfg *AppConfig) *testHarness {
	t.Helper()
	setupTest(t)

	s := createTestStorage(t)
	clock := &testClock{t: time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC)}
	var icons []*fakeIcon
	presence := tray.NewPresence(func() tray.Icon {
		icon := &fakeIcon{done: make(chan struct{})}
		icons = append(icons, icon)
		return icon
	}, nil)
	alerter := &fakeAlerter{}

	app := NewApp(Deps{
		Storage:  s,
		Presence: presence,
		Player:   alerter,
		Picker:   reminder.NewPicker(rand.New(rand.NewPCG(1, 2))),
		Now:      clock.Now,
	}, createTestStyles(), cfg)
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	t.Cleanup(presence.Release)

	return &testHarness{app: app, storage: s, clock: clock, icons: &icons, alerter: alerter}
}

func (h *testHarness) press(keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = h.app.Update(keyMsg(k))
	}
	return cmd
}

// keyMsg converts a key name as used in bindings to a tea.KeyMsg.
func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+u":
		return tea.KeyMsg{Type: tea.KeyCtrlU}
	case "ctrl+z":
		return tea.KeyMsg{Type: tea.KeyCtrlZ}
	case "ctrl+y":
		return tea.KeyMsg{Type: tea.KeyCtrlY}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// typeText sends each rune of s as a key press.
func (h *testHarness) typeText(s string) {
	for _, r := range s {
		h.app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}
