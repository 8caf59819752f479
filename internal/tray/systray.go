package tray

import (
	"sync"

	"fyne.io/systray"
	"github.com/charmbracelet/log"
)

// The platform tray loop can only be started once per process, so it is
// shared by every systray icon. Icons show the menu while they run and hide
// it again when stopped.
var (
	menuOnce  sync.Once
	menuReady = make(chan struct{})
	menu      *trayMenu
)

type trayMenu struct {
	show     *systray.MenuItem
	settings *systray.MenuItem
	stop     *systray.MenuItem
	quit     *systray.MenuItem
}

func (m *trayMenu) items() []*systray.MenuItem {
	return []*systray.MenuItem{m.show, m.settings, m.stop, m.quit}
}

func (m *trayMenu) setVisible(visible bool) {
	for _, item := range m.items() {
		if visible {
			item.Show()
		} else {
			item.Hide()
		}
	}
	if visible {
		systray.SetTooltip("Break reminder: session running")
	} else {
		systray.SetTooltip("Break reminder")
	}
}

func startSystray(logger *log.Logger) {
	menuOnce.Do(func() {
		go systray.Run(func() {
			systray.SetIcon(IconPNG())
			systray.SetTitle("Break Reminder")
			systray.SetTooltip("Break reminder")
			menu = &trayMenu{
				show:     systray.AddMenuItem("Show App", "Restore the reminder window"),
				settings: systray.AddMenuItem("Settings", "Open settings"),
				stop:     systray.AddMenuItem("Stop Session", "Stop the reminder session"),
			}
			systray.AddSeparator()
			menu.quit = systray.AddMenuItem("Quit", "Quit the break reminder")
			menu.setVisible(false)
			logger.Debug("systray ready")
			close(menuReady)
		}, func() {
			logger.Debug("systray exited")
		})
	})
}

type systrayIcon struct {
	stopper
	logger *log.Logger
}

func newSystrayIcon(logger *log.Logger) *systrayIcon {
	return &systrayIcon{stopper: newStopper(), logger: logger}
}

func (i *systrayIcon) Run(actions chan<- Action) {
	startSystray(i.logger)
	select {
	case <-menuReady:
	case <-i.done:
		return
	}

	menu.setVisible(true)
	defer menu.setVisible(false)

	for {
		var a Action
		select {
		case <-i.done:
			return
		case <-menu.show.ClickedCh:
			a = ActionShow
		case <-menu.settings.ClickedCh:
			a = ActionSettings
		case <-menu.stop.ClickedCh:
			a = ActionStopSession
		case <-menu.quit.ClickedCh:
			a = ActionQuit
		}
		i.logger.Debug("tray click", "action", a)
		if !i.send(actions, a) {
			return
		}
	}
}
