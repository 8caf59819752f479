package tray

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/charmbracelet/log"
)

// Backend names accepted by NewFactory.
const (
	BackendAuto    = "auto"
	BackendSystray = "systray"
	BackendSignal  = "signal"
	BackendNone    = "none"
)

// Backends lists every accepted backend name.
var Backends = []string{BackendAuto, BackendSystray, BackendSignal, BackendNone}

// Notifier announces the presence when there is no visible icon.
type Notifier interface {
	Send(title, message string) error
}

// NewFactory returns the icon factory for backend. The auto backend picks
// systray when a graphical session is available, then signal, then none.
func NewFactory(backend string, notifier Notifier, logger *log.Logger) (Factory, string, error) {
	if logger == nil {
		logger = log.New(nopWriter{})
	}
	name := strings.ToLower(strings.TrimSpace(backend))
	if name == "" || name == BackendAuto {
		name = detectBackend(runtime.GOOS, os.Getenv)
	}

	switch name {
	case BackendSystray:
		return func() Icon { return newSystrayIcon(logger) }, name, nil
	case BackendSignal:
		return func() Icon { return newSignalIcon(notifier, logger) }, name, nil
	case BackendNone:
		return func() Icon { return newNoneIcon() }, name, nil
	default:
		return nil, "", fmt.Errorf("unknown tray backend %q (want one of %s)", backend, strings.Join(Backends, ", "))
	}
}

// detectBackend chooses a backend for goos given the environment. macOS
// needs the tray on the main thread, which the terminal UI already owns.
func detectBackend(goos string, getenv func(string) string) string {
	switch goos {
	case "windows":
		return BackendSystray
	case "linux", "freebsd", "openbsd", "netbsd":
		if getenv("DISPLAY") != "" || getenv("WAYLAND_DISPLAY") != "" {
			if getenv("DBUS_SESSION_BUS_ADDRESS") != "" {
				return BackendSystray
			}
		}
		return BackendSignal
	case "darwin":
		return BackendSignal
	default:
		return BackendNone
	}
}

// noneIcon has no visible surface; the window is restored from the hidden
// status line instead.
type noneIcon struct {
	stopper
}

func newNoneIcon() *noneIcon {
	return &noneIcon{stopper: newStopper()}
}

func (i *noneIcon) Run(chan<- Action) {
	<-i.done
}
