//go:build windows

package tray

import "github.com/charmbracelet/log"

func newSignalIcon(Notifier, *log.Logger) Icon {
	return newNoneIcon()
}

// SignalHint describes how to reach the running process.
func SignalHint(int) string {
	return "restore the window from the terminal"
}
