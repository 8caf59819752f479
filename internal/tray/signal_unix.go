//go:build !windows

package tray

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
)

// signalIcon stands in for a tray icon on terminals without a graphical
// session: SIGUSR1 restores the window and SIGUSR2 stops the session.
type signalIcon struct {
	stopper
	notifier Notifier
	logger   *log.Logger
}

func newSignalIcon(notifier Notifier, logger *log.Logger) Icon {
	return &signalIcon{stopper: newStopper(), notifier: notifier, logger: logger}
}

// SignalHint describes how to reach the running process.
func SignalHint(pid int) string {
	return fmt.Sprintf("kill -USR1 %d to show, kill -USR2 %d to stop", pid, pid)
}

func (i *signalIcon) Run(actions chan<- Action) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGUSR1, syscall.SIGUSR2)
	defer signal.Stop(sigs)

	if i.notifier != nil {
		if err := i.notifier.Send("Break Reminder", "Running in the background. "+SignalHint(os.Getpid())); err != nil {
			i.logger.Debug("announce failed", "err", err)
		}
	}

	for {
		select {
		case <-i.done:
			return
		case sig := <-sigs:
			a := ActionShow
			if sig == syscall.SIGUSR2 {
				a = ActionStopSession
			}
			i.logger.Debug("tray signal", "signal", sig, "action", a)
			if !i.send(actions, a) {
				return
			}
		}
	}
}
