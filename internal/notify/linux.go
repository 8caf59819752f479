//go:build linux

package notify

import (
	"fmt"
	"os/exec"
)

type linuxNotifier struct {
	run runner
}

func newPlatformNotifier(run runner) Notifier {
	return &linuxNotifier{run: run}
}

func (n *linuxNotifier) Send(title, message string) error {
	return n.notifySend(title, message, false)
}

// SendWithSound raises urgency; whether a sound plays is up to the
// notification daemon.
func (n *linuxNotifier) SendWithSound(title, message string) error {
	return n.notifySend(title, message, true)
}

func (n *linuxNotifier) IsSupported() bool {
	_, err := exec.LookPath("notify-send")
	return err == nil
}

func (n *linuxNotifier) notifySend(title, message string, sound bool) error {
	args := []string{"--app-name=" + AppName, "--icon=appointment-soon"}
	if sound {
		args = append(args, "--urgency=critical", "--hint=string:sound-name:bell")
	}
	args = append(args, title, message)

	if err := n.run("notify-send", args...); err != nil {
		return fmt.Errorf("notify-send: %w", err)
	}
	return nil
}
