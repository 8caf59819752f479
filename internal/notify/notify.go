// Package notify sends desktop notifications through the platform's own
// tooling: osascript on macOS, notify-send on Linux and a toast via
// PowerShell on Windows.
package notify

import (
	"os/exec"
)

// AppName identifies the sender where the platform supports it.
const AppName = "breakreminder"

// Notifier sends desktop notifications.
type Notifier interface {
	// Send shows a notification with the given title and message.
	Send(title, message string) error

	// SendWithSound shows a notification and asks the platform to play its
	// notification sound.
	SendWithSound(title, message string) error

	// IsSupported reports whether notifications can be shown here.
	IsSupported() bool
}

// Options gate which notifications are sent.
type Options struct {
	Enabled bool
	Sound   bool
}

type noopNotifier struct{}

func (noopNotifier) Send(string, string) error          { return nil }
func (noopNotifier) SendWithSound(string, string) error { return nil }
func (noopNotifier) IsSupported() bool                  { return false }

// runner executes an external command; tests replace it.
type runner func(name string, args ...string) error

func execRun(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

// New returns the platform notifier, or a no-op notifier when the platform
// tooling is missing or opts disable notifications.
func New(opts Options) Notifier {
	if !opts.Enabled {
		return noopNotifier{}
	}
	n := newPlatformNotifier(execRun)
	if n == nil || !n.IsSupported() {
		return noopNotifier{}
	}
	if opts.Sound {
		return soundNotifier{n}
	}
	return n
}

// soundNotifier always asks for sound.
type soundNotifier struct {
	Notifier
}

func (s soundNotifier) Send(title, message string) error {
	return s.Notifier.SendWithSound(title, message)
}
