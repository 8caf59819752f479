//go:build darwin

package notify

import (
	"fmt"
	"os/exec"
	"strings"
)

type darwinNotifier struct {
	run runner
}

func newPlatformNotifier(run runner) Notifier {
	return &darwinNotifier{run: run}
}

func (n *darwinNotifier) Send(title, message string) error {
	return n.display(title, message, false)
}

func (n *darwinNotifier) SendWithSound(title, message string) error {
	return n.display(title, message, true)
}

func (n *darwinNotifier) IsSupported() bool {
	_, err := exec.LookPath("osascript")
	return err == nil
}

func (n *darwinNotifier) display(title, message string, sound bool) error {
	script := fmt.Sprintf(`display notification "%s" with title "%s"`,
		escapeAppleScript(message), escapeAppleScript(title))
	if sound {
		script += ` sound name "Glass"`
	}
	if err := n.run("osascript", "-e", script); err != nil {
		return fmt.Errorf("osascript: %w", err)
	}
	return nil
}

// escapeAppleScript escapes backslashes and quotes for a string literal.
func escapeAppleScript(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}
