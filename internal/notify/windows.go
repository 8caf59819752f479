//go:build windows

package notify

import (
	"fmt"
	"os/exec"
	"strings"
)

type windowsNotifier struct {
	run runner
}

func newPlatformNotifier(run runner) Notifier {
	return &windowsNotifier{run: run}
}

func (n *windowsNotifier) Send(title, message string) error {
	return n.balloon(title, message)
}

func (n *windowsNotifier) SendWithSound(title, message string) error {
	_ = n.run("powershell", "-NoProfile", "-Command", "[System.Media.SystemSounds]::Asterisk.Play()")
	return n.balloon(title, message)
}

func (n *windowsNotifier) IsSupported() bool {
	_, err := exec.LookPath("powershell")
	return err == nil
}

func (n *windowsNotifier) balloon(title, message string) error {
	script := fmt.Sprintf(`Add-Type -AssemblyName System.Windows.Forms;`+
		`$n = New-Object System.Windows.Forms.NotifyIcon;`+
		`$n.Icon = [System.Drawing.SystemIcons]::Information;`+
		`$n.Visible = $true;`+
		`$n.ShowBalloonTip(5000, '%s', '%s', 'Info');`+
		`Start-Sleep -Seconds 6; $n.Dispose()`,
		escapePowerShell(title), escapePowerShell(message))
	if err := n.run("powershell", "-NoProfile", "-Command", script); err != nil {
		return fmt.Errorf("powershell: %w", err)
	}
	return nil
}

func escapePowerShell(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
