// Package sound plays the audible alert that accompanies a break prompt.
package sound

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"

	"github.com/charmbracelet/log"
)

// ErrNoPlayer is returned when no audio player is installed.
var ErrNoPlayer = errors.New("no audio player available")

// bell is written when nothing better works.
const bell = "\a"

// Player picks a platform command for audio files and beeps.
type Player struct {
	goos     string
	run      func(name string, args ...string) error
	lookPath func(file string) (string, error)
	stat     func(name string) (os.FileInfo, error)
	out      io.Writer
	logger   *log.Logger
}

// New returns a Player for the running platform that rings the terminal
// bell on out as a last resort.
func New(out io.Writer, logger *log.Logger) *Player {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Player{
		goos:     runtime.GOOS,
		run:      func(name string, args ...string) error { return exec.Command(name, args...).Run() },
		lookPath: exec.LookPath,
		stat:     os.Stat,
		out:      out,
		logger:   logger,
	}
}

// Alert plays file if it is set and exists, otherwise a short beep. Any
// failure falls back to the terminal bell. There are no retries.
func (p *Player) Alert(enabled bool, file string) {
	if !enabled {
		return
	}

	var err error
	if file != "" {
		if _, statErr := p.stat(file); statErr == nil {
			err = p.playFile(file)
		} else {
			p.logger.Debug("sound file missing, using beep", "file", file)
			err = p.beep()
		}
	} else {
		err = p.beep()
	}

	if err != nil {
		p.logger.Debug("audio alert failed, ringing bell", "err", err)
		p.ring()
	}
}

func (p *Player) playFile(file string) error {
	switch p.goos {
	case "darwin":
		return p.first([][]string{{"afplay", file}})
	case "windows":
		script := fmt.Sprintf("(New-Object Media.SoundPlayer '%s').PlaySync()", file)
		return p.first([][]string{{"powershell", "-NoProfile", "-Command", script}})
	default:
		return p.first([][]string{
			{"paplay", file},
			{"aplay", "-q", file},
			{"ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet", file},
		})
	}
}

func (p *Player) beep() error {
	switch p.goos {
	case "darwin":
		return p.first([][]string{{"afplay", "/System/Library/Sounds/Glass.aiff"}})
	case "windows":
		return p.first([][]string{{"powershell", "-NoProfile", "-Command", "[console]::beep(1000,500)"}})
	default:
		return p.first([][]string{
			{"paplay", "/usr/share/sounds/freedesktop/stereo/complete.oga"},
			{"canberra-gtk-play", "--id=bell"},
		})
	}
}

// first runs the first candidate whose binary is installed.
func (p *Player) first(candidates [][]string) error {
	for _, c := range candidates {
		if _, err := p.lookPath(c[0]); err != nil {
			continue
		}
		if err := p.run(c[0], c[1:]...); err != nil {
			return fmt.Errorf("%s: %w", c[0], err)
		}
		return nil
	}
	return ErrNoPlayer
}

func (p *Player) ring() {
	if p.out == nil {
		return
	}
	_, _ = io.WriteString(p.out, bell)
}
