//go:build linux

package sound

import (
	"fmt"
	"os/exec"
)

// linuxPlayer plays the freedesktop "complete" event sound. It prefers
// canberra-gtk-play (theme-aware) and falls back to paplay with the
// stock sound file.
type linuxPlayer struct{}

const fallbackSound = "/usr/share/sounds/freedesktop/stereo/complete.oga"

// newPlatformPlayer creates the Linux player.
func newPlatformPlayer() Player {
	return &linuxPlayer{}
}

// PhaseEnded plays the chime asynchronously.
func (p *linuxPlayer) PhaseEnded() error {
	var cmd *exec.Cmd
	if _, err := exec.LookPath("canberra-gtk-play"); err == nil {
		cmd = exec.Command("canberra-gtk-play", "--id", "complete")
	} else if _, err := exec.LookPath("paplay"); err == nil {
		cmd = exec.Command("paplay", fallbackSound)
	} else {
		return fmt.Errorf("no audio player available")
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%s failed: %w", cmd.Path, err)
	}
	// Reap the process without waiting for playback to finish.
	go func() { _ = cmd.Wait() }()
	return nil
}

// IsSupported returns true if an audio command is available.
func (p *linuxPlayer) IsSupported() bool {
	if _, err := exec.LookPath("canberra-gtk-play"); err == nil {
		return true
	}
	_, err := exec.LookPath("paplay")
	return err == nil
}
