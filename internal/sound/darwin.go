//go:build darwin

package sound

import (
	"fmt"
	"os/exec"
)

// chimePath is a stock system sound present on every macOS install.
const chimePath = "/System/Library/Sounds/Glass.aiff"

// darwinPlayer plays sounds via afplay.
type darwinPlayer struct{}

// newPlatformPlayer creates the macOS player.
func newPlatformPlayer() Player {
	return &darwinPlayer{}
}

// PhaseEnded plays the chime asynchronously.
func (p *darwinPlayer) PhaseEnded() error {
	cmd := exec.Command("afplay", chimePath)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("afplay failed: %w", err)
	}
	// Reap the process without waiting for playback to finish.
	go func() { _ = cmd.Wait() }()
	return nil
}

// IsSupported returns true if afplay is available.
func (p *darwinPlayer) IsSupported() bool {
	_, err := exec.LookPath("afplay")
	return err == nil
}
