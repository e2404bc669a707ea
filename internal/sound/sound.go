// Package sound plays the end-of-phase chime. It shells out to the
// platform's audio player (afplay on macOS, canberra/paplay on Linux)
// and stays silent where neither is available.
package sound

// Player defines the interface for playing the phase-complete sound.
type Player interface {
	// PhaseEnded plays the chime for a finished phase. It must not block
	// the caller on audio playback.
	PhaseEnded() error

	// IsSupported returns true if sound playback is available on this platform.
	IsSupported() bool
}

type noopPlayer struct{}

func (p *noopPlayer) PhaseEnded() error { return nil }

func (p *noopPlayer) IsSupported() bool { return false }

// New creates a platform-specific player.
// Returns a no-op player if the platform has no usable audio command.
func New() Player {
	p := newPlatformPlayer()
	if p == nil || !p.IsSupported() {
		return &noopPlayer{}
	}
	return p
}
