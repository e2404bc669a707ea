//go:build !darwin && !linux

package sound

// stubPlayer is a no-op player for unsupported platforms.
type stubPlayer struct{}

// newPlatformPlayer creates a stub player.
func newPlatformPlayer() Player {
	return &stubPlayer{}
}

// PhaseEnded is a no-op on unsupported platforms.
func (p *stubPlayer) PhaseEnded() error {
	return nil
}

// IsSupported returns false for unsupported platforms.
func (p *stubPlayer) IsSupported() bool {
	return false
}
