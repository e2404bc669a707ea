//go:build !darwin && !linux

// Package notify provides desktop notification support.
// This file is the fallback for platforms without a native notifier;
// phase changes still show in the status bar.
package notify

// stubNotifier is a no-op notifier for unsupported platforms.
type stubNotifier struct{}

// newPlatformNotifier creates a stub notifier.
func newPlatformNotifier() Notifier {
	return &stubNotifier{}
}

// Send is a no-op on unsupported platforms.
func (n *stubNotifier) Send(title, message string) error {
	return nil
}

// SendWithSound is a no-op on unsupported platforms.
func (n *stubNotifier) SendWithSound(title, message string) error {
	return nil
}

// IsSupported returns false for unsupported platforms.
func (n *stubNotifier) IsSupported() bool {
	return false
}
