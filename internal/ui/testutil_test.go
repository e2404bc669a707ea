package ui

import (
	"testing"

	"pomotodo/internal/config"
	"pomotodo/internal/storage"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// setupTest prepares the test environment for deterministic rendering.
// It disables colors to ensure consistent output across environments.
func setupTest(t *testing.T) {
	t.Helper()
	// Use ASCII profile to disable all color codes in output
	lipgloss.SetColorProfile(termenv.Ascii)
}

// createTestStorage creates a Storage instance with a temporary directory.
func createTestStorage(t *testing.T) *storage.Storage {
	t.Helper()
	store, err := storage.New(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create test storage: %v", err)
	}
	return store
}

// createTestStyles creates a default Styles instance for testing.
func createTestStyles() *Styles {
	return NewStylesFromTheme(&config.ThemeConfig{}, true)
}

// testAppConfig returns an AppConfig with overlays and confirmations
// disabled so tests exercise panes directly.
func testAppConfig() *AppConfig {
	return &AppConfig{
		Keys:                  &config.KeysConfig{},
		Theme:                 &config.ThemeConfig{},
		ConfirmDeletions:      false,
		ShowOnboarding:        false,
		NarrowLayoutThreshold: 80,
	}
}
