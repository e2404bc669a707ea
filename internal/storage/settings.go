package storage

import "fmt"

// Validate rejects settings that would produce an invalid timer
// configuration. Invalid settings never reach the state machine.
func (s Settings) Validate() error {
	if s.FocusMinutes < 1 {
		return fmt.Errorf("invalid settings: focus minutes must be positive")
	}
	if s.ShortBreakMinutes < 1 {
		return fmt.Errorf("invalid settings: short break minutes must be positive")
	}
	if s.LongBreakMinutes < 1 {
		return fmt.Errorf("invalid settings: long break minutes must be positive")
	}
	if s.LongBreakInterval < 1 {
		return fmt.Errorf("invalid settings: long break interval must be positive")
	}
	return nil
}

// LoadSettings reads the timer settings from disk. Missing fields and
// missing or corrupt files fall back to the defaults.
func (s *Storage) LoadSettings() (*Settings, error) {
	settings := DefaultSettings()
	err := s.loadJSONWithRecovery("settings.json", &settings)
	if verr := settings.Validate(); verr != nil {
		// A hand-edited file can hold out-of-range values; reset rather
		// than feed them to the timer.
		settings = DefaultSettings()
		if err == nil {
			err = verr
		}
	}
	return &settings, err
}

// SaveSettings validates and writes the timer settings to disk.
func (s *Storage) SaveSettings(settings *Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	return s.writeJSONAtomic("settings.json", settings)
}

// SetDarkMode flips the persisted dark-mode flag and returns the
// updated settings.
func (s *Storage) SetDarkMode(enabled bool) (*Settings, error) {
	settings, err := s.LoadSettings()
	if err != nil {
		return nil, err
	}
	settings.DarkMode = enabled
	if err := s.SaveSettings(settings); err != nil {
		return nil, err
	}
	return settings, nil
}
