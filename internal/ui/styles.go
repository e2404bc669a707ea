package ui

import (
	"pomotodo/internal/config"

	"github.com/charmbracelet/lipgloss"
)

// Styles holds all application styles, initialized with theme configuration
// and the persisted dark-mode flag.
type Styles struct {
	// Colors
	ColorPrimary   lipgloss.Color
	ColorSecondary lipgloss.Color
	ColorMuted     lipgloss.Color
	ColorDanger    lipgloss.Color
	ColorWarning   lipgloss.Color
	ColorSuccess   lipgloss.Color
	ColorAccent    lipgloss.Color
	ColorBg        lipgloss.Color
	ColorBgLight   lipgloss.Color
	ColorText      lipgloss.Color
	ColorTextMuted lipgloss.Color

	// Dark reports which palette the styles were built from.
	Dark bool

	// Component styles
	TitleStyle       lipgloss.Style
	DateStyle        lipgloss.Style
	PaneStyle        lipgloss.Style
	PaneFocusedStyle lipgloss.Style
	PaneTitleStyle   lipgloss.Style

	TaskDoneStyle       lipgloss.Style
	TaskPendingStyle    lipgloss.Style
	TaskSelectedStyle   lipgloss.Style
	TaskCheckboxDone    string
	TaskCheckboxPending string
	TaskActiveMarker    string
	TaskEstimateStyle   lipgloss.Style

	// Timer phase styles
	PhaseFocusStyle lipgloss.Style
	PhaseBreakStyle lipgloss.Style
	PhaseIdleStyle  lipgloss.Style

	TimerClockStyle   lipgloss.Style
	TimerRunningStyle lipgloss.Style
	TimerPausedStyle  lipgloss.Style
	TimerTaskStyle    lipgloss.Style

	// Cycle dots showing progress toward the long break
	CycleDotDone    string
	CycleDotPending string

	HelpStyle    lipgloss.Style
	HelpKeyStyle lipgloss.Style

	StatusStyle lipgloss.Style
	ErrorStyle  lipgloss.Style

	InputPromptStyle lipgloss.Style
	InputTextStyle   lipgloss.Style

	StatLabelStyle lipgloss.Style
	StatValueStyle lipgloss.Style
}

// NewStyles creates a new Styles instance from the given config.
// If a theme color is empty, it uses the appropriate default for the
// chosen palette.
func NewStyles(cfg *config.Config, dark bool) *Styles {
	return NewStylesFromTheme(&cfg.Theme, dark)
}

// NewStylesFromTheme creates a new Styles instance from a ThemeConfig.
// If a theme color is empty, it uses the appropriate default for the
// chosen palette.
func NewStylesFromTheme(theme *config.ThemeConfig, dark bool) *Styles {
	s := &Styles{Dark: dark}

	// Initialize colors from config with fallbacks to defaults
	s.ColorPrimary = colorOrDefault(theme.Primary, "#E05252")
	s.ColorSecondary = colorOrDefault(theme.Accent, "#10B981")

	// Fixed semantic colors (not configurable from theme)
	s.ColorDanger = lipgloss.Color("#EF4444")
	s.ColorWarning = lipgloss.Color("#F59E0B")
	s.ColorSuccess = lipgloss.Color("#10B981")
	s.ColorAccent = colorOrDefault(theme.Accent, "#3B82F6")

	// Background and text colors follow the palette.
	if dark {
		s.ColorMuted = colorOrDefault(theme.Muted, "#6B7280")
		s.ColorBg = colorOrDefault(theme.Background, "#1F2937")
		s.ColorBgLight = lipgloss.Color("#374151")
		s.ColorText = colorOrDefault(theme.Text, "#F9FAFB")
		s.ColorTextMuted = lipgloss.Color("#9CA3AF")
	} else {
		s.ColorMuted = colorOrDefault(theme.Muted, "#9CA3AF")
		s.ColorBg = colorOrDefault(theme.Background, "#FFFFFF")
		s.ColorBgLight = lipgloss.Color("#E5E7EB")
		s.ColorText = colorOrDefault(theme.Text, "#111827")
		s.ColorTextMuted = lipgloss.Color("#6B7280")
	}

	// Initialize all component styles
	s.initComponentStyles()

	return s
}

// colorOrDefault returns the lipgloss.Color from hex string, or default if empty.
func colorOrDefault(hex, defaultHex string) lipgloss.Color {
	if hex != "" {
		return lipgloss.Color(hex)
	}
	return lipgloss.Color(defaultHex)
}

// initComponentStyles initializes all component styles based on the color palette.
func (s *Styles) initComponentStyles() {
	// Title bar
	s.TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#F9FAFB")).
		Background(s.ColorPrimary).
		Padding(0, 1)

	// Date in title bar
	s.DateStyle = lipgloss.NewStyle().
		Foreground(s.ColorTextMuted)

	// Pane styles
	s.PaneStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.ColorMuted).
		Padding(0, 1)

	s.PaneFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.ColorPrimary).
		Padding(0, 1)

	s.PaneTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.ColorPrimary).
		MarginBottom(1)

	// Task styles
	s.TaskDoneStyle = lipgloss.NewStyle().
		Foreground(s.ColorTextMuted).
		Strikethrough(true)

	s.TaskPendingStyle = lipgloss.NewStyle().
		Foreground(s.ColorText)

	s.TaskSelectedStyle = lipgloss.NewStyle().
		Background(s.ColorBgLight).
		Foreground(s.ColorText).
		Bold(true)

	s.TaskCheckboxDone = lipgloss.NewStyle().Foreground(s.ColorSuccess).Render("[✓]")
	s.TaskCheckboxPending = lipgloss.NewStyle().Foreground(s.ColorMuted).Render("[ ]")
	s.TaskActiveMarker = lipgloss.NewStyle().Foreground(s.ColorPrimary).Bold(true).Render("▶")

	s.TaskEstimateStyle = lipgloss.NewStyle().
		Foreground(s.ColorTextMuted)

	// Timer phase styles
	s.PhaseFocusStyle = lipgloss.NewStyle().
		Foreground(s.ColorPrimary).
		Bold(true)

	s.PhaseBreakStyle = lipgloss.NewStyle().
		Foreground(s.ColorSuccess).
		Bold(true)

	s.PhaseIdleStyle = lipgloss.NewStyle().
		Foreground(s.ColorMuted)

	// Timer styles
	s.TimerClockStyle = lipgloss.NewStyle().
		Foreground(s.ColorText).
		Bold(true)

	s.TimerRunningStyle = lipgloss.NewStyle().
		Foreground(s.ColorSuccess).
		Bold(true)

	s.TimerPausedStyle = lipgloss.NewStyle().
		Foreground(s.ColorWarning)

	s.TimerTaskStyle = lipgloss.NewStyle().
		Foreground(s.ColorAccent).
		Bold(true)

	// Cycle dots
	s.CycleDotDone = lipgloss.NewStyle().Foreground(s.ColorPrimary).Render("●")
	s.CycleDotPending = lipgloss.NewStyle().Foreground(s.ColorMuted).Render("○")

	// Help bar
	s.HelpStyle = lipgloss.NewStyle().
		Foreground(s.ColorTextMuted)

	s.HelpKeyStyle = lipgloss.NewStyle().
		Foreground(s.ColorAccent).
		Bold(true)

	// Status messages
	s.StatusStyle = lipgloss.NewStyle().
		Foreground(s.ColorSuccess).
		Italic(true)

	s.ErrorStyle = lipgloss.NewStyle().
		Foreground(s.ColorDanger).
		Bold(true)

	// Input
	s.InputPromptStyle = lipgloss.NewStyle().
		Foreground(s.ColorPrimary).
		Bold(true)

	s.InputTextStyle = lipgloss.NewStyle().
		Foreground(s.ColorText)

	// Summary stats
	s.StatLabelStyle = lipgloss.NewStyle().
		Foreground(s.ColorTextMuted)

	s.StatValueStyle = lipgloss.NewStyle().
		Foreground(s.ColorText).
		Bold(true)
}

// RenderHelp renders help text with key bindings using the given styles.
func (s *Styles) RenderHelp(keys ...string) string {
	var result string
	for i := 0; i < len(keys); i += 2 {
		if i > 0 {
			result += "  "
		}
		key := keys[i]
		desc := keys[i+1]
		result += s.HelpKeyStyle.Render("["+key+"]") + " " + s.HelpStyle.Render(desc)
	}
	return result
}
