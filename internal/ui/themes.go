package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Theme is the palette used by the summarizer screen
type Theme struct {
	Name string

	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Accent    lipgloss.AdaptiveColor

	Success lipgloss.AdaptiveColor
	Warning lipgloss.AdaptiveColor
	Error   lipgloss.AdaptiveColor
	Info    lipgloss.AdaptiveColor

	Border   lipgloss.AdaptiveColor
	Text     lipgloss.AdaptiveColor
	Muted    lipgloss.AdaptiveColor
	Disabled lipgloss.AdaptiveColor
}

// palette lists the light and dark variant of one color
type palette [2]string

func (p palette) color() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: p[0], Dark: p[1]}
}

// buildTheme creates a theme from light/dark color pairs
func buildTheme(name string, primary, secondary, accent, success, warning, errorColor, info, border, text, muted, disabled palette) Theme {
	return Theme{
		Name:      name,
		Primary:   primary.color(),
		Secondary: secondary.color(),
		Accent:    accent.color(),
		Success:   success.color(),
		Warning:   warning.color(),
		Error:     errorColor.color(),
		Info:      info.color(),
		Border:    border.color(),
		Text:      text.color(),
		Muted:     muted.color(),
		Disabled:  disabled.color(),
	}
}

// Available themes
var (
	DefaultTheme = buildTheme("default",
		palette{"#1E40AF", "#3B82F6"}, palette{"#6B7280", "#9CA3AF"}, palette{"#7C3AED", "#A855F7"},
		palette{"#059669", "#10B981"}, palette{"#D97706", "#F59E0B"}, palette{"#DC2626", "#EF4444"},
		palette{"#0891B2", "#06B6D4"}, palette{"#D1D5DB", "#374151"}, palette{"#111827", "#F9FAFB"},
		palette{"#6B7280", "#9CA3AF"}, palette{"#D1D5DB", "#4B5563"})

	HighContrastTheme = buildTheme("high-contrast",
		palette{"#000000", "#FFFFFF"}, palette{"#666666", "#BBBBBB"}, palette{"#000080", "#8080FF"},
		palette{"#006600", "#00FF00"}, palette{"#CC6600", "#FFAA00"}, palette{"#CC0000", "#FF4444"},
		palette{"#0066CC", "#4499FF"}, palette{"#000000", "#FFFFFF"}, palette{"#000000", "#FFFFFF"},
		palette{"#666666", "#BBBBBB"}, palette{"#999999", "#666666"})

	MinimalTheme = buildTheme("minimal",
		palette{"#2D3748", "#E2E8F0"}, palette{"#718096", "#A0AEC0"}, palette{"#4A5568", "#CBD5E0"},
		palette{"#2F855A", "#68D391"}, palette{"#C05621", "#F6AD55"}, palette{"#C53030", "#FC8181"},
		palette{"#2B6CB0", "#63B3ED"}, palette{"#E2E8F0", "#2D3748"}, palette{"#2D3748", "#F7FAFC"},
		palette{"#A0AEC0", "#718096"}, palette{"#CBD5E0", "#4A5568"})
)

var currentTheme = DefaultTheme

// GetTheme returns the current active theme
func GetTheme() Theme {
	return currentTheme
}

// SetThemeByName sets the theme by name and reports whether it exists
func SetThemeByName(name string) bool {
	switch name {
	case "", "default":
		currentTheme = DefaultTheme
	case "high-contrast":
		currentTheme = HighContrastTheme
	case "minimal":
		currentTheme = MinimalTheme
	default:
		return false
	}
	return true
}

// IsColorDisabled checks if colors should be disabled
func IsColorDisabled() bool {
	return os.Getenv("NO_COLOR") != ""
}

// GetAvailableThemes returns list of available theme names
func GetAvailableThemes() []string {
	return []string{"default", "high-contrast", "minimal"}
}

// Styles contains the styled regions of the screen
type Styles struct {
	Theme Theme

	Title  lipgloss.Style
	Header lipgloss.Style
	Body   lipgloss.Style
	Muted  lipgloss.Style

	Button         lipgloss.Style
	ButtonDisabled lipgloss.Style
	Spinner        lipgloss.Style

	Editor        lipgloss.Style
	EditorFocused lipgloss.Style

	SummaryBox   lipgloss.Style
	ReferenceBox lipgloss.Style
	ErrorBox     lipgloss.Style
	Placeholder  lipgloss.Style
	Stats        lipgloss.Style
	Notice       lipgloss.Style
}

// GetStyles builds styles from the current theme. With NO_COLOR set every
// style keeps its layout but drops colors.
func GetStyles() *Styles {
	theme := GetTheme()
	if IsColorDisabled() {
		theme = colorless(theme)
	}

	return &Styles{
		Theme: theme,

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			Padding(0, 1),

		Header: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Body: lipgloss.NewStyle().
			Foreground(theme.Text),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Button: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Primary).
			Foreground(theme.Primary).
			Bold(true).
			Padding(0, 2),

		ButtonDisabled: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Disabled).
			Foreground(theme.Disabled).
			Padding(0, 2),

		Spinner: lipgloss.NewStyle().
			Foreground(theme.Accent),

		Editor: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border),

		EditorFocused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Primary),

		SummaryBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Success).
			Padding(0, 1),

		ReferenceBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(theme.Info).
			Padding(0, 1),

		ErrorBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Error).
			Foreground(theme.Error).
			Bold(true).
			Padding(0, 1),

		Placeholder: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Italic(true),

		Stats: lipgloss.NewStyle().
			Foreground(theme.Secondary),

		Notice: lipgloss.NewStyle().
			Foreground(theme.Success).
			Bold(true),
	}
}

// colorless keeps the theme name and leaves every color unset
func colorless(t Theme) Theme {
	return Theme{Name: t.Name}
}
