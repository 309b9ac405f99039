package watch

import "github.com/charmbracelet/lipgloss"

// Colors
var (
	ColorPrimary = lipgloss.Color("#F74C00")
	ColorSuccess = lipgloss.Color("#10B981")
	ColorWarning = lipgloss.Color("#F59E0B")
	ColorDanger  = lipgloss.Color("#EF4444")
	ColorMuted   = lipgloss.Color("#6B7280")
)

// Styles
var (
	TitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	SuccessStyle = lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true)
	PendingStyle = lipgloss.NewStyle().Foreground(ColorWarning)
	FailStyle    = lipgloss.NewStyle().Foreground(ColorDanger).Bold(true)
	MutedStyle   = lipgloss.NewStyle().Foreground(ColorMuted)
	HintStyle    = lipgloss.NewStyle().Foreground(ColorWarning)
	OutputStyle  = lipgloss.NewStyle().MarginLeft(2)
)
