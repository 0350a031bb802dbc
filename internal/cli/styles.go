// Package cli provides styled terminal output using lipgloss.
package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/qr-signal/internal/model"
)

var (
	// PrimaryColor is the main theme color.
	PrimaryColor = lipgloss.Color("#7C83FD")
	// SuccessColor indicates successful operations.
	SuccessColor = lipgloss.Color("#4ECDC4") // Teal
	// WarningColor indicates warnings or caution messages.
	WarningColor = lipgloss.Color("#FFE66D") // Yellow
	// ErrorColor indicates errors or failure messages.
	ErrorColor = lipgloss.Color("#FF6B6B") // Red
	// InfoColor indicates informational messages.
	InfoColor = lipgloss.Color("#95E1D3") // Light teal
	// SubtleColor indicates less prominent UI elements.
	SubtleColor = lipgloss.Color("#666666") // Gray

	// Signal colors.
	EmeraldColor  = lipgloss.Color("#2ECC71")
	IndigoColor   = lipgloss.Color("#5C6BC0")
	AmberColor    = lipgloss.Color("#FFB300")
	AmethystColor = lipgloss.Color("#AB47BC")
	CrimsonColor  = lipgloss.Color("#E53935")

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	// SubtitleStyle is used for secondary headings.
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	SuccessStyle = lipgloss.NewStyle().Foreground(SuccessColor)
	WarningStyle = lipgloss.NewStyle().Foreground(WarningColor)
	ErrorStyle   = lipgloss.NewStyle().Foreground(ErrorColor)
	InfoStyle    = lipgloss.NewStyle().Foreground(InfoColor)
	SubtleStyle  = lipgloss.NewStyle().Foreground(SubtleColor)
	BoldStyle    = lipgloss.NewStyle().Bold(true)

	// LabelStyle formats the field names of a result card.
	LabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(SubtleColor).
			Width(14)

	// BoxStyle is used for bordered content boxes.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#333")).
			Padding(0, 1)

	// PromptStyle is used for user prompts.
	PromptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor)

	// TableHeaderStyle is used for table headers.
	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(lipgloss.Color("#333"))
)

// Icons.
const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	WarningIcon = "⚠️"
	InfoIcon    = "ℹ️"
	ScanIcon    = "🔍"
	HistoryIcon = "🕘"
	RulesIcon   = "📋"
)

var signalIcons = map[model.Signal]string{
	model.SignalEmerald:  "●",
	model.SignalIndigo:   "◆",
	model.SignalAmber:    "▲",
	model.SignalAmethyst: "◈",
	model.SignalCrimson:  "■",
}

// SignalColor returns the display color of a signal.
func SignalColor(signal model.Signal) lipgloss.Color {
	switch signal {
	case model.SignalEmerald:
		return EmeraldColor
	case model.SignalIndigo:
		return IndigoColor
	case model.SignalAmber:
		return AmberColor
	case model.SignalAmethyst:
		return AmethystColor
	case model.SignalCrimson:
		return CrimsonColor
	default:
		return SubtleColor
	}
}

// SignalStyle returns the badge style for a signal.
func SignalStyle(signal model.Signal) lipgloss.Style {
	style := lipgloss.NewStyle().Bold(true).Foreground(SignalColor(signal))
	if signal == model.SignalCrimson {
		style = style.Background(lipgloss.Color("#2D0000"))
	}
	return style
}

// FormatSignal renders a signal as a colored badge.
func FormatSignal(signal model.Signal) string {
	icon, ok := signalIcons[signal]
	if !ok {
		icon = "?"
	}
	return SignalStyle(signal).Render(icon + " " + signal.String())
}

// FormatSuccess formats a success message with icon.
func FormatSuccess(message string) string {
	return SuccessStyle.Render(SuccessIcon + " " + message)
}

// FormatError formats an error message with icon.
func FormatError(message string) string {
	return ErrorStyle.Render(ErrorIcon + " " + message)
}

// FormatWarning formats a warning message with icon.
func FormatWarning(message string) string {
	return WarningStyle.Render(WarningIcon + " " + message)
}

// FormatInfo formats an info message with icon.
func FormatInfo(message string) string {
	return InfoStyle.Render(InfoIcon + " " + message)
}

// FormatTitle formats a section title.
func FormatTitle(icon, title string) string {
	return TitleStyle.Render(icon + " " + title)
}

// FormatPrompt formats a prompt message.
func FormatPrompt(prompt string) string {
	return PromptStyle.Render(prompt + " → ")
}

func renderBox(style lipgloss.Style, title, content string) string {
	boxTitle := TitleStyle.
		UnsetMargins().
		Render(title)

	return style.Render(lipgloss.JoinVertical(lipgloss.Left, boxTitle, content))
}
