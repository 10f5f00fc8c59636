// ============================================================================
// lexan - Lexical and Syntax Analysis Engine
// ============================================================================
//
// Package:     inspector
// Description: Styles for the inspector TUI
// Author:      msto63
// Created:     2026-10-14
// License:     MIT
// ============================================================================

package inspector

import (
	"github.com/charmbracelet/lipgloss"
)

// Color Palette
var (
	ColorPrimary   = lipgloss.Color("#8B5CF6") // Violet
	ColorSecondary = lipgloss.Color("#06B6D4") // Cyan
	ColorSuccess   = lipgloss.Color("#10B981") // Emerald
	ColorWarning   = lipgloss.Color("#F59E0B") // Amber
	ColorError     = lipgloss.Color("#EF4444") // Red
	ColorMuted     = lipgloss.Color("#6B7280") // Gray

	ColorText      = lipgloss.Color("#F8FAFC") // Slate 50
	ColorTextMuted = lipgloss.Color("#94A3B8") // Slate 400
	ColorTextDim   = lipgloss.Color("#64748B") // Slate 500
)

var (
	LogoStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	ModeStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Bold(true)

	ValidStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true)

	InvalidStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	InputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorMuted)

	FocusedInputStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorPrimary)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorMuted).
			Padding(0, 1)

	TabStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(ColorTextMuted)

	ActiveTabStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(ColorPrimary).
			Bold(true).
			Underline(true)
)

// Content styles
var (
	PositionStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)

	CategoryStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary)

	ErrorTokenStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	TextStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	EmptyStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorWarning).
			Bold(true)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)
)

// RenderHelpItem renders one key binding hint
func RenderHelpItem(key, desc string) string {
	return HelpKeyStyle.Render(key) + " " + HelpDescStyle.Render(desc)
}
