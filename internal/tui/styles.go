package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	colorPrimary   = lipgloss.Color("12")  // bright blue
	colorDim       = lipgloss.Color("240") // gray
	colorHighlight = lipgloss.Color("11")  // bright yellow
	colorBorder    = lipgloss.Color("238") // dark gray

	// Input area
	styleInput = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	// List items
	styleListSelected = lipgloss.NewStyle().
				Foreground(colorHighlight).
				Bold(true)

	// Content type badges
	styleTypeText = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	styleTypeSticker = lipgloss.NewStyle().
				Foreground(lipgloss.Color("13")) // bright magenta

	styleTypeImage = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")) // bright green

	styleTypeVideo = lipgloss.NewStyle().
			Foreground(lipgloss.Color("14")) // bright cyan

	styleTypeAudio = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11")) // bright yellow

	styleTypeDoc = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")) // bright red

	// Panels
	stylePanelBorder = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorBorder)

	styleActiveBorder = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorPrimary)

	// Status bar
	styleStatusBar = lipgloss.NewStyle().
			Foreground(colorDim).
			Padding(0, 1)
)
