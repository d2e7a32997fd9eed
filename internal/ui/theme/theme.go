package theme

import (
	"charm.land/lipgloss/v2"
)

// Palette as hex strings, for renderers that track colours per cell or
// paint images.
const (
	HexPrimary = "#8B5CF6" // Vivid Purple
	HexAccent  = "#F97316" // Orange
	HexSuccess = "#22C55E" // Green
	HexError   = "#F43F5E" // Rose
	HexText    = "#F8FAFC" // White
	HexTextDim = "#94A3B8" // Slate
	HexBgDark  = "#0F172A" // Deep Navy
	HexBgCard  = "#1E293B" // Dark Slate
	HexBorder  = "#334155" // Slate
)

// Color palette. Dark staff paper, bright note heads.
var (
	Primary = lipgloss.Color(HexPrimary)
	Accent  = lipgloss.Color(HexAccent)
	Text    = lipgloss.Color(HexText)
	TextDim = lipgloss.Color(HexTextDim)
	BgCard  = lipgloss.Color(HexBgCard)
	Border  = lipgloss.Color(HexBorder)
)
