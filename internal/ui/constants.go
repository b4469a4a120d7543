// Package ui holds layout constants and helpers shared by the panels.
package ui

const (
	// BorderWidth and BorderHeight are the space taken by a rounded border.
	BorderWidth  = 2
	BorderHeight = 2

	// HeaderHeight is the header line plus its separator.
	HeaderHeight = 2

	// MinInnerWidth is the narrowest panel content worth drawing.
	MinInnerWidth = 2

	// MinProgressBarWidth is the narrowest usable progress bar.
	MinProgressBarWidth = 5

	// MinPanelHeight keeps the active cue visible on short terminals.
	MinPanelHeight = 5
)
