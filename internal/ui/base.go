package ui

// Base holds the size assigned to a bordered panel. Embed it to get SetSize,
// Size and Inner.
type Base struct {
	width, height int
}

// SetSize sets the outer dimensions. Negative values count as zero.
func (b *Base) SetSize(width, height int) {
	b.width = max(width, 0)
	b.height = max(height, 0)
}

// Size returns the outer dimensions.
func (b Base) Size() (width, height int) {
	return b.width, b.height
}

// Inner returns the space left inside a standard border, or ok=false when
// the panel is too small to show anything.
func (b Base) Inner() (width, height int, ok bool) {
	width = b.width - BorderWidth
	height = b.height - BorderHeight
	return width, height, width >= MinInnerWidth && height >= 1
}
