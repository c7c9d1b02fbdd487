package ui

// LegendPanel renders the key legend in the top-right corner.
type LegendPanel struct {
	renderer *Renderer
	bindings []KeyBinding
	width    int32
	visible  bool
}

// NewLegendPanel creates a visible legend for the given bindings.
func NewLegendPanel(bindings []KeyBinding) *LegendPanel {
	return &LegendPanel{
		renderer: NewRenderer(),
		bindings: bindings,
		width:    220,
		visible:  true,
	}
}

// IsVisible returns whether the panel is shown.
func (l *LegendPanel) IsVisible() bool {
	return l.visible
}

// Toggle switches panel visibility.
func (l *LegendPanel) Toggle() bool {
	l.visible = !l.visible
	return l.visible
}

// Draw renders the legend anchored to the right edge of the screen.
func (l *LegendPanel) Draw(screenWidth int32) {
	if !l.visible {
		return
	}

	r := l.renderer
	padding := r.Theme.Padding
	height := padding*2 + r.Theme.LineHeight + 2 + int32(len(l.bindings))*r.Theme.LineHeight
	x := screenWidth - l.width - padding

	r.DrawPanel(x, padding, l.width, height)

	y := r.DrawSectionHeader(x+padding, padding*2, "Keys")
	for _, kb := range l.bindings {
		y = r.DrawKey(x+padding, y, kb)
	}
}
