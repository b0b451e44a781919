package domain

import "image/color"

// Rect is an axis-aligned rectangle in window pixels
type Rect struct {
	X, Y, W, H float64
}

// DrawCommand is a single paint instruction produced by the layout.
// Commands are consumed in back-to-front order.
type DrawCommand interface {
	// Layer names the visual element the command paints
	Layer() string
}

// ClearCommand fills the whole viewport
type ClearCommand struct {
	Color color.NRGBA
}

// ImageCommand paints an image scaled into Rect
type ImageCommand struct {
	ID    string
	Image *ImageAsset
	Rect  Rect
	// Tint multiplies every pixel when Tinted is set
	Tint   color.NRGBA
	Tinted bool
}

// TextCommand paints a measured text block with its top-left corner at X, Y
type TextCommand struct {
	ID    string
	Block TextBlock
	X, Y  float64
	Color color.NRGBA
}

// RoundedRectCommand fills a rounded rectangle
type RoundedRectCommand struct {
	ID     string
	Rect   Rect
	Radius float64
	Color  color.NRGBA
}

// CircleCommand fills a circle centered on X, Y
type CircleCommand struct {
	ID     string
	X, Y   float64
	Radius float64
	Color  color.NRGBA
}

func (ClearCommand) Layer() string         { return "clear" }
func (c ImageCommand) Layer() string       { return c.ID }
func (c TextCommand) Layer() string        { return c.ID }
func (c RoundedRectCommand) Layer() string { return c.ID }
func (c CircleCommand) Layer() string      { return c.ID }
