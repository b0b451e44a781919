package display

import "errors"

// ErrQuit is returned by Handle when the user asks to exit
var ErrQuit = errors.New("quit requested")

// Key is a keyboard key the display reacts to
type Key int

const (
	KeyOther Key = iota
	KeyF
	KeyC
	KeyD
	KeySpace
	KeyEscape
)

// MouseButton identifies a mouse button
type MouseButton int

const (
	ButtonLeft MouseButton = iota
	ButtonRight
	ButtonMiddle
)

// Event is an input delivered by the window shell
type Event interface {
	isEvent()
}

// KeyDown is a key press
type KeyDown struct {
	Key Key
}

// MouseDown is a mouse button press
type MouseDown struct {
	Button MouseButton
}

// MouseMove is a pointer motion in window pixels
type MouseMove struct {
	X, Y float64
}

// Resize is a change of the drawable area in pixels
type Resize struct {
	Width, Height uint32
}

// Tick asks the controller to poll the player
type Tick struct{}

// FullscreenChanged reports a fullscreen change made outside the display,
// e.g. by the window manager.
type FullscreenChanged struct {
	Fullscreen bool
}

func (KeyDown) isEvent()           {}
func (MouseDown) isEvent()         {}
func (MouseMove) isEvent()         {}
func (Resize) isEvent()            {}
func (Tick) isEvent()              {}
func (FullscreenChanged) isEvent() {}
