package display

import (
	"context"

	"go.uber.org/zap"
)

// Handle applies an input event. Only KeyDown{KeyEscape} returns an error
// (ErrQuit); a Tick event returns the tick's result.
func (c *Controller) Handle(ctx context.Context, ev Event) (TransitionSet, error) {
	switch e := ev.(type) {
	case Tick:
		return c.Tick(ctx)
	case KeyDown:
		return TransitionSet{}, c.onKeyDown(ctx, e)
	case MouseDown:
		c.onMouseDown(ctx, e)
	case MouseMove:
		c.onMouseMove(e)
	case Resize:
		c.onResize(e)
	case FullscreenChanged:
		c.state.Fullscreen = e.Fullscreen
	}
	return TransitionSet{}, nil
}

func (c *Controller) onKeyDown(ctx context.Context, e KeyDown) error {
	switch e.Key {
	case KeyF:
		c.state.Fullscreen = !c.state.Fullscreen
	case KeyC:
		c.state.CursorVisible = !c.state.CursorVisible
	case KeyD:
		c.state.Debug = !c.state.Debug
	case KeySpace:
		c.togglePause(ctx)
	case KeyEscape:
		return ErrQuit
	}
	return nil
}

func (c *Controller) onMouseDown(ctx context.Context, e MouseDown) {
	if e.Button == ButtonLeft {
		c.togglePause(ctx)
	}
}

func (c *Controller) onMouseMove(e MouseMove) {
	c.state.BarHover = InHoverBand(e.Y, c.state.Width, c.state.Height)
}

func (c *Controller) onResize(e Resize) {
	if e.Width == c.state.Width && e.Height == c.state.Height {
		return
	}
	c.state.Width, c.state.Height = e.Width, e.Height
	regenerateAll(&c.state, c.measurer)
	c.logger.Debug("Window resized", zap.Uint32("width", e.Width), zap.Uint32("height", e.Height))
}

func (c *Controller) togglePause(ctx context.Context) {
	if err := c.player.TogglePause(ctx); err != nil {
		c.logger.Warn("Failed to toggle playback", zap.Error(err))
	}
}
