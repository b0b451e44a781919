package engine

import (
	"context"
	"errors"
	"image"
	"reflect"
	"sync"
	"time"

	"github.com/genricoloni/mpdisplay/internal/display"
	"github.com/genricoloni/mpdisplay/internal/domain"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const warningInterval = 5 * time.Second

// Connector is the transport lifecycle of the player client
type Connector interface {
	Connect(ctx context.Context) error
	Close() error
}

// Inhibitor keeps the screen awake while the display runs
type Inhibitor interface {
	Inhibit(ctx context.Context) error
	Release(ctx context.Context) error
}

// Closer stops background work
type Closer interface {
	Close()
}

// Painter rasterizes draw commands
type Painter interface {
	Paint(dst *image.RGBA, cmds []domain.DrawCommand)
}

// Window is the shell the engine presents in. It receives the fullscreen
// and cursor flags whenever the state changes them.
type Window interface {
	SetFullscreen(on bool)
	SetCursorVisible(on bool)
}

type windowFlags struct {
	fullscreen bool
	cursor     bool
}

// Engine drives the frame loop: input events, tick, layout and paint.
// Step must be called from a single goroutine.
type Engine struct {
	logger    *zap.Logger
	ctrl      *display.Controller
	painter   Painter
	player    Connector
	inhibitor Inhibitor
	artwork   Closer
	now       func() time.Time

	window  Window
	applied *windowFlags

	tickFailing bool
	lastWarning time.Time

	mu       sync.Mutex
	frame    *image.RGBA
	version  uint64
	lastCmds []domain.DrawCommand
}

// NewEngine creates the frame loop driver. artwork may be nil.
func NewEngine(
	logger *zap.Logger,
	ctrl *display.Controller,
	painter Painter,
	player Connector,
	inhibitor Inhibitor,
	artwork Closer,
) *Engine {
	return &Engine{
		logger:    logger,
		ctrl:      ctrl,
		painter:   painter,
		player:    player,
		inhibitor: inhibitor,
		artwork:   artwork,
		now:       time.Now,
	}
}

// Attach sets the window that receives fullscreen and cursor changes
func (e *Engine) Attach(w Window) {
	e.window = w
	e.applied = nil
}

// Start connects to the player and inhibits the screensaver. Neither
// failure is fatal: the display keeps retrying the transport every tick.
func (e *Engine) Start(ctx context.Context) error {
	e.logger.Info("Engine starting...")

	if err := e.player.Connect(ctx); err != nil {
		e.logger.Warn("Player not reachable yet, will keep retrying", zap.Error(err))
	}
	if err := e.inhibitor.Inhibit(ctx); err != nil {
		e.logger.Warn("Could not inhibit screensaver", zap.Error(err))
	}
	return nil
}

// Step processes one frame. It returns display.ErrQuit when the user asked
// to exit; every other failure is logged and absorbed.
func (e *Engine) Step(ctx context.Context, events []display.Event) error {
	for _, ev := range events {
		if _, err := e.ctrl.Handle(ctx, ev); err != nil {
			if errors.Is(err, display.ErrQuit) {
				return err
			}
			e.tickFailed(err)
		}
	}

	if _, err := e.ctrl.Tick(ctx); err != nil {
		e.tickFailed(err)
	} else if e.tickFailing {
		e.tickFailing = false
		e.logger.Info("Player reachable again")
	}

	e.applyWindowFlags()
	e.paint()
	return nil
}

// tickFailed logs transport failures, at most once per warning interval
func (e *Engine) tickFailed(err error) {
	e.tickFailing = true
	now := e.now()
	if now.Sub(e.lastWarning) < warningInterval {
		return
	}
	e.lastWarning = now
	e.logger.Warn("Tick aborted, showing last known state", zap.Error(err))
}

func (e *Engine) applyWindowFlags() {
	if e.window == nil {
		return
	}
	s := e.ctrl.State()
	want := windowFlags{fullscreen: s.Fullscreen, cursor: s.CursorVisible}

	if e.applied == nil || e.applied.fullscreen != want.fullscreen {
		e.window.SetFullscreen(want.fullscreen)
	}
	if e.applied == nil || e.applied.cursor != want.cursor {
		e.window.SetCursorVisible(want.cursor)
	}
	e.applied = &want
}

// paint redraws the frame unless the draw commands are unchanged
func (e *Engine) paint() {
	s := e.ctrl.State()
	bounds := image.Rect(0, 0, max(int(s.Width), 1), max(int(s.Height), 1))
	cmds := e.ctrl.Layout()

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.frame == nil || e.frame.Bounds() != bounds {
		e.frame = image.NewRGBA(bounds)
		e.lastCmds = nil
	}
	if e.lastCmds != nil && reflect.DeepEqual(cmds, e.lastCmds) {
		return
	}
	e.painter.Paint(e.frame, cmds)
	e.lastCmds = cmds
	e.version++
}

// Frame returns the last painted frame and a version that changes on every
// repaint. The frame must not be modified.
func (e *Engine) Frame() (*image.RGBA, uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.frame, e.version
}

// State returns the current display state
func (e *Engine) State() display.State {
	return e.ctrl.State()
}

// Stop releases the screensaver and closes the transport
func (e *Engine) Stop(ctx context.Context) error {
	e.logger.Info("Engine stopping...")

	if e.artwork != nil {
		e.artwork.Close()
	}
	err := multierr.Combine(
		e.inhibitor.Release(ctx),
		e.player.Close(),
	)
	if err != nil {
		e.logger.Error("Engine stopped with errors", zap.Error(err))
		return err
	}
	e.logger.Info("Engine stopped")
	return nil
}
