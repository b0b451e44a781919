package window

import (
	"context"
	"errors"
	"fmt"

	"github.com/genricoloni/mpdisplay/internal/config"
	"github.com/genricoloni/mpdisplay/internal/display"
	"github.com/genricoloni/mpdisplay/internal/engine"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"
)

var keys = map[ebiten.Key]display.Key{
	ebiten.KeyF:      display.KeyF,
	ebiten.KeyC:      display.KeyC,
	ebiten.KeyD:      display.KeyD,
	ebiten.KeySpace:  display.KeySpace,
	ebiten.KeyEscape: display.KeyEscape,
}

var buttons = map[ebiten.MouseButton]display.MouseButton{
	ebiten.MouseButtonLeft:   display.ButtonLeft,
	ebiten.MouseButtonRight:  display.ButtonRight,
	ebiten.MouseButtonMiddle: display.ButtonMiddle,
}

// Game is the ebiten shell around the engine: it turns ebiten input into
// display events and presents the painted frame.
type Game struct {
	logger *zap.Logger
	cfg    config.DisplayConfig
	engine *engine.Engine
	ctx    context.Context

	width, height    int
	cursorX, cursorY int
	fullscreen       bool
	pending          []display.Event
	keysBuf          []ebiten.Key

	screen   *ebiten.Image
	uploaded uint64
}

// New creates the window shell. Nothing is shown until Run.
func New(logger *zap.Logger, cfg *config.AppConfig, eng *engine.Engine) *Game {
	return &Game{
		logger: logger,
		cfg:    cfg.Display,
		engine: eng,
		ctx:    context.Background(),
	}
}

// Run opens the window and blocks until the user quits or ctx is done
func (g *Game) Run(ctx context.Context) error {
	g.ctx = ctx
	g.fullscreen = g.cfg.Fullscreen

	ebiten.SetWindowTitle(g.cfg.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(g.cfg.FPS)
	ebiten.SetFullscreen(g.cfg.Fullscreen)
	g.engine.Attach(g)

	g.logger.Info("Opening window",
		zap.String("title", g.cfg.Title),
		zap.Bool("fullscreen", g.cfg.Fullscreen),
		zap.Int("fps", g.cfg.FPS))

	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

// SetFullscreen implements engine.Window
func (g *Game) SetFullscreen(on bool) {
	ebiten.SetFullscreen(on)
	g.fullscreen = on
}

// SetCursorVisible implements engine.Window
func (g *Game) SetCursorVisible(on bool) {
	if on {
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
	} else {
		ebiten.SetCursorMode(ebiten.CursorModeHidden)
	}
}

// Update implements ebiten.Game
func (g *Game) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}

	events := g.collect()
	if err := g.engine.Step(g.ctx, events); err != nil {
		if errors.Is(err, display.ErrQuit) {
			g.logger.Info("Quit requested")
			return ebiten.Termination
		}
		return err
	}
	return nil
}

// collect drains ebiten input into display events
func (g *Game) collect() []display.Event {
	events := g.pending
	g.pending = nil

	if fs := ebiten.IsFullscreen(); fs != g.fullscreen {
		g.fullscreen = fs
		events = append(events, display.FullscreenChanged{Fullscreen: fs})
	}

	g.keysBuf = inpututil.AppendJustPressedKeys(g.keysBuf[:0])
	for _, k := range g.keysBuf {
		if key, ok := keys[k]; ok {
			events = append(events, display.KeyDown{Key: key})
		}
	}

	for b, button := range buttons {
		if inpututil.IsMouseButtonJustPressed(b) {
			events = append(events, display.MouseDown{Button: button})
		}
	}

	if x, y := ebiten.CursorPosition(); x != g.cursorX || y != g.cursorY {
		g.cursorX, g.cursorY = x, y
		events = append(events, display.MouseMove{X: float64(x), Y: float64(y)})
	}

	return events
}

// Draw implements ebiten.Game
func (g *Game) Draw(screen *ebiten.Image) {
	frame, version := g.engine.Frame()
	if frame == nil {
		return
	}

	size := frame.Bounds().Size()
	if g.screen == nil || g.screen.Bounds().Size() != size {
		if g.screen != nil {
			g.screen.Deallocate()
		}
		g.screen = ebiten.NewImage(size.X, size.Y)
		g.uploaded = 0
	}
	if version != g.uploaded {
		g.screen.WritePixels(frame.Pix)
		g.uploaded = version
	}
	screen.DrawImage(g.screen, nil)

	if s := g.engine.State(); s.Debug {
		ebitenutil.DebugPrint(screen, debugText(s, ebiten.ActualTPS()))
	}
}

// Layout implements ebiten.Game. The frame is rendered in device pixels.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	scale := 1.0
	if m := ebiten.Monitor(); m != nil {
		scale = m.DeviceScaleFactor()
	}
	w := max(int(float64(outsideWidth)*scale), 1)
	h := max(int(float64(outsideHeight)*scale), 1)

	if w != g.width || h != g.height {
		g.width, g.height = w, h
		g.pending = append(g.pending, display.Resize{Width: uint32(w), Height: uint32(h)})
	}
	return w, h
}

func debugText(s display.State, tps float64) string {
	song := "none"
	if s.CurrentID.Valid {
		song = fmt.Sprintf("%d", s.CurrentID.ID)
	}
	return fmt.Sprintf("%dx%d\nfullscreen: %v  cursor: %v\nsong id: %s  queue: %d\nelapsed: %s / %s  hover: %v\ntps: %.1f",
		s.Width, s.Height,
		s.Fullscreen, s.CursorVisible,
		song, s.QueueLength,
		display.FormatClock(s.Status.Elapsed), display.FormatClock(s.Status.Duration), s.BarHover,
		tps)
}
