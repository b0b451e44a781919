package engine

import (
	"context"
	"errors"
	"image"
	"testing"
	"time"

	"github.com/genricoloni/mpdisplay/internal/display"
	"github.com/genricoloni/mpdisplay/internal/domain"
	"github.com/genricoloni/mpdisplay/internal/domain/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type stubMeasurer struct{}

func (stubMeasurer) Measure(text string, weight domain.FontWeight, size float64) domain.TextBlock {
	return domain.TextBlock{Content: text, Weight: weight, Size: size, Width: float64(len(text)) * size / 2, Height: size, Ascent: size * 0.8}
}

type stubResolver struct{ calls int }

func (r *stubResolver) Resolve(context.Context, domain.Song) domain.Artwork {
	r.calls++
	return domain.Artwork{}
}

type countingPainter struct{ paints int }

func (p *countingPainter) Paint(*image.RGBA, []domain.DrawCommand) { p.paints++ }

type fakeConnector struct {
	connectErr, closeErr error
	connected, closed    bool
}

func (c *fakeConnector) Connect(context.Context) error { c.connected = true; return c.connectErr }
func (c *fakeConnector) Close() error                  { c.closed = true; return c.closeErr }

type fakeInhibitor struct {
	inhibitErr, releaseErr error
	inhibited, released    bool
}

func (i *fakeInhibitor) Inhibit(context.Context) error { i.inhibited = true; return i.inhibitErr }
func (i *fakeInhibitor) Release(context.Context) error { i.released = true; return i.releaseErr }

type fakeCloser struct{ closed bool }

func (c *fakeCloser) Close() { c.closed = true }

type fakeWindow struct {
	fullscreen []bool
	cursor     []bool
}

func (w *fakeWindow) SetFullscreen(on bool)    { w.fullscreen = append(w.fullscreen, on) }
func (w *fakeWindow) SetCursorVisible(on bool) { w.cursor = append(w.cursor, on) }

type harness struct {
	engine    *Engine
	player    *mocks.MockPlayerClient
	painter   *countingPainter
	connector *fakeConnector
	inhibitor *fakeInhibitor
	artwork   *fakeCloser
	logs      *observer.ObservedLogs
	clock     *time.Time
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	player := mocks.NewMockPlayerClient(gomock.NewController(t))
	ctrl := display.NewController(logger, player, &stubResolver{}, stubMeasurer{}, display.Options{
		Width:         640,
		Height:        360,
		Fullscreen:    true,
		CursorVisible: true,
	})

	h := &harness{
		player:    player,
		painter:   &countingPainter{},
		connector: &fakeConnector{},
		inhibitor: &fakeInhibitor{},
		artwork:   &fakeCloser{},
		logs:      logs,
	}
	h.engine = NewEngine(logger, ctrl, h.painter, h.connector, h.inhibitor, h.artwork)
	clock := time.Unix(1000, 0)
	h.clock = &clock
	h.engine.now = func() time.Time { return *h.clock }
	return h
}

func TestEngine_StepPaintsOnlyOnChange(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.player.EXPECT().Status(gomock.Any()).Return(domain.PlayerStatus{QueueLength: 3}, nil).AnyTimes()

	require.NoError(t, h.engine.Step(ctx, nil))
	frame, v1 := h.engine.Frame()
	require.NotNil(t, frame)
	assert.Equal(t, image.Rect(0, 0, 640, 360), frame.Bounds())
	assert.Equal(t, 1, h.painter.paints)

	require.NoError(t, h.engine.Step(ctx, nil))
	_, v2 := h.engine.Frame()
	assert.Equal(t, v1, v2, "identical frames are not repainted")
	assert.Equal(t, 1, h.painter.paints)

	require.NoError(t, h.engine.Step(ctx, []display.Event{display.Resize{Width: 320, Height: 200}}))
	frame, v3 := h.engine.Frame()
	assert.Greater(t, v3, v2)
	assert.Equal(t, image.Rect(0, 0, 320, 200), frame.Bounds())
	assert.Equal(t, uint32(3), h.engine.State().QueueLength)
}

func TestEngine_QuitStopsStep(t *testing.T) {
	h := newHarness(t)

	err := h.engine.Step(context.Background(), []display.Event{display.KeyDown{Key: display.KeyEscape}})
	assert.ErrorIs(t, err, display.ErrQuit)
	assert.Zero(t, h.painter.paints)
}

func TestEngine_TransportWarningsAreRateLimited(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	down := h.player.EXPECT().Status(gomock.Any()).Return(domain.PlayerStatus{}, domain.ErrTransport).Times(4)
	h.player.EXPECT().Status(gomock.Any()).Return(domain.PlayerStatus{}, nil).After(down)

	for i := 0; i < 3; i++ {
		require.NoError(t, h.engine.Step(ctx, nil))
		*h.clock = h.clock.Add(time.Second)
	}
	assert.Equal(t, 1, h.logs.FilterMessage("Tick aborted, showing last known state").Len())

	*h.clock = h.clock.Add(warningInterval)
	require.NoError(t, h.engine.Step(ctx, nil))
	assert.Equal(t, 2, h.logs.FilterMessage("Tick aborted, showing last known state").Len())

	require.NoError(t, h.engine.Step(ctx, nil))
	assert.Equal(t, 1, h.logs.FilterMessage("Player reachable again").Len())

	// the frame is still painted while the player is down
	frame, _ := h.engine.Frame()
	assert.NotNil(t, frame)
}

func TestEngine_WindowFlags(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.player.EXPECT().Status(gomock.Any()).Return(domain.PlayerStatus{}, nil).AnyTimes()
	w := &fakeWindow{}
	h.engine.Attach(w)

	require.NoError(t, h.engine.Step(ctx, nil))
	assert.Equal(t, []bool{true}, w.fullscreen)
	assert.Equal(t, []bool{true}, w.cursor)

	require.NoError(t, h.engine.Step(ctx, nil))
	assert.Len(t, w.fullscreen, 1, "unchanged flags are not reapplied")

	require.NoError(t, h.engine.Step(ctx, []display.Event{display.KeyDown{Key: display.KeyF}}))
	assert.Equal(t, []bool{true, false}, w.fullscreen)

	require.NoError(t, h.engine.Step(ctx, []display.Event{display.KeyDown{Key: display.KeyC}}))
	assert.Equal(t, []bool{true, false}, w.cursor)

	// a change reported by the window is adopted, not fought
	require.NoError(t, h.engine.Step(ctx, []display.Event{display.FullscreenChanged{Fullscreen: true}}))
	assert.Equal(t, []bool{true, false, true}, w.fullscreen)
	assert.True(t, h.engine.State().Fullscreen)
}

func TestEngine_Lifecycle(t *testing.T) {
	h := newHarness(t)
	h.connector.connectErr = errors.New("connection refused")
	h.inhibitor.inhibitErr = errors.New("no session bus")

	require.NoError(t, h.engine.Start(context.Background()))
	assert.True(t, h.connector.connected)
	assert.True(t, h.inhibitor.inhibited)

	require.NoError(t, h.engine.Stop(context.Background()))
	assert.True(t, h.artwork.closed)
	assert.True(t, h.inhibitor.released)
	assert.True(t, h.connector.closed)
}

func TestEngine_StopCombinesErrors(t *testing.T) {
	h := newHarness(t)
	releaseErr := errors.New("release failed")
	closeErr := errors.New("close failed")
	h.inhibitor.releaseErr = releaseErr
	h.connector.closeErr = closeErr

	err := h.engine.Stop(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, releaseErr)
	assert.ErrorIs(t, err, closeErr)
	assert.Len(t, multierr.Errors(err), 2)
}
