package main

import (
	"context"

	"github.com/genricoloni/mpdisplay/internal/art"
	"github.com/genricoloni/mpdisplay/internal/config"
	"github.com/genricoloni/mpdisplay/internal/display"
	"github.com/genricoloni/mpdisplay/internal/domain"
	"github.com/genricoloni/mpdisplay/internal/engine"
	"github.com/genricoloni/mpdisplay/internal/executor"
	"github.com/genricoloni/mpdisplay/internal/fetcher"
	"github.com/genricoloni/mpdisplay/internal/logger"
	"github.com/genricoloni/mpdisplay/internal/monitor"
	"github.com/genricoloni/mpdisplay/internal/processor"
	"github.com/genricoloni/mpdisplay/internal/render"
	"github.com/genricoloni/mpdisplay/internal/screensaver"
	"github.com/genricoloni/mpdisplay/internal/typeface"
	"github.com/genricoloni/mpdisplay/internal/window"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// configPath is the explicit --config flag value, empty when unset
type configPath string

// AppOptions is the application graph shared by the display and snapshot commands
var AppOptions = fx.Options(
	fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
		return &fxevent.ZapLogger{Logger: log}
	}),

	fx.Supply(configPath("")),

	fx.Provide(
		loadConfig,
		newLogger,
		monitor.NewScreenResolution,
		monitor.NewMPDClient,
		fetcher.NewArtistImages,
		executor.NewPictureCommand,
		processor.NewDecoder,
		processor.NewBackgroundProcessor,
		art.NewResolver,
		newArtQueue,
		typeface.NewTypefaces,
		newPainter,
		screensaver.NewInhibitor,
		newController,
		newEngine,
		window.New,
	),

	fx.Invoke(registerHooks),
)

func loadConfig(path configPath) (*config.AppConfig, error) {
	return config.Load(string(path))
}

// newLogger creates the zap logger described by the log section
func newLogger(cfg *config.AppConfig) (*zap.Logger, error) {
	return logger.New(cfg.Log)
}

func newArtQueue(log *zap.Logger, resolver *art.Resolver) *art.Queue {
	return art.NewQueue(log, resolver)
}

func newPainter(faces *typeface.Typefaces) *render.Painter {
	return render.NewPainter(faces)
}

// newController builds the display state for the primary screen
func newController(
	log *zap.Logger,
	cfg *config.AppConfig,
	res *domain.ScreenResolution,
	client *monitor.MPDClient,
	resolver *art.Resolver,
	faces *typeface.Typefaces,
	decoder *processor.Decoder,
	queue *art.Queue,
) *display.Controller {
	watermark, err := decoder.DecodeFile(cfg.Art.Watermark)
	if err != nil {
		log.Warn("Watermark image unavailable", zap.String("path", cfg.Art.Watermark), zap.Error(err))
		watermark = nil
	}

	opts := display.Options{
		Width:         uint32(max(res.Width, 1)),
		Height:        uint32(max(res.Height, 1)),
		Fullscreen:    cfg.Display.Fullscreen,
		CursorVisible: cfg.Display.CursorVisible,
		Watermark:     watermark,
		Backup:        resolver.Backup(),
	}
	if cfg.Art.Async {
		opts.Queue = queue
	}
	return display.NewController(log, client, resolver, faces, opts)
}

func newEngine(
	log *zap.Logger,
	ctrl *display.Controller,
	painter *render.Painter,
	client *monitor.MPDClient,
	inhibitor *screensaver.Inhibitor,
	queue *art.Queue,
) *engine.Engine {
	return engine.NewEngine(log, ctrl, painter, client, inhibitor, queue)
}

// registerHooks sets up application lifecycle hooks
func registerHooks(lc fx.Lifecycle, log *zap.Logger, cfg *config.AppConfig, eng *engine.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("MPD Display starting")
			cfg.LogSummary(log)
			return eng.Start(ctx)
		},
		OnStop: func(ctx context.Context) error {
			err := eng.Stop(ctx)
			log.Info("Shutting down")
			_ = log.Sync()
			return err
		},
	})
}
