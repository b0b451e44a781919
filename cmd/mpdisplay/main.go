package main

import (
	"context"
	"fmt"
	"image/png"
	"os"
	"os/signal"
	"syscall"

	"github.com/genricoloni/mpdisplay/internal/config"
	"github.com/genricoloni/mpdisplay/internal/display"
	"github.com/genricoloni/mpdisplay/internal/engine"
	"github.com/genricoloni/mpdisplay/internal/window"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/multierr"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var path string

	root := &cobra.Command{
		Use:          "mpdisplay",
		Short:        "Fullscreen now playing display for MPD",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDisplay(cmd.Context(), path)
		},
	}
	root.PersistentFlags().StringVarP(&path, "config", "c", "", "path to a config.toml overriding the defaults")
	root.AddCommand(newSnapshotCmd(&path))
	return root
}

// runDisplay starts the application graph and runs the window on the
// calling goroutine until the user quits or a signal arrives.
func runDisplay(parent context.Context, path string) error {
	ctx, cancel := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var game *window.Game
	app := fx.New(
		AppOptions,
		fx.Replace(configPath(path)),
		fx.Populate(&game),
	)
	if err := app.Err(); err != nil {
		return err
	}

	if err := app.Start(ctx); err != nil {
		return err
	}

	runErr := game.Run(ctx)
	return multierr.Append(runErr, app.Stop(context.Background()))
}

func newSnapshotCmd(path *string) *cobra.Command {
	var (
		out           string
		width, height uint32
	)

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Render a single frame of the current state to a PNG file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSnapshot(cmd.Context(), *path, out, width, height)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "mpdisplay.png", "output PNG path")
	cmd.Flags().Uint32Var(&width, "width", 1920, "frame width in pixels")
	cmd.Flags().Uint32Var(&height, "height", 1080, "frame height in pixels")
	return cmd
}

// runSnapshot resolves artwork inline and without touching the screensaver,
// renders one frame and writes it out.
func runSnapshot(ctx context.Context, path, out string, width, height uint32) error {
	if width == 0 || height == 0 {
		return fmt.Errorf("snapshot size must be positive, got %dx%d", width, height)
	}
	var eng *engine.Engine
	app := fx.New(
		AppOptions,
		fx.Replace(configPath(path)),
		fx.Decorate(func(cfg *config.AppConfig) *config.AppConfig {
			cfg.Art.Async = false
			cfg.Display.InhibitScreensaver = false
			return cfg
		}),
		fx.NopLogger,
		fx.Populate(&eng),
	)
	if err := app.Err(); err != nil {
		return err
	}
	if err := app.Start(ctx); err != nil {
		return err
	}

	err := eng.Step(ctx, []display.Event{display.Resize{Width: width, Height: height}})
	if err == nil {
		err = writePNG(eng, out)
	}
	return multierr.Append(err, app.Stop(context.Background()))
}

func writePNG(eng *engine.Engine, out string) (err error) {
	frame, _ := eng.Frame()
	if frame == nil {
		return fmt.Errorf("no frame rendered")
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", out, err)
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()

	if err := png.Encode(f, frame); err != nil {
		return fmt.Errorf("failed to encode %s: %w", out, err)
	}
	return nil
}
