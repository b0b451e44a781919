// Package screensaver keeps the desktop from blanking while the display runs.
package screensaver

import (
	"context"
	"fmt"
	"sync"

	"github.com/genricoloni/mpdisplay/internal/config"
	"go.uber.org/zap"
)

const (
	busName    = "org.freedesktop.ScreenSaver"
	objectPath = "/org/freedesktop/ScreenSaver"
	appName    = "mpdisplay"
	reason     = "Showing the now playing display"
)

// Inhibitor holds an org.freedesktop.ScreenSaver inhibition cookie
type Inhibitor struct {
	logger  *zap.Logger
	enabled bool
	connect func() (DBusClient, error)

	mu     sync.Mutex
	conn   DBusClient
	cookie uint32
	active bool
}

// NewInhibitor creates an inhibitor; it does nothing until Inhibit is called
func NewInhibitor(logger *zap.Logger, cfg *config.AppConfig) *Inhibitor {
	return &Inhibitor{
		logger:  logger,
		enabled: cfg.Display.InhibitScreensaver,
		connect: func() (DBusClient, error) { return NewStdDBusClient() },
	}
}

// Inhibit asks the session's screensaver to stay off. A desktop without the
// service is not an error worth stopping for; callers just log it.
func (i *Inhibitor) Inhibit(ctx context.Context) error {
	if !i.enabled {
		return nil
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	if i.active {
		return nil
	}

	if i.conn == nil {
		conn, err := i.connect()
		if err != nil {
			return fmt.Errorf("session bus connection failed: %w", err)
		}
		i.conn = conn
	}

	var cookie uint32
	call := i.conn.Call(busName, objectPath, busName+".Inhibit", appName, reason)
	if err := call.Store(&cookie); err != nil {
		return fmt.Errorf("screensaver inhibit failed: %w", err)
	}

	i.cookie = cookie
	i.active = true
	i.logger.Info("Screensaver inhibited", zap.Uint32("cookie", cookie))
	return nil
}

// Release drops the inhibition and closes the bus connection
func (i *Inhibitor) Release(ctx context.Context) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.conn == nil {
		return nil
	}

	var err error
	if i.active {
		if callErr := i.conn.Call(busName, objectPath, busName+".UnInhibit", i.cookie).Err; callErr != nil {
			err = fmt.Errorf("screensaver uninhibit failed: %w", callErr)
		} else {
			i.logger.Info("Screensaver inhibition released")
		}
		i.active = false
	}

	if closeErr := i.conn.Close(); closeErr != nil && err == nil {
		err = fmt.Errorf("failed to close D-Bus connection: %w", closeErr)
	}
	i.conn = nil
	return err
}
