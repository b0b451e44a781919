package monitor

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/fhs/gompd/v2/mpd"
	"github.com/genricoloni/mpdisplay/internal/config"
	"github.com/genricoloni/mpdisplay/internal/domain"
	"go.uber.org/zap"
)

const warningInterval = 5 * time.Second

var errMalformed = errors.New("malformed reply")

// MPDClient queries the player daemon. A connection that fails is dropped
// and redialed lazily, at most once per reconnect interval.
type MPDClient struct {
	logger *zap.Logger
	cfg    config.MPDConfig
	dial   Dialer
	now    func() time.Time

	mu              sync.Mutex
	conn            Conn
	lastDial        time.Time
	lastDialWarning time.Time
}

// NewMPDClient creates a client for the configured daemon. No connection
// is opened until the first query.
func NewMPDClient(logger *zap.Logger, cfg *config.AppConfig) *MPDClient {
	return newMPDClient(logger, cfg.MPD, DialStd)
}

func newMPDClient(logger *zap.Logger, cfg config.MPDConfig, dial Dialer) *MPDClient {
	return &MPDClient{
		logger: logger,
		cfg:    cfg,
		dial:   dial,
		now:    time.Now,
	}
}

// Connect dials the daemon eagerly so that startup problems surface early
func (c *MPDClient) Connect(ctx context.Context) error {
	return c.withConn(ctx, func(Conn) error { return nil })
}

// Status returns a fresh status snapshot
func (c *MPDClient) Status(ctx context.Context) (domain.PlayerStatus, error) {
	var status domain.PlayerStatus
	err := c.withConn(ctx, func(conn Conn) error {
		attrs, err := conn.Status()
		if err != nil {
			return err
		}
		status, err = parseStatus(attrs)
		return err
	})
	return status, err
}

// SongAt looks up the song occupying a queue slot
func (c *MPDClient) SongAt(ctx context.Context, id uint32) (domain.Song, error) {
	var song domain.Song
	err := c.withConn(ctx, func(conn Conn) error {
		attrs, err := conn.PlaylistID(id)
		if err != nil {
			if strings.Contains(err.Error(), "No such song") {
				return fmt.Errorf("%w: id %d", domain.ErrSongNotFound, id)
			}
			return err
		}
		song, err = parseSong(attrs, id)
		return err
	})
	return song, err
}

// TogglePause flips between playing and paused
func (c *MPDClient) TogglePause(ctx context.Context) error {
	return c.withConn(ctx, func(conn Conn) error {
		return conn.TogglePause()
	})
}

// Picture reads the embedded picture of a track over the daemon connection
func (c *MPDClient) Picture(ctx context.Context, file string) ([]byte, error) {
	var data []byte
	err := c.withConn(ctx, func(conn Conn) error {
		var err error
		data, err = conn.ReadPicture(file)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: readpicture %s: %v", domain.ErrAsset, file, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s has no embedded picture", domain.ErrAsset, file)
	}
	return data, nil
}

// Close closes the current connection, if any
func (c *MPDClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	c.logger.Info("MPD connection closed")
	return err
}

// withConn runs fn against a live connection. Errors are wrapped as
// transport errors; anything but a protocol-level answer drops the connection.
func (c *MPDClient) withConn(ctx context.Context, fn func(Conn) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		now := c.now()
		if !c.lastDial.IsZero() && now.Sub(c.lastDial) < c.cfg.ReconnectInterval {
			return fmt.Errorf("%w: not connected to %s", domain.ErrTransport, c.cfg.Address)
		}
		c.lastDial = now

		conn, err := c.dial(c.cfg.Network, c.cfg.Address, c.cfg.Password)
		if err != nil {
			c.logDialWarning(err)
			return fmt.Errorf("%w: dial %s: %v", domain.ErrTransport, c.cfg.Address, err)
		}
		c.conn = conn
		c.logger.Info("Connected to MPD",
			zap.String("network", c.cfg.Network),
			zap.String("address", c.cfg.Address))
	}

	err := fn(c.conn)
	if err == nil {
		return nil
	}

	if errors.Is(err, domain.ErrSongNotFound) || errors.Is(err, errMalformed) {
		return fmt.Errorf("%w: %w", domain.ErrTransport, err)
	}

	// Unknown failure: the stream may be out of sync, start over
	if closeErr := c.conn.Close(); closeErr != nil {
		c.logger.Debug("Failed to close broken MPD connection", zap.Error(closeErr))
	}
	c.conn = nil
	return fmt.Errorf("%w: %v", domain.ErrTransport, err)
}

// logDialWarning logs failed dials, rate limited while the daemon is down
func (c *MPDClient) logDialWarning(err error) {
	now := c.now()
	if now.Sub(c.lastDialWarning) >= warningInterval {
		c.logger.Warn("Cannot reach MPD",
			zap.String("address", c.cfg.Address),
			zap.Error(err))
		c.lastDialWarning = now
	}
}

// parseStatus converts a raw status response into the domain model
func parseStatus(attrs mpd.Attrs) (domain.PlayerStatus, error) {
	var status domain.PlayerStatus

	switch attrs["state"] {
	case "play":
		status.State = domain.StatePlaying
	case "pause":
		status.State = domain.StatePaused
	default:
		status.State = domain.StateStopped
	}

	length, ok := attrs["playlistlength"]
	if !ok {
		return status, fmt.Errorf("%w: status without playlistlength", errMalformed)
	}
	n, err := strconv.ParseUint(length, 10, 32)
	if err != nil {
		return status, fmt.Errorf("%w: playlistlength %q", errMalformed, length)
	}
	status.QueueLength = uint32(n)

	if status.Song, err = parseSlot(attrs, "songid"); err != nil {
		return status, err
	}
	if status.NextSong, err = parseSlot(attrs, "nextsongid"); err != nil {
		return status, err
	}

	// "elapsed" and "duration" carry sub-second precision, "time" is the
	// older integer "elapsed:total" pair
	var elapsedOK, durationOK bool
	if status.Elapsed, elapsedOK, err = parseSeconds(attrs, "elapsed"); err != nil {
		return status, err
	}
	if status.Duration, durationOK, err = parseSeconds(attrs, "duration"); err != nil {
		return status, err
	}
	if t, ok := attrs["time"]; ok && (!elapsedOK || !durationOK) {
		e, d, found := strings.Cut(t, ":")
		if !found {
			return status, fmt.Errorf("%w: time %q", errMalformed, t)
		}
		es, err1 := strconv.ParseUint(e, 10, 32)
		ds, err2 := strconv.ParseUint(d, 10, 32)
		if err1 != nil || err2 != nil {
			return status, fmt.Errorf("%w: time %q", errMalformed, t)
		}
		if !elapsedOK {
			status.Elapsed = time.Duration(es) * time.Second
		}
		if !durationOK {
			status.Duration = time.Duration(ds) * time.Second
		}
	}

	return status, nil
}

func parseSlot(attrs mpd.Attrs, key string) (domain.SlotID, error) {
	raw, ok := attrs[key]
	if !ok {
		return domain.NoSlot, nil
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return domain.NoSlot, fmt.Errorf("%w: %s %q", errMalformed, key, raw)
	}
	return domain.SomeSlot(uint32(id)), nil
}

func parseSeconds(attrs mpd.Attrs, key string) (time.Duration, bool, error) {
	raw, ok := attrs[key]
	if !ok {
		return 0, false, nil
	}
	secs, err := strconv.ParseFloat(raw, 64)
	if err != nil || secs < 0 {
		return 0, false, fmt.Errorf("%w: %s %q", errMalformed, key, raw)
	}
	return time.Duration(secs * float64(time.Second)), true, nil
}

// parseSong converts a raw playlistid response into the domain model
func parseSong(attrs mpd.Attrs, id uint32) (domain.Song, error) {
	file := attrs["file"]
	if file == "" {
		return domain.Song{}, fmt.Errorf("%w: id %d", domain.ErrSongNotFound, id)
	}
	return domain.Song{
		File:   file,
		Title:  attrs["Title"],
		Artist: attrs["Artist"],
		Slot:   domain.SomeSlot(id),
	}, nil
}
