package display

import (
	"context"
	"fmt"

	"github.com/genricoloni/mpdisplay/internal/art"
	"github.com/genricoloni/mpdisplay/internal/domain"
	"go.uber.org/zap"
)

// ArtQueue resolves artwork off the frame loop
type ArtQueue interface {
	Submit(song domain.Song)
	Poll() (art.Completion, bool)
}

// Options holds the initial state and optional collaborators of a Controller
type Options struct {
	Width         uint32
	Height        uint32
	Fullscreen    bool
	CursorVisible bool

	Watermark *domain.ImageAsset
	// Backup is the album image shown when nothing is playing
	Backup *domain.ImageAsset
	// Queue, when set, resolves artwork in the background
	Queue ArtQueue
}

// Controller owns the display state. It polls the player, detects song and
// queue transitions and regenerates text and artwork only when they fire.
// All methods must be called from the frame loop.
type Controller struct {
	logger   *zap.Logger
	player   domain.PlayerClient
	resolver domain.ArtResolver
	measurer domain.TextMeasurer
	queue    ArtQueue
	backup   *domain.ImageAsset

	state State
}

// NewController creates a controller with nothing playing
func NewController(
	logger *zap.Logger,
	player domain.PlayerClient,
	resolver domain.ArtResolver,
	measurer domain.TextMeasurer,
	opts Options,
) *Controller {
	c := &Controller{
		logger:   logger,
		player:   player,
		resolver: resolver,
		measurer: measurer,
		queue:    opts.Queue,
		backup:   opts.Backup,
		state: State{
			Width:         opts.Width,
			Height:        opts.Height,
			Fullscreen:    opts.Fullscreen,
			CursorVisible: opts.CursorVisible,
			Watermark:     opts.Watermark,
			Art:           domain.Artwork{Album: opts.Backup},
		},
	}
	regenerateAll(&c.state, measurer)
	return c
}

// State returns a copy of the current state
func (c *Controller) State() State {
	return c.state
}

// Layout returns the draw commands for the current state
func (c *Controller) Layout() []domain.DrawCommand {
	return Layout(c.state, c.state.Width, c.state.Height, c.measurer)
}

// Tick polls the player and applies any transitions. On error the state is
// left untouched and the previous frame can be drawn again.
func (c *Controller) Tick(ctx context.Context) (TransitionSet, error) {
	c.collectArtwork()

	status, err := c.player.Status(ctx)
	if err != nil {
		return TransitionSet{}, fmt.Errorf("status: %w", err)
	}
	current, err := c.lookup(ctx, status.Song)
	if err != nil {
		return TransitionSet{}, fmt.Errorf("current song: %w", err)
	}
	upcoming, err := c.lookup(ctx, status.NextSong)
	if err != nil {
		return TransitionSet{}, fmt.Errorf("next song: %w", err)
	}

	ts := TransitionSet{
		SongChanged:  status.Song != c.state.CurrentID,
		QueueChanged: status.QueueLength != c.state.QueueLength,
	}

	next := c.state
	next.Status = status
	next.QueueLength = status.QueueLength

	switch {
	case ts.SongChanged:
		next.Current, next.CurrentID, next.Next = current, status.Song, upcoming
		regenerateAll(&next, c.measurer)
		c.updateArtwork(ctx, &next)
		c.logSongChange(current)
	case ts.QueueChanged:
		regenerateQueue(&next, c.measurer)
	}

	c.state = next
	return ts, nil
}

// lookup fetches the song in slot; an absent slot is not an error
func (c *Controller) lookup(ctx context.Context, slot domain.SlotID) (*domain.Song, error) {
	if !slot.Valid {
		return nil, nil
	}
	song, err := c.player.SongAt(ctx, slot.ID)
	if err != nil {
		return nil, err
	}
	return &song, nil
}

func (c *Controller) updateArtwork(ctx context.Context, s *State) {
	if s.Current == nil {
		s.Art = domain.Artwork{Album: c.backup}
		return
	}
	if c.queue != nil {
		// previous artwork stays up until the completion arrives
		c.queue.Submit(*s.Current)
		return
	}
	s.Art = c.resolver.Resolve(ctx, *s.Current)
}

// collectArtwork commits a finished background resolution if it still
// belongs to the current song
func (c *Controller) collectArtwork() {
	if c.queue == nil {
		return
	}
	done, ok := c.queue.Poll()
	if !ok {
		return
	}
	if done.Slot != c.state.CurrentID {
		c.logger.Debug("Discarding stale artwork", zap.Uint32("slot", done.Slot.ID))
		return
	}
	c.state.Art = done.Artwork
}

func (c *Controller) logSongChange(song *domain.Song) {
	if song == nil {
		c.logger.Info("Playback stopped, nothing playing")
		return
	}
	c.logger.Info("Now playing",
		zap.String("title", song.DisplayTitle()),
		zap.String("artist", song.DisplayArtist()),
		zap.Uint32("slot", song.Slot.ID))
}
