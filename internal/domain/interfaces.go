package domain

import "context"

// PlayerClient defines the synchronous, fallible queries the display needs
// from the player daemon.
//
//go:generate mockgen -destination=mocks/player_client_mock.go -package=mocks github.com/genricoloni/mpdisplay/internal/domain PlayerClient
type PlayerClient interface {
	// Status returns a fresh status snapshot
	Status(ctx context.Context) (PlayerStatus, error)

	// SongAt looks up the song occupying a queue slot.
	// Returns an error wrapping ErrSongNotFound when the slot is gone.
	SongAt(ctx context.Context, id uint32) (Song, error)

	// TogglePause flips between playing and paused
	TogglePause(ctx context.Context) error

	// Close releases the transport
	Close() error
}

// ArtResolver resolves the images shown for a song.
// Implementations absorb and log every failure.
type ArtResolver interface {
	Resolve(ctx context.Context, song Song) Artwork
}

// Fetcher retrieves raw artist image bytes from a location
type Fetcher interface {
	// Fetch downloads or reads image data from a URL or local path
	Fetch(ctx context.Context, location string) ([]byte, error)
}

// PictureSource extracts the embedded picture of a track
type PictureSource interface {
	// Picture returns the raw image bytes for a daemon-relative file path
	Picture(ctx context.Context, file string) ([]byte, error)
}

// ImageDecoder is the image-decode primitive
type ImageDecoder interface {
	// Decode turns encoded bytes into a pixel buffer
	Decode(data []byte) (*ImageAsset, error)
	// DecodeFile reads and decodes an image file
	DecodeFile(path string) (*ImageAsset, error)
}

// TextMeasurer is the text-layout primitive: it measures a string at a size
type TextMeasurer interface {
	Measure(text string, weight FontWeight, size float64) TextBlock
}
