package domain

import (
	"image"
	"time"
)

// PlaybackState represents the transport state reported by the player daemon
type PlaybackState string

const (
	// StatePlaying indicates the queue is currently playing
	StatePlaying PlaybackState = "play"
	// StatePaused indicates playback is paused
	StatePaused PlaybackState = "pause"
	// StateStopped indicates playback is stopped
	StateStopped PlaybackState = "stop"
)

// SlotID identifies a track instance in the playback queue.
// The zero value means "no slot"; use SomeSlot to build a present id.
type SlotID struct {
	ID    uint32
	Valid bool
}

// NoSlot is the absent queue slot id
var NoSlot = SlotID{}

// SomeSlot returns a present queue slot id
func SomeSlot(id uint32) SlotID {
	return SlotID{ID: id, Valid: true}
}

// PlayerStatus is a full snapshot of the player daemon status.
// It is refreshed wholesale every tick.
type PlayerStatus struct {
	State       PlaybackState
	QueueLength uint32
	// Song is the slot currently playing (or paused on)
	Song SlotID
	// NextSong is the slot that will play after Song
	NextSong SlotID
	// Elapsed and Duration are zero when the daemon does not report them
	Elapsed  time.Duration
	Duration time.Duration
}

// Song holds the metadata of a queued track
type Song struct {
	// File is the daemon-relative path of the track and its stable identity key
	File string
	// Title is empty when the track carries no title tag
	Title string
	// Artist is empty when the track carries no artist tag
	Artist string
	// Slot is the queue slot the song was looked up from
	Slot SlotID
}

// DisplayTitle returns the title, falling back to the file path
func (s Song) DisplayTitle() string {
	if s.Title == "" {
		return s.File
	}
	return s.Title
}

// DisplayArtist returns the artist or an empty string
func (s Song) DisplayArtist() string {
	return s.Artist
}

// ImageAsset is a decoded pixel buffer with its dimensions
type ImageAsset struct {
	Image  image.Image
	Width  int
	Height int
}

// NewImageAsset wraps a decoded image
func NewImageAsset(img image.Image) *ImageAsset {
	b := img.Bounds()
	return &ImageAsset{Image: img, Width: b.Dx(), Height: b.Dy()}
}

// Artwork is the pair of images resolved for a song
type Artwork struct {
	// Background is nil when no artist image exists
	Background *ImageAsset
	// Album falls back to the backup album image
	Album *ImageAsset
}

// FontWeight selects one of the two typefaces used by the display
type FontWeight int

const (
	// WeightLight is the book/regular face
	WeightLight FontWeight = iota
	// WeightBold is the bold face
	WeightBold
)

func (w FontWeight) String() string {
	if w == WeightBold {
		return "bold"
	}
	return "light"
}

// TextBlock is a measured run of text. It is only valid for the content,
// weight and size it was measured with.
type TextBlock struct {
	Content string
	Weight  FontWeight
	Size    float64
	Width   float64
	// Height is the line height (ascent + descent)
	Height float64
	// Ascent is the distance from the top of the block to the baseline
	Ascent float64
}

// ScreenResolution holds the display dimensions
type ScreenResolution struct {
	Width  int
	Height int
}
