package display

import (
	"image/color"

	"github.com/genricoloni/mpdisplay/internal/domain"
)

// Palette
var (
	ColorClear      = color.NRGBA{R: 50, G: 50, B: 50, A: 255}
	ColorSecondary  = color.NRGBA{R: 156, G: 156, B: 156, A: 255}
	ColorForeground = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	ColorMidground  = color.NRGBA{R: 195, G: 195, B: 195, A: 255}
	ColorTint       = color.NRGBA{R: 75, G: 75, B: 75, A: 255}
	ColorAccent     = color.NRGBA{R: 29, G: 185, B: 84, A: 255}
	ColorBarTrack   = color.NRGBA{R: 156, G: 156, B: 156, A: 128}
)

// TransitionSet reports which triggers fired during a tick
type TransitionSet struct {
	SongChanged  bool
	QueueChanged bool
}

// Texts holds the measured text blocks. Every block is replaced when its
// content or the window geometry changes.
type Texts struct {
	PlayingFrom domain.TextBlock
	Queue       domain.TextBlock
	Title       domain.TextBlock
	Artist      domain.TextBlock
	UpNext      domain.TextBlock
	NextSong    domain.TextBlock
}

// State is everything the display shows. It is owned by the Controller and
// only mutated from the frame loop.
type State struct {
	Width  uint32
	Height uint32

	Status      domain.PlayerStatus
	Current     *domain.Song
	CurrentID   domain.SlotID
	Next        *domain.Song
	QueueLength uint32

	Fullscreen    bool
	CursorVisible bool
	BarHover      bool
	Debug         bool

	Text      Texts
	Art       domain.Artwork
	Watermark *domain.ImageAsset
}
