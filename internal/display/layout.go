package display

import (
	"math"

	"github.com/genricoloni/mpdisplay/internal/domain"
)

// Layout maps the state and window geometry onto draw commands, back to
// front. It performs no I/O and does not modify s; m is only used to
// measure the clock labels.
func Layout(s State, width, height uint32, m domain.TextMeasurer) []domain.DrawCommand {
	w, h := viewport(width, height)
	cmds := make([]domain.DrawCommand, 0, 16)

	cmds = append(cmds, domain.ClearCommand{Color: ColorClear})

	if bg := s.Art.Background; bg != nil {
		cmds = append(cmds, domain.ImageCommand{
			ID:     "background",
			Image:  bg,
			Rect:   AspectFill(bg.Width, bg.Height, w, h),
			Tint:   ColorTint,
			Tinted: true,
		})
	}

	// Watermark and queue header, top left
	mark := domain.Rect{X: w / 20, Y: h / 20}
	if wm := s.Watermark; wm != nil && wm.Height > 0 {
		mark = scaledRect(wm, (h/9)/float64(wm.Height), mark.X, mark.Y)
		cmds = append(cmds, domain.ImageCommand{ID: "watermark", Image: wm, Rect: mark})
	}
	headerX := mark.X + mark.W + mark.H/4
	playingY := mark.Y + s.Text.PlayingFrom.Height
	queueY := playingY + s.Text.Queue.Height
	cmds = append(cmds,
		domain.TextCommand{ID: "playing_from", Block: s.Text.PlayingFrom, X: headerX, Y: playingY, Color: ColorSecondary},
		domain.TextCommand{ID: "queue", Block: s.Text.Queue, X: headerX, Y: queueY, Color: ColorSecondary},
	)

	// Album art with title and artist to its right
	album := albumSquare(w, h)
	if s.Art.Album != nil {
		cmds = append(cmds, domain.ImageCommand{ID: "album", Image: s.Art.Album, Rect: album})
	}
	titleX, _ := textColumn(w, h)
	titleY := album.Y + album.W*0.4
	artistY := titleY + s.Text.Title.Height + album.W*0.05
	cmds = append(cmds,
		domain.TextCommand{ID: "title", Block: s.Text.Title, X: titleX, Y: titleY, Color: ColorForeground},
		domain.TextCommand{ID: "artist", Block: s.Text.Artist, X: titleX, Y: artistY, Color: ColorMidground},
	)

	// Progress bar
	bar := progressBar(w, h)
	radius := bar.H / 2.1
	fraction := Fraction(s.Status.Elapsed, s.Status.Duration)
	fill := bar
	fill.W = bar.W * fraction
	fillColor := ColorForeground
	if s.BarHover {
		fillColor = ColorAccent
	}
	cmds = append(cmds,
		domain.RoundedRectCommand{ID: "bar_track", Rect: bar, Radius: radius, Color: ColorBarTrack},
		domain.RoundedRectCommand{ID: "bar_fill", Rect: fill, Radius: radius, Color: fillColor},
	)

	labelSize := fontSize(bar.H * 3)
	elapsed := m.Measure(FormatClock(s.Status.Elapsed), domain.WeightLight, labelSize)
	duration := m.Measure(FormatClock(s.Status.Duration), domain.WeightLight, labelSize)
	labelY := bar.Y - elapsed.Height/3.1
	cmds = append(cmds,
		domain.TextCommand{ID: "elapsed", Block: elapsed, X: bar.X - elapsed.Width - bar.H*1.5, Y: labelY, Color: ColorForeground},
		domain.TextCommand{ID: "duration", Block: duration, X: bar.X + bar.W + bar.H*1.5, Y: labelY, Color: ColorForeground},
	)

	if s.BarHover {
		cmds = append(cmds, domain.CircleCommand{
			ID:     "bar_handle",
			X:      fill.X + fill.W,
			Y:      bar.Y + bar.H/2,
			Radius: bar.H,
			Color:  ColorForeground,
		})
	}

	if fraction >= UpNextThreshold {
		cmds = append(cmds, upNext(s, w, h, bar.H, fraction)...)
	}

	return cmds
}

// upNext lays out the top right overlay shown near the end of a song. Its
// bar shrinks toward the right edge as the song finishes.
func upNext(s State, w, h, barH, fraction float64) []domain.DrawCommand {
	x := w - math.Max(s.Text.UpNext.Width, s.Text.NextSong.Width) - w/30
	y := h / 20
	barY := y + s.Text.UpNext.Height + s.Text.NextSong.Height + h/30/2
	barX := x + (w-x)*UpNextRatio(fraction)

	return []domain.DrawCommand{
		domain.TextCommand{ID: "up_next", Block: s.Text.UpNext, X: x, Y: y, Color: ColorForeground},
		domain.TextCommand{ID: "next_song", Block: s.Text.NextSong, X: x, Y: y + s.Text.UpNext.Height, Color: ColorForeground},
		domain.RoundedRectCommand{
			ID:     "up_next_bar",
			Rect:   domain.Rect{X: barX, Y: barY, W: w + 5 - barX, H: barH},
			Radius: barH / 2.1,
			Color:  ColorForeground,
		},
	}
}
