package display

import (
	"fmt"
	"math"

	"github.com/genricoloni/mpdisplay/internal/domain"
)

const (
	textPlayingFrom    = "PLAYING FROM MPD QUEUE"
	textUpNext         = "Up next:"
	textNothingPlaying = "Nothing playing"
	textNothingNext    = "Nothing"
)

// regenerateAll remeasures every text block for the current songs and geometry
func regenerateAll(s *State, m domain.TextMeasurer) {
	w, h := viewport(s.Width, s.Height)

	s.Text.PlayingFrom = m.Measure(textPlayingFrom, domain.WeightLight, fontSize(h/42))
	regenerateQueue(s, m)

	title, artist := textNothingPlaying, ""
	if s.Current != nil {
		title, artist = s.Current.DisplayTitle(), s.Current.DisplayArtist()
	}
	_, available := textColumn(w, h)
	base := math.Min(w, h) / 9
	s.Text.Title = fitText(m, title, domain.WeightBold, base, available)
	s.Text.Artist = fitText(m, artist, domain.WeightBold, base/2, available)

	s.Text.UpNext = m.Measure(textUpNext, domain.WeightBold, fontSize(h/30*1.1))
	s.Text.NextSong = m.Measure(nextSongLine(s.Next), domain.WeightLight, fontSize(h/30))
}

// regenerateQueue remeasures the queue counter only
func regenerateQueue(s *State, m domain.TextMeasurer) {
	_, h := viewport(s.Width, s.Height)
	s.Text.Queue = m.Measure(fmt.Sprintf("%d tracks left", s.QueueLength), domain.WeightBold, fontSize(h/31))
}

// fitText measures content at size and shrinks it until it uses less than
// available pixels or the size floor is reached.
func fitText(m domain.TextMeasurer, content string, weight domain.FontWeight, size, available float64) domain.TextBlock {
	size = fontSize(size)
	block := m.Measure(content, weight, size)
	for block.Width >= available && size*shrinkFactor >= minFontSize {
		size *= shrinkFactor
		block = m.Measure(content, weight, size)
	}
	return block
}

func nextSongLine(next *domain.Song) string {
	if next == nil {
		return textNothingNext
	}
	if artist := next.DisplayArtist(); artist != "" {
		return artist + " - " + next.DisplayTitle()
	}
	return next.DisplayTitle()
}
