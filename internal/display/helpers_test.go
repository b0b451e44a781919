package display

import (
	"context"
	"image"

	"github.com/genricoloni/mpdisplay/internal/art"
	"github.com/genricoloni/mpdisplay/internal/domain"
)

// fixedMeasurer gives every glyph a width of 0.6 times the font size
type fixedMeasurer struct {
	calls int
}

func (m *fixedMeasurer) Measure(text string, weight domain.FontWeight, size float64) domain.TextBlock {
	m.calls++
	return domain.TextBlock{
		Content: text,
		Weight:  weight,
		Size:    size,
		Width:   float64(len(text)) * size * 0.6,
		Height:  size * 1.2,
		Ascent:  size,
	}
}

// countingResolver records every resolution
type countingResolver struct {
	calls []domain.Song
}

func (r *countingResolver) Resolve(_ context.Context, song domain.Song) domain.Artwork {
	r.calls = append(r.calls, song)
	return domain.Artwork{
		Background: asset(len(song.Artist)+1, 10),
		Album:      asset(len(song.File)+1, len(song.File)+1),
	}
}

// fakeQueue hands completions over only when the test says so
type fakeQueue struct {
	submitted []domain.Song
	pending   []art.Completion
}

func (q *fakeQueue) Submit(song domain.Song) {
	q.submitted = append(q.submitted, song)
}

func (q *fakeQueue) Poll() (art.Completion, bool) {
	if len(q.pending) == 0 {
		return art.Completion{}, false
	}
	c := q.pending[0]
	q.pending = q.pending[1:]
	return c, true
}

func asset(w, h int) *domain.ImageAsset {
	return domain.NewImageAsset(image.NewRGBA(image.Rect(0, 0, w, h)))
}

func findText(cmds []domain.DrawCommand, id string) (domain.TextCommand, bool) {
	for _, c := range cmds {
		if t, ok := c.(domain.TextCommand); ok && t.ID == id {
			return t, true
		}
	}
	return domain.TextCommand{}, false
}

func findLayer(cmds []domain.DrawCommand, id string) (domain.DrawCommand, bool) {
	for _, c := range cmds {
		if c.Layer() == id {
			return c, true
		}
	}
	return nil, false
}
