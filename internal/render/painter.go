package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/genricoloni/mpdisplay/internal/domain"
	"golang.org/x/image/font"
)

// FaceSource provides font faces for text commands
type FaceSource interface {
	Face(weight domain.FontWeight, size float64) font.Face
}

type imageKey struct {
	src     *domain.ImageAsset
	rect    image.Rectangle
	visible image.Rectangle
	tint    color.NRGBA
	tinted  bool
}

// Painter rasterizes draw commands. Scaled images are cached between
// frames; an entry survives as long as consecutive frames use it.
type Painter struct {
	faces FaceSource
	cache map[imageKey]image.Image
}

// NewPainter creates a painter drawing text with faces
func NewPainter(faces FaceSource) *Painter {
	return &Painter{faces: faces, cache: make(map[imageKey]image.Image)}
}

// Render paints cmds onto a new width x height frame
func (p *Painter) Render(cmds []domain.DrawCommand, width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, max(width, 1), max(height, 1)))
	p.Paint(dst, cmds)
	return dst
}

// Paint draws cmds onto dst in order
func (p *Painter) Paint(dst *image.RGBA, cmds []domain.DrawCommand) {
	dc := gg.NewContextForRGBA(dst)
	used := make(map[imageKey]image.Image, len(p.cache))

	for _, cmd := range cmds {
		switch c := cmd.(type) {
		case domain.ClearCommand:
			dc.SetColor(c.Color)
			dc.Clear()

		case domain.ImageCommand:
			p.drawImage(dst, c, used)

		case domain.RoundedRectCommand:
			r := c.Rect
			if r.W <= 0 || r.H <= 0 {
				continue
			}
			radius := math.Min(c.Radius, math.Min(r.W, r.H)/2)
			dc.DrawRoundedRectangle(r.X, r.Y, r.W, r.H, radius)
			dc.SetColor(c.Color)
			dc.Fill()

		case domain.CircleCommand:
			if c.Radius <= 0 {
				continue
			}
			dc.DrawCircle(c.X, c.Y, c.Radius)
			dc.SetColor(c.Color)
			dc.Fill()

		case domain.TextCommand:
			if c.Block.Content == "" {
				continue
			}
			dc.SetFontFace(p.faces.Face(c.Block.Weight, c.Block.Size))
			dc.SetColor(c.Color)
			dc.DrawString(c.Block.Content, c.X, c.Y+c.Block.Ascent)
		}
	}

	p.cache = used
}

// drawImage blits the visible part of a scaled (and tinted) image
func (p *Painter) drawImage(dst *image.RGBA, c domain.ImageCommand, used map[imageKey]image.Image) {
	if c.Image == nil || c.Image.Width == 0 || c.Image.Height == 0 {
		return
	}
	rect := image.Rect(
		int(math.Round(c.Rect.X)),
		int(math.Round(c.Rect.Y)),
		int(math.Round(c.Rect.X+c.Rect.W)),
		int(math.Round(c.Rect.Y+c.Rect.H)),
	)
	visible := rect.Intersect(dst.Bounds())
	if visible.Empty() {
		return
	}

	key := imageKey{src: c.Image, rect: rect, visible: visible, tint: c.Tint, tinted: c.Tinted}
	img, ok := used[key]
	if !ok {
		if img, ok = p.cache[key]; !ok {
			img = scale(c, rect, visible)
		}
		used[key] = img
	}

	draw.Draw(dst, visible, img, image.Point{}, draw.Over)
}

func scale(c domain.ImageCommand, rect, visible image.Rectangle) image.Image {
	scaled := imaging.Fill(c.Image.Image, rect.Dx(), rect.Dy(), imaging.Center, imaging.Linear)
	cropped := imaging.Crop(scaled, visible.Sub(rect.Min))
	if !c.Tinted {
		return cropped
	}
	t := c.Tint
	return imaging.AdjustFunc(cropped, func(px color.NRGBA) color.NRGBA {
		return color.NRGBA{
			R: uint8(uint16(px.R) * uint16(t.R) / 255),
			G: uint8(uint16(px.G) * uint16(t.G) / 255),
			B: uint8(uint16(px.B) * uint16(t.B) / 255),
			A: uint8(uint16(px.A) * uint16(t.A) / 255),
		}
	})
}
