package typeface

import (
	"fmt"
	"math"
	"os"
	"sync"

	"github.com/genricoloni/mpdisplay/internal/config"
	"github.com/genricoloni/mpdisplay/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// maxFaces bounds the face cache; sizes change with every resize
const maxFaces = 64

type faceKey struct {
	weight domain.FontWeight
	size   float64
}

// Typefaces holds the light and bold fonts and hands out sized faces.
// It implements the text-layout primitive used by the display.
type Typefaces struct {
	light *opentype.Font
	bold  *opentype.Font

	mu    sync.Mutex
	faces map[faceKey]font.Face
}

// NewTypefaces loads the configured fonts, falling back to the embedded
// Go fonts when a path is empty.
func NewTypefaces(logger *zap.Logger, cfg *config.AppConfig) (*Typefaces, error) {
	light, err := load(cfg.Display.FontLight, goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("light font: %w", err)
	}
	bold, err := load(cfg.Display.FontBold, gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("bold font: %w", err)
	}

	logger.Debug("Fonts loaded",
		zap.String("light", nameOr(cfg.Display.FontLight, "goregular")),
		zap.String("bold", nameOr(cfg.Display.FontBold, "gobold")))

	return &Typefaces{light: light, bold: bold, faces: make(map[faceKey]font.Face)}, nil
}

// Embedded returns typefaces backed only by the embedded Go fonts
func Embedded() *Typefaces {
	light, _ := opentype.Parse(goregular.TTF)
	bold, _ := opentype.Parse(gobold.TTF)
	return &Typefaces{light: light, bold: bold, faces: make(map[faceKey]font.Face)}
}

func load(path string, fallback []byte) (*opentype.Font, error) {
	data := fallback
	if path != "" {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return nil, err
		}
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", nameOr(path, "embedded font"), err)
	}
	return f, nil
}

func nameOr(path, fallback string) string {
	if path == "" {
		return fallback
	}
	return path
}

// Face returns a face for weight at size pixels. Faces are cached and must
// not be closed by the caller.
func (t *Typefaces) Face(weight domain.FontWeight, size float64) font.Face {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.face(weight, size)
}

func (t *Typefaces) face(weight domain.FontWeight, size float64) font.Face {
	key := faceKey{weight: weight, size: size}
	if f, ok := t.faces[key]; ok {
		return f
	}

	if len(t.faces) >= maxFaces {
		for k, f := range t.faces {
			_ = f.Close()
			delete(t.faces, k)
		}
	}

	src := t.light
	if weight == domain.WeightBold {
		src = t.bold
	}
	// DPI 72 makes the point size equal to the pixel size
	f, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		// only reachable with a non-positive size; the caller floors sizes
		panic(fmt.Sprintf("typeface: face %s %.2f: %v", weight, size, err))
	}
	t.faces[key] = f
	return f
}

// Measure lays out text on a single line
func (t *Typefaces) Measure(text string, weight domain.FontWeight, size float64) domain.TextBlock {
	t.mu.Lock()
	defer t.mu.Unlock()

	face := t.face(weight, size)
	metrics := face.Metrics()
	return domain.TextBlock{
		Content: text,
		Weight:  weight,
		Size:    size,
		Width:   toFloat(font.MeasureString(face, text)),
		Height:  toFloat(metrics.Ascent + metrics.Descent),
		Ascent:  toFloat(metrics.Ascent),
	}
}

func toFloat(v fixed.Int26_6) float64 {
	return math.Ceil(float64(v) / 64)
}
