package processor

import (
	"math"

	"github.com/disintegration/imaging"
	"github.com/genricoloni/mpdisplay/internal/config"
	"github.com/genricoloni/mpdisplay/internal/domain"
	"go.uber.org/zap"
)

// BackgroundProcessor prepares artist images for use as a full-screen backdrop
type BackgroundProcessor struct {
	logger     *zap.Logger
	res        *domain.ScreenResolution
	blurRadius float64
}

// NewBackgroundProcessor creates a processor sized for the primary display
func NewBackgroundProcessor(logger *zap.Logger, res *domain.ScreenResolution, cfg *config.AppConfig) *BackgroundProcessor {
	return &BackgroundProcessor{
		logger:     logger,
		res:        res,
		blurRadius: cfg.Art.BackgroundBlur,
	}
}

// Prepare shrinks images larger than needed to cover the screen and applies
// the configured Gaussian blur. The input asset is never modified.
func (p *BackgroundProcessor) Prepare(asset *domain.ImageAsset) *domain.ImageAsset {
	if asset == nil {
		return nil
	}

	img := asset.Image
	changed := false

	if p.res != nil && p.res.Width > 0 && p.res.Height > 0 {
		scale := math.Max(float64(p.res.Width)/float64(asset.Width), float64(p.res.Height)/float64(asset.Height))
		if scale < 1 {
			w := int(math.Ceil(float64(asset.Width) * scale))
			h := int(math.Ceil(float64(asset.Height) * scale))
			p.logger.Debug("Shrinking background", zap.Int("w", w), zap.Int("h", h))
			img = imaging.Resize(img, w, h, imaging.Lanczos)
			changed = true
		}
	}

	if p.blurRadius > 0 {
		img = imaging.Blur(img, p.blurRadius)
		changed = true
	}

	if !changed {
		return asset
	}
	return domain.NewImageAsset(img)
}
