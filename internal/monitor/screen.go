package monitor

import (
	"github.com/genricoloni/mpdisplay/internal/domain"
	"github.com/kbinani/screenshot"
	"go.uber.org/zap"
)

// Fallback geometry when no display can be probed (headless runs, CI)
const (
	fallbackWidth  = 1920
	fallbackHeight = 1080
)

// NewScreenResolution probes the primary display. The result seeds the
// initial viewport before the window reports its real size.
func NewScreenResolution(logger *zap.Logger) *domain.ScreenResolution {
	if screenshot.NumActiveDisplays() <= 0 {
		logger.Warn("No active displays detected, assuming default geometry",
			zap.Int("width", fallbackWidth),
			zap.Int("height", fallbackHeight))
		return &domain.ScreenResolution{Width: fallbackWidth, Height: fallbackHeight}
	}

	bounds := screenshot.GetDisplayBounds(0)
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return &domain.ScreenResolution{Width: fallbackWidth, Height: fallbackHeight}
	}

	res := &domain.ScreenResolution{Width: bounds.Dx(), Height: bounds.Dy()}
	logger.Info("Primary display probed",
		zap.Int("width", res.Width),
		zap.Int("height", res.Height))
	return res
}
