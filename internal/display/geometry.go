package display

import (
	"fmt"
	"math"
	"time"

	"github.com/genricoloni/mpdisplay/internal/domain"
)

const (
	// minFontSize and minBarHeight keep degenerate windows drawable
	minFontSize  = 4.0
	minBarHeight = 2.0

	shrinkFactor = 0.95
	fitRatio     = 0.97

	// UpNextThreshold is the playback fraction at which the up next overlay appears
	UpNextThreshold = 0.9
)

// viewport returns the window size as floats, clamped to at least one pixel
func viewport(width, height uint32) (float64, float64) {
	return math.Max(float64(width), 1), math.Max(float64(height), 1)
}

func fontSize(size float64) float64 {
	return math.Max(size, minFontSize)
}

// Fraction returns elapsed/duration clamped to [0, 1]. A zero duration
// yields 0.
func Fraction(elapsed, duration time.Duration) float64 {
	if duration <= 0 {
		return 0
	}
	f := elapsed.Seconds() / duration.Seconds()
	return math.Min(math.Max(f, 0), 1)
}

// UpNextRatio maps the playback fraction range [0.9, 1] onto [0, 1]
func UpNextRatio(fraction float64) float64 {
	r := (fraction - UpNextThreshold) * 10
	return math.Min(math.Max(r, 0), 1)
}

// FormatClock renders d as M:SS
func FormatClock(d time.Duration) string {
	secs := int64(d / time.Second)
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// AspectFill scales an image to cover a width x height viewport, centered.
// The returned rect may extend past the viewport on one axis.
func AspectFill(imgW, imgH int, width, height float64) domain.Rect {
	if imgW <= 0 || imgH <= 0 {
		return domain.Rect{W: width, H: height}
	}
	scale := math.Max(width/float64(imgW), height/float64(imgH))
	w := math.Ceil(float64(imgW) * scale)
	h := math.Ceil(float64(imgH) * scale)
	return domain.Rect{X: (width - w) / 2, Y: (height - h) / 2, W: w, H: h}
}

// scaledRect places an image scaled by scale with its top-left at (x, y)
func scaledRect(asset *domain.ImageAsset, scale, x, y float64) domain.Rect {
	return domain.Rect{
		X: x,
		Y: y,
		W: math.Ceil(float64(asset.Width) * scale),
		H: math.Ceil(float64(asset.Height) * scale),
	}
}

// progressBar returns the track rectangle of the progress bar
func progressBar(width, height float64) domain.Rect {
	w := width * 0.85
	return domain.Rect{
		X: (width - w) / 2,
		Y: height * 0.9,
		W: w,
		H: math.Max(height*0.006, minBarHeight),
	}
}

// InHoverBand reports whether a pointer at y is over the progress bar. The
// band is 4% of the window height, centered on the bar.
func InHoverBand(y float64, width, height uint32) bool {
	w, h := viewport(width, height)
	bar := progressBar(w, h)
	center := bar.Y + bar.H/2
	return math.Abs(y-center) < h*0.02
}

// albumSquare returns the album art square: side min(w,h)/3, left aligned
// and ending at 5/6 of the height
func albumSquare(width, height float64) domain.Rect {
	side := math.Min(width, height) / 3
	return domain.Rect{X: width / 16, Y: height/6*5 - side, W: side, H: side}
}

// textColumn returns the x offset of the title column and the width text
// may use before it is shrunk
func textColumn(width, height float64) (x, available float64) {
	album := albumSquare(width, height)
	x = album.X + album.W*1.1
	return x, (width - x) * fitRatio
}
