package processor

import (
	"bytes"
	"fmt"
	_ "image/jpeg" // JPEG format support
	_ "image/png"  // PNG format support

	"github.com/disintegration/imaging"
	"github.com/genricoloni/mpdisplay/internal/domain"
	_ "golang.org/x/image/bmp"  // BMP format support
	_ "golang.org/x/image/webp" // WebP format support
)

// Decoder is the image-decode primitive: encoded bytes in, pixels out
type Decoder struct{}

// NewDecoder creates a decoder. EXIF orientation is honored.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode turns encoded image bytes into an asset
func (d *Decoder) Decode(data []byte) (*domain.ImageAsset, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: failed to decode image: empty input", domain.ErrAsset)
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode image: %v", domain.ErrAsset, err)
	}
	return validate(domain.NewImageAsset(img))
}

// DecodeFile reads and decodes the image at path
func (d *Decoder) DecodeFile(path string) (*domain.ImageAsset, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open %s: %w", domain.ErrAsset, path, err)
	}
	return validate(domain.NewImageAsset(img))
}

// validate rejects images that would break scale computations
func validate(asset *domain.ImageAsset) (*domain.ImageAsset, error) {
	if asset.Width == 0 || asset.Height == 0 {
		return nil, fmt.Errorf("%w: invalid image dimensions: %dx%d", domain.ErrAsset, asset.Width, asset.Height)
	}
	return asset, nil
}
