package fetcher

import (
	"context"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/genricoloni/mpdisplay/internal/config"
	"github.com/genricoloni/mpdisplay/internal/domain"
	"go.uber.org/zap"
)

// ArtistImages maps a background key onto a location and fetches it.
// The base is either a directory or an http(s) URL.
type ArtistImages struct {
	base      string
	extension string
	remote    bool
	fetcher   domain.Fetcher
}

// NewArtistImages picks the file or HTTP fetcher from the configured base
func NewArtistImages(logger *zap.Logger, cfg *config.AppConfig) *ArtistImages {
	a := &ArtistImages{
		base:      cfg.Art.Artists,
		extension: cfg.Art.Extension,
		remote:    cfg.ArtistsRemote(),
	}
	if a.remote {
		a.fetcher = NewHTTPFetcher(logger, cfg.Art.Timeout)
	} else {
		a.fetcher = FileFetcher{}
	}
	return a
}

// Location returns where the image for key lives, e.g. ./artists/daft punk.jpg
func (a *ArtistImages) Location(key string) string {
	name := key + a.extension
	if a.remote {
		return strings.TrimSuffix(a.base, "/") + "/" + url.PathEscape(name)
	}
	return filepath.Join(a.base, name)
}

// Fetch reads the image bytes stored under key
func (a *ArtistImages) Fetch(ctx context.Context, key string) ([]byte, error) {
	return a.fetcher.Fetch(ctx, a.Location(key))
}
