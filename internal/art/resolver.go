package art

import (
	"context"

	"github.com/dustin/go-humanize"
	"github.com/genricoloni/mpdisplay/internal/config"
	"github.com/genricoloni/mpdisplay/internal/domain"
	"github.com/genricoloni/mpdisplay/internal/executor"
	"github.com/genricoloni/mpdisplay/internal/fetcher"
	"github.com/genricoloni/mpdisplay/internal/monitor"
	"github.com/genricoloni/mpdisplay/internal/processor"
	"go.uber.org/zap"
)

// ArtistSource returns the raw image stored under a background key
type ArtistSource interface {
	Fetch(ctx context.Context, key string) ([]byte, error)
}

// BackgroundPreparer post-processes a decoded artist image
type BackgroundPreparer interface {
	Prepare(asset *domain.ImageAsset) *domain.ImageAsset
}

// Resolver finds the background and album images of a song.
// It never fails: a missing background stays nil and a missing album
// picture is replaced by the backup image.
type Resolver struct {
	logger     *zap.Logger
	artists    ArtistSource
	pictures   domain.PictureSource
	decoder    domain.ImageDecoder
	background BackgroundPreparer
	backup     *domain.ImageAsset
}

// NewResolver wires the configured picture source and loads the backup image once
func NewResolver(
	logger *zap.Logger,
	cfg *config.AppConfig,
	artists *fetcher.ArtistImages,
	command *executor.PictureCommand,
	client *monitor.MPDClient,
	decoder *processor.Decoder,
	background *processor.BackgroundProcessor,
) *Resolver {
	var pictures domain.PictureSource = command
	if cfg.Art.Source == config.SourceMPD {
		pictures = client
	}

	backup, err := decoder.DecodeFile(cfg.Art.Backup)
	if err != nil {
		logger.Warn("Backup album image unavailable", zap.String("path", cfg.Art.Backup), zap.Error(err))
		backup = nil
	}

	return newResolver(logger, artists, pictures, decoder, background, backup)
}

func newResolver(
	logger *zap.Logger,
	artists ArtistSource,
	pictures domain.PictureSource,
	decoder domain.ImageDecoder,
	background BackgroundPreparer,
	backup *domain.ImageAsset,
) *Resolver {
	return &Resolver{
		logger:     logger,
		artists:    artists,
		pictures:   pictures,
		decoder:    decoder,
		background: background,
		backup:     backup,
	}
}

// Backup returns the fallback album image, nil if it could not be loaded
func (r *Resolver) Backup() *domain.ImageAsset {
	return r.backup
}

// Resolve returns the artwork for song
func (r *Resolver) Resolve(ctx context.Context, song domain.Song) domain.Artwork {
	return domain.Artwork{
		Background: r.resolveBackground(ctx, song.Artist),
		Album:      r.resolveAlbum(ctx, song.File),
	}
}

func (r *Resolver) resolveBackground(ctx context.Context, artist string) *domain.ImageAsset {
	if artist == "" {
		return nil
	}
	key := BackgroundKey(artist)
	if key == "" {
		return nil
	}

	data, err := r.artists.Fetch(ctx, key)
	if err != nil {
		r.logger.Info("No background image for artist", zap.String("key", key), zap.Error(err))
		return nil
	}
	asset, err := r.decoder.Decode(data)
	if err != nil {
		r.logger.Warn("Failed to decode background image", zap.String("key", key), zap.Error(err))
		return nil
	}
	if r.background != nil {
		asset = r.background.Prepare(asset)
	}

	r.logger.Debug("Background image resolved",
		zap.String("key", key),
		zap.Int("width", asset.Width),
		zap.Int("height", asset.Height))
	return asset
}

func (r *Resolver) resolveAlbum(ctx context.Context, file string) *domain.ImageAsset {
	data, err := r.pictures.Picture(ctx, file)
	if err != nil {
		r.logger.Warn("Failed to extract album picture, using backup", zap.String("file", file), zap.Error(err))
		return r.backup
	}
	asset, err := r.decoder.Decode(data)
	if err != nil {
		r.logger.Warn("Failed to decode album picture, using backup", zap.String("file", file), zap.Error(err))
		return r.backup
	}

	r.logger.Debug("Album picture resolved",
		zap.String("file", file),
		zap.String("size", humanize.Bytes(uint64(len(data)))))
	return asset
}
