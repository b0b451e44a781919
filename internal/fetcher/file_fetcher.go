package fetcher

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/genricoloni/mpdisplay/internal/domain"
)

// FileFetcher reads artist images from the local filesystem
type FileFetcher struct{}

// Fetch reads the file at path, capped at the same size as remote images
func (FileFetcher) Fetch(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrAsset, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, _maxImageSize))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %v", domain.ErrAsset, path, err)
	}
	return data, nil
}
