package art

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/genricoloni/mpdisplay/internal/domain"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeArtists struct {
	images map[string][]byte
	keys   []string
}

func (f *fakeArtists) Fetch(_ context.Context, key string) ([]byte, error) {
	f.keys = append(f.keys, key)
	data, ok := f.images[key]
	if !ok {
		return nil, domain.ErrAsset
	}
	return data, nil
}

type fakePictures struct {
	data []byte
	err  error
}

func (f *fakePictures) Picture(context.Context, string) ([]byte, error) {
	return f.data, f.err
}

// fakeDecoder "decodes" a payload into a square image whose side is the payload length
type fakeDecoder struct{}

func (fakeDecoder) Decode(data []byte) (*domain.ImageAsset, error) {
	if string(data) == "corrupt" {
		return nil, domain.ErrAsset
	}
	return domain.NewImageAsset(image.NewRGBA(image.Rect(0, 0, len(data), len(data)))), nil
}

func (fakeDecoder) DecodeFile(string) (*domain.ImageAsset, error) {
	return nil, errors.New("unused")
}

type countingPreparer struct{ calls int }

func (p *countingPreparer) Prepare(asset *domain.ImageAsset) *domain.ImageAsset {
	p.calls++
	return asset
}

func TestResolver_Resolve(t *testing.T) {
	backup := domain.NewImageAsset(image.NewRGBA(image.Rect(0, 0, 1, 1)))

	tests := []struct {
		name           string
		song           domain.Song
		artists        map[string][]byte
		pictures       *fakePictures
		wantBackground int // side of the background image, 0 for none
		wantBackup     bool
		wantAlbum      int
	}{
		{
			name:           "Both Images Found",
			song:           domain.Song{File: "a.flac", Artist: "Daft Punk, Justice"},
			artists:        map[string][]byte{"daft punk": []byte("bg")},
			pictures:       &fakePictures{data: []byte("cover")},
			wantBackground: 2,
			wantAlbum:      5,
		},
		{
			name:      "No Artist Clears Background",
			song:      domain.Song{File: "a.flac"},
			artists:   map[string][]byte{"": []byte("bg")},
			pictures:  &fakePictures{data: []byte("cover")},
			wantAlbum: 5,
		},
		{
			name:      "Missing Artist Image",
			song:      domain.Song{File: "a.flac", Artist: "Nobody"},
			artists:   map[string][]byte{},
			pictures:  &fakePictures{data: []byte("cover")},
			wantAlbum: 5,
		},
		{
			name:      "Corrupt Artist Image",
			song:      domain.Song{File: "a.flac", Artist: "Nobody"},
			artists:   map[string][]byte{"nobody": []byte("corrupt")},
			pictures:  &fakePictures{data: []byte("cover")},
			wantAlbum: 5,
		},
		{
			name:       "Tool Failure Falls Back",
			song:       domain.Song{File: "a.flac"},
			pictures:   &fakePictures{err: domain.ErrSubprocess},
			wantBackup: true,
		},
		{
			name:       "Undecodable Picture Falls Back",
			song:       domain.Song{File: "a.flac"},
			pictures:   &fakePictures{data: []byte("corrupt")},
			wantBackup: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prep := &countingPreparer{}
			r := newResolver(zap.NewNop(), &fakeArtists{images: tt.artists}, tt.pictures, fakeDecoder{}, prep, backup)

			art := r.Resolve(context.Background(), tt.song)

			if tt.wantBackground == 0 {
				assert.Nil(t, art.Background)
				assert.Zero(t, prep.calls)
			} else if assert.NotNil(t, art.Background) {
				assert.Equal(t, tt.wantBackground, art.Background.Width)
				assert.Equal(t, 1, prep.calls)
			}

			if tt.wantBackup {
				assert.Same(t, backup, art.Album)
			} else if assert.NotNil(t, art.Album) {
				assert.Equal(t, tt.wantAlbum, art.Album.Width)
			}
		})
	}
}

func TestResolver_UsesBackgroundKey(t *testing.T) {
	artists := &fakeArtists{}
	r := newResolver(zap.NewNop(), artists, &fakePictures{data: []byte("x")}, fakeDecoder{}, nil, nil)

	r.Resolve(context.Background(), domain.Song{File: "f", Artist: "Tyler; The Creator"})

	assert.Equal(t, []string{"tyler"}, artists.keys)
}

func TestResolver_NilBackup(t *testing.T) {
	r := newResolver(zap.NewNop(), &fakeArtists{}, &fakePictures{err: domain.ErrSubprocess}, fakeDecoder{}, nil, nil)

	art := r.Resolve(context.Background(), domain.Song{File: "f"})
	assert.Nil(t, art.Album)
	assert.Nil(t, r.Backup())
}
