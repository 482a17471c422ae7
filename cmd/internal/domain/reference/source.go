package reference

import (
	"context"
	"embed"
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"hotelrp/cmd/internal/infrastructure/aws/storage"
)

//go:embed data/*.json
var embedded embed.FS

// ErrNotFound is returned by a Source when the named dataset does not exist.
var ErrNotFound = errors.New("reference dataset not found")

// Source yields the raw bytes of a named reference dataset ("eventos.json").
type Source interface {
	Read(ctx context.Context, name string) ([]byte, error)
}

type embeddedSource struct{}

// Embedded serves the datasets bundled with the binary.
func Embedded() Source {
	return embeddedSource{}
}

func (embeddedSource) Read(_ context.Context, name string) ([]byte, error) {
	data, err := embedded.ReadFile(path.Join("data", name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	return data, err
}

type dirSource struct {
	dir string
}

// Dir reads datasets from a local directory.
func Dir(dir string) Source {
	return dirSource{dir: dir}
}

func (d dirSource) Read(_ context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(d.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	return data, err
}

type bucketSource struct {
	store  storage.ObjectStore
	prefix string
}

// Bucket reads datasets from an object store under prefix.
func Bucket(store storage.ObjectStore, prefix string) Source {
	return bucketSource{store: store, prefix: prefix}
}

func (b bucketSource) Read(ctx context.Context, name string) ([]byte, error) {
	data, err := b.store.Download(ctx, path.Join(b.prefix, name))
	if errors.Is(err, storage.ErrObjectNotFound) {
		return nil, ErrNotFound
	}
	return data, err
}

// Fallback tries each source in order and returns the first dataset found.
func Fallback(sources ...Source) Source {
	return fallbackSource(sources)
}

type fallbackSource []Source

func (f fallbackSource) Read(ctx context.Context, name string) ([]byte, error) {
	for _, s := range f {
		data, err := s.Read(ctx, name)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		return data, err
	}
	return nil, ErrNotFound
}
