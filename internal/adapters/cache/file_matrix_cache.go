package cache

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"pdp-route-service/internal/domain"
	"pdp-route-service/internal/matrix"
	"pdp-route-service/internal/ports"
	"strings"
)

// FileMatrixCache keeps one brace-text file per key under Dir
// (<Dir>/<key>.txt). Files are written once and never replaced.
type FileMatrixCache struct {
	Dir string
}

func NewFileMatrixCache(dir string) *FileMatrixCache {
	return &FileMatrixCache{Dir: dir}
}

func (f *FileMatrixCache) Get(ctx context.Context, key string) (domain.TravelTimeMatrix, error) {
	path, err := f.path(key)
	if err != nil {
		return nil, err
	}

	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ports.ErrCacheMiss
		}
		return nil, fmt.Errorf("get matrix file cache: read %q: %w", path, err)
	}

	m, err := matrix.ParseSerialized(string(b))
	if err != nil {
		return nil, fmt.Errorf("get matrix file cache %q: %w", path, err)
	}

	return m, nil
}

func (f *FileMatrixCache) Put(ctx context.Context, key string, m domain.TravelTimeMatrix) error {
	path, err := f.path(key)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(f.Dir, 0o755); err != nil {
		return fmt.Errorf("put matrix file cache: create dir %q: %w", f.Dir, err)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil
		}
		return fmt.Errorf("put matrix file cache: create %q: %w", path, err)
	}

	if _, err := file.WriteString(matrix.Serialize(m)); err != nil {
		file.Close()
		return fmt.Errorf("put matrix file cache: write %q: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("put matrix file cache: close %q: %w", path, err)
	}

	return nil
}

func (f *FileMatrixCache) path(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", errors.New("matrix file cache: key must not be empty")
	}
	if !filepath.IsLocal(key) || strings.ContainsRune(key, filepath.Separator) {
		return "", fmt.Errorf("matrix file cache: invalid key %q", key)
	}
	return filepath.Join(f.Dir, key+".txt"), nil
}
