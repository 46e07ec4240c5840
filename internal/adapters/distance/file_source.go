package distance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"pdp-route-service/internal/domain"
	"pdp-route-service/internal/platform/obs"
	"strings"
)

// FileSource reads distance-matrix responses saved as JSON files under Dir.
// A ref is a file name relative to Dir; the ".json" extension is optional.
type FileSource struct {
	Dir string
}

func NewFileSource(dir string) *FileSource {
	return &FileSource{Dir: dir}
}

func (f *FileSource) FetchResponse(ctx context.Context, ref string) (_ *domain.DistanceMatrixResponse, err error) {
	defer obs.Time(ctx, "source.file.FetchResponse")(&err)

	path, err := f.path(ref)
	if err != nil {
		return nil, err
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fetch response: read %q: %w", path, err)
	}

	var resp domain.DistanceMatrixResponse
	if err := json.Unmarshal(b, &resp); err != nil {
		return nil, fmt.Errorf("fetch response: decode %q: %w", path, err)
	}

	return &resp, nil
}

// path resolves ref inside Dir, refusing refs that would escape it.
func (f *FileSource) path(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", errors.New("fetch response: ref must be non-empty")
	}
	if !filepath.IsLocal(ref) {
		return "", fmt.Errorf("fetch response: ref %q must stay inside the source directory", ref)
	}
	if filepath.Ext(ref) == "" {
		ref += ".json"
	}
	return filepath.Join(f.Dir, ref), nil
}
