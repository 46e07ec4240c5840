package problems

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"pdp-route-service/internal/domain"
	"pdp-route-service/internal/ports"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileRepository reads problem definitions from YAML files in Dir.
// A problem is named after its file stem; a name set in the file must
// match it, and two files may not share a stem.
type FileRepository struct {
	Dir string
}

func NewFileRepository(dir string) *FileRepository {
	return &FileRepository{Dir: dir}
}

func (f *FileRepository) ListProblems(ctx context.Context) ([]string, error) {
	paths, err := f.files()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(paths))
	for _, p := range paths {
		names = append(names, stem(p))
	}
	sort.Strings(names)
	return names, nil
}

func (f *FileRepository) GetProblem(ctx context.Context, name string) (*domain.Problem, error) {
	name = strings.TrimSpace(name)
	if name == "" || !filepath.IsLocal(name) || strings.ContainsRune(name, filepath.Separator) {
		return nil, fmt.Errorf("get problem %q: %w", name, ports.ErrProblemNotFound)
	}

	for _, ext := range []string{".yaml", ".yml"} {
		p, err := loadNamed(filepath.Join(f.Dir, name+ext))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return p, nil
	}

	return nil, fmt.Errorf("get problem %q: %w", name, ports.ErrProblemNotFound)
}

// LoadAll decodes every problem file in Dir, in name order.
func (f *FileRepository) LoadAll(ctx context.Context) ([]*domain.Problem, error) {
	paths, err := f.files()
	if err != nil {
		return nil, err
	}

	out := make([]*domain.Problem, 0, len(paths))
	for _, path := range paths {
		p, err := loadNamed(path)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// LoadFile decodes a single YAML problem file. Unknown keys are rejected.
func LoadFile(path string) (*domain.Problem, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load problem: %w", err)
	}
	defer file.Close()

	dec := yaml.NewDecoder(file)
	dec.KnownFields(true)

	var p domain.Problem
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("load problem: decode %q: %w", path, err)
	}
	if strings.TrimSpace(p.Name) == "" {
		p.Name = stem(path)
	}

	return &p, nil
}

// loadNamed loads path and checks the problem name against the file stem,
// so listing and loading agree on names.
func loadNamed(path string) (*domain.Problem, error) {
	p, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	if want := stem(path); strings.TrimSpace(p.Name) != want {
		return nil, fmt.Errorf("load problem %q: name %q does not match file name %q", path, p.Name, want)
	}
	p.Name = strings.TrimSpace(p.Name)
	return p, nil
}

func (f *FileRepository) files() ([]string, error) {
	entries, err := os.ReadDir(f.Dir)
	if err != nil {
		return nil, fmt.Errorf("list problems: read dir %q: %w", f.Dir, err)
	}

	paths := make([]string, 0, len(entries))
	seen := make(map[string]string, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch filepath.Ext(e.Name()) {
		case ".yaml", ".yml":
			name := stem(e.Name())
			if other, dup := seen[name]; dup {
				return nil, fmt.Errorf("list problems: %q and %q both define problem %q", other, e.Name(), name)
			}
			seen[name] = e.Name()
			paths = append(paths, filepath.Join(f.Dir, e.Name()))
		}
	}
	return paths, nil
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
