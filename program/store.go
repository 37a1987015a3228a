package program

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Store persists programs by name.
type Store interface {
	Load(ctx context.Context, name string) (*Program, error)
	Save(ctx context.Context, p *Program) error
	List(ctx context.Context) ([]string, error)
}

const programExt = ".json"

// FileStore keeps one JSON file per program in a directory.
type FileStore struct {
	dir string
}

// NewFileStore returns a FileStore rooted at dir. The directory is created
// on first save.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.dir, name+programExt)
}

// Load reads a program from DIR/name.json.
func (s *FileStore) Load(_ context.Context, name string) (*Program, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	data, err := os.ReadFile(s.path(name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %q", ErrProgramNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("read program %q: %w", name, err)
	}
	return Unmarshal(data)
}

// Save writes a program to DIR/name.json.
func (s *FileStore) Save(_ context.Context, p *Program) error {
	if p.Name == "" {
		return ErrEmptyName
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create program dir %s: %w", s.dir, err)
	}
	data, err := Marshal(p)
	if err != nil {
		return fmt.Errorf("serialize program %q: %w", p.Name, err)
	}
	if err := os.WriteFile(s.path(p.Name), data, 0o644); err != nil {
		return fmt.Errorf("write program %q: %w", p.Name, err)
	}
	return nil
}

// List returns the stored program names in lexical order.
func (s *FileStore) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list programs in %s: %w", s.dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), programExt) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), programExt))
	}
	sort.Strings(names)
	return names, nil
}

// LoadOrCreate loads a program, or returns a new one with the given name
// when the store does not have it yet.
func LoadOrCreate(ctx context.Context, s Store, name string) (*Program, error) {
	p, err := s.Load(ctx, name)
	if errors.Is(err, ErrProgramNotFound) {
		return New(name), nil
	}
	return p, err
}
