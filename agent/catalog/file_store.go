package catalog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const DefaultFileName = "plans.json"

// FileStore keeps the snapshot as a JSON file.
type FileStore struct {
	path string
	now  func() time.Time
}

// NewFileStore stores the snapshot at path. An empty path resolves to
// DefaultFileName beside the running executable.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		exe, err := os.Executable()
		if err != nil {
			return nil, fmt.Errorf("resolve executable dir: %w", err)
		}
		path = filepath.Join(filepath.Dir(exe), DefaultFileName)
	}
	return &FileStore{path: path, now: time.Now}, nil
}

func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Load(ctx context.Context) (Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrCatalogNotFound
		}
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	return decodeSnapshot(raw)
}

// Save replaces the file atomically via a sibling temp file.
func (s *FileStore) Save(ctx context.Context, plans Catalog) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := encodeSnapshot(plans, s.now())
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create catalog dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".plans-*.json")
	if err != nil {
		return fmt.Errorf("create temp catalog file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		return fmt.Errorf("write catalog file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close catalog file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace catalog file: %w", err)
	}

	return nil
}
