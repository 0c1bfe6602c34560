package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"note-quiz/internal/domain"

	"github.com/spf13/afero"
)

// LocalFileStore writes uploads below a base directory on an afero filesystem.
type LocalFileStore struct {
	fs  afero.Fs
	dir string
}

func NewLocalFileStore(fs afero.Fs, dir string) *LocalFileStore {
	return &LocalFileStore{fs: fs, dir: dir}
}

// Save writes r to dir/name, creating dir if needed, and returns the stored path.
func (s *LocalFileStore) Save(ctx context.Context, name string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if name == "" || filepath.Base(name) != name {
		return "", fmt.Errorf("invalid file name %q", name)
	}

	if err := s.fs.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory %s: %w", s.dir, err)
	}

	path := filepath.Join(s.dir, name)
	f, err := s.fs.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		_ = s.fs.Remove(path)
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", path, err)
	}

	return path, nil
}

var _ domain.FileStore = (*LocalFileStore)(nil)
