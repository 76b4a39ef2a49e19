package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// FileBackend keeps each document as a JSON file under a directory.
type FileBackend struct {
	fs  afero.Fs
	dir string
}

func NewFileBackend(fs afero.Fs, dir string) *FileBackend {
	return &FileBackend{fs: fs, dir: dir}
}

func (b *FileBackend) path(name string) string {
	return filepath.Join(b.dir, name)
}

func (b *FileBackend) Read(name string) ([]byte, error) {
	data, err := afero.ReadFile(b.fs, b.path(name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrDocumentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}

// Write goes through a temp file and a rename so readers never see a partial document.
func (b *FileBackend) Write(name string, data []byte) error {
	path := b.path(name)
	if err := b.fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	tmp := path + ".tmp"
	file, err := b.fs.Create(tmp)
	if err != nil {
		return fmt.Errorf("create %s temp file: %w", name, err)
	}

	if _, err := file.Write(data); err != nil {
		file.Close()
		_ = b.fs.Remove(tmp)
		return fmt.Errorf("write %s temp file: %w", name, err)
	}

	if err := file.Sync(); err != nil {
		file.Close()
		_ = b.fs.Remove(tmp)
		return fmt.Errorf("sync %s: %w", name, err)
	}

	if err := file.Close(); err != nil {
		_ = b.fs.Remove(tmp)
		return fmt.Errorf("close %s temp file: %w", name, err)
	}

	if err := b.fs.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace %s: %w", name, err)
	}
	return nil
}

func (b *FileBackend) Close() error { return nil }
