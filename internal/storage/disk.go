// internal/storage/disk.go
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// DiskStore keeps uploaded files in a flat local directory.
type DiskStore struct {
	root string
}

func NewDiskStore(root string) (*DiskStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create content directory: %w", err)
	}
	return &DiskStore{root: root}, nil
}

func (s *DiskStore) Put(r io.Reader, originalName string) (string, error) {
	name := GenerateName(originalName)

	f, err := os.Create(filepath.Join(s.root, name))
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return name, nil
}

func (s *DiskStore) Exists(name string) bool {
	if ValidateName(name) != nil {
		return false
	}
	_, err := os.Stat(filepath.Join(s.root, name))
	return err == nil
}

func (s *DiskStore) Delete(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.root, name)); err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (s *DiskStore) Open(name string) (io.ReadCloser, int64, error) {
	if err := ValidateName(name); err != nil {
		return nil, 0, err
	}

	f, err := os.Open(filepath.Join(s.root, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, 0, ErrNotFound
		}
		return nil, 0, fmt.Errorf("failed to open file: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, fmt.Errorf("failed to stat file: %w", err)
	}

	return f, info.Size(), nil
}
