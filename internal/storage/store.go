// internal/storage/store.go
package storage

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidName = errors.New("invalid file name")
	ErrNotFound    = errors.New("file not found")
)

// Store is the content store boundary: uploaded bytes go in through Put,
// everything else addresses files by the name Put returned. Filename
// validation lives here so no caller can reach outside the store.
type Store interface {
	Put(r io.Reader, originalName string) (string, error)
	Exists(name string) bool
	Delete(name string) error
	Open(name string) (io.ReadCloser, int64, error)
}

// ValidateName rejects anything that could address a file outside the
// content directory: empty names, path separators and dot-dot segments.
func ValidateName(name string) error {
	if name == "" ||
		strings.ContainsAny(name, `/\`) ||
		strings.Contains(name, "..") {
		return ErrInvalidName
	}
	return nil
}

// GenerateName builds a unique stored filename keeping only the extension
// of the uploaded name.
func GenerateName(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return fmt.Sprintf("%s_%s%s", time.Now().Format("20060102"), uuid.New().String()[:8], ext)
}
