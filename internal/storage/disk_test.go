// internal/storage/disk_test.go
package storage

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateName(t *testing.T) {
	assert.NoError(t, ValidateName("20240101_abcd1234.png"))

	for _, name := range []string{
		"",
		"../secrets.txt",
		"..",
		"a/../../etc/passwd",
		"sub/dir.png",
		`windows\path.png`,
	} {
		assert.ErrorIs(t, ValidateName(name), ErrInvalidName, "name %q", name)
	}
}

func TestGenerateNameKeepsExtension(t *testing.T) {
	name := GenerateName("My Funko.PNG")
	assert.True(t, strings.HasSuffix(name, ".png"))
	assert.NoError(t, ValidateName(name))

	// unique per call
	assert.NotEqual(t, name, GenerateName("My Funko.PNG"))
}

func TestDiskStoreLifecycle(t *testing.T) {
	store, err := NewDiskStore(filepath.Join(t.TempDir(), "content"))
	require.NoError(t, err)

	name, err := store.Put(strings.NewReader("fake image bytes"), "figure.jpg")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, ".jpg"))
	assert.True(t, store.Exists(name))

	rc, size, err := store.Open(name)
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	rc.Close()
	require.NoError(t, err)
	assert.Equal(t, "fake image bytes", string(body))
	assert.Equal(t, int64(len(body)), size)

	require.NoError(t, store.Delete(name))
	assert.False(t, store.Exists(name))
	assert.ErrorIs(t, store.Delete(name), ErrNotFound)

	_, _, err = store.Open(name)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDiskStoreRejectsTraversal(t *testing.T) {
	root := t.TempDir()
	store, err := NewDiskStore(filepath.Join(root, "content"))
	require.NoError(t, err)

	outside := filepath.Join(root, "victim.txt")
	require.NoError(t, os.WriteFile(outside, []byte("do not touch"), 0o644))

	_, _, err = store.Open("../victim.txt")
	assert.ErrorIs(t, err, ErrInvalidName)
	assert.ErrorIs(t, store.Delete("../victim.txt"), ErrInvalidName)
	assert.False(t, store.Exists("../victim.txt"))

	// the file outside the content directory is untouched
	_, err = os.Stat(outside)
	assert.NoError(t, err)
}
