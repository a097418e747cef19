package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalMediaStore(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalMediaStore(dir, "http://localhost:8080/uploads/")

	url, err := store.Upload(context.Background(), "menu/soup.png", "image/png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/uploads/menu/soup.png", url)

	data, err := os.ReadFile(filepath.Join(dir, "menu", "soup.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
}

func TestLocalMediaStore_StaysInsideDir(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalMediaStore(dir, "/uploads")

	url, err := store.Upload(context.Background(), "../../escape.png", "image/png", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/escape.png", url)
	assert.FileExists(t, filepath.Join(dir, "escape.png"))
}
