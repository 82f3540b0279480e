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

func TestLocalDiskPutAndDelete(t *testing.T) {
	root := t.TempDir()
	disk, err := NewLocalDisk(root, "/storage/")
	require.NoError(t, err)
	ctx := context.Background()

	path, err := disk.Put(ctx, "media/images/a.jpg", strings.NewReader("hello"))
	require.NoError(t, err)
	assert.Equal(t, "media/images/a.jpg", path)

	content, err := os.ReadFile(filepath.Join(root, "media", "images", "a.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(content))

	require.NoError(t, disk.Delete(ctx, path))
	_, err = os.Stat(filepath.Join(root, "media", "images", "a.jpg"))
	assert.True(t, os.IsNotExist(err))

	// Deleting a path that is already gone is not an error.
	assert.NoError(t, disk.Delete(ctx, path))
}

func TestLocalDiskURLRoundTrip(t *testing.T) {
	disk, err := NewLocalDisk(t.TempDir(), "/storage")
	require.NoError(t, err)

	url := disk.URL("media/audio/x.mp3")
	assert.Equal(t, "/storage/media/audio/x.mp3", url)
	assert.Equal(t, "media/audio/x.mp3", disk.PathFromURL(url))

	// Foreign URLs do not map back to a local path.
	assert.Empty(t, disk.PathFromURL("https://cdn.example.com/x.mp3"))
}
