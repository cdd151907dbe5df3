package store

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/MKhiriev/go-site-forms/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalFileStorage_Save(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	fs, err := NewLocalFileStorage(dir, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, dir, fs.Dir())

	url, err := fs.Save(context.Background(), "hero.png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/hero.png", url)

	data, err := os.ReadFile(filepath.Join(dir, "hero.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestLocalFileStorage_Overwrite(t *testing.T) {
	fs, err := NewLocalFileStorage(t.TempDir(), logger.Nop())
	require.NoError(t, err)

	_, err = fs.Save(context.Background(), "a.txt", strings.NewReader("one"))
	require.NoError(t, err)
	_, err = fs.Save(context.Background(), "a.txt", strings.NewReader("two"))
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(fs.Dir(), "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))
}

func TestLocalFileStorage_RejectsBadNames(t *testing.T) {
	fs, err := NewLocalFileStorage(t.TempDir(), logger.Nop())
	require.NoError(t, err)

	for _, name := range []string{"", "../evil.png", "sub/file.png", ".hidden"} {
		_, err = fs.Save(context.Background(), name, strings.NewReader("x"))
		assert.ErrorIs(t, err, ErrInvalidFileName, name)
	}
}

func TestLocalFileStorage_CancelledContext(t *testing.T) {
	fs, err := NewLocalFileStorage(t.TempDir(), logger.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = fs.Save(ctx, "a.txt", strings.NewReader("data"))
	require.ErrorIs(t, err, context.Canceled)

	_, statErr := os.Stat(filepath.Join(fs.Dir(), "a.txt"))
	assert.True(t, os.IsNotExist(statErr))
}
