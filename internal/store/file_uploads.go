package store

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/MKhiriev/go-site-forms/internal/logger"
)

// UploadsURLPrefix is the URL path uploaded files are served under.
const UploadsURLPrefix = "/uploads/"

// localFileStorage is the filesystem implementation of [FileStorage].
type localFileStorage struct {
	dir    string
	logger *logger.Logger
}

// NewLocalFileStorage creates dir if needed and returns a [FileStorage]
// writing into it.
func NewLocalFileStorage(dir string, logger *logger.Logger) (FileStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("error creating upload dir: %w", err)
	}
	return &localFileStorage{dir: dir, logger: logger}, nil
}

// Save copies r into dir/name atomically: the data is written to a temporary
// file first and renamed into place once complete.
func (s *localFileStorage) Save(ctx context.Context, name string, r io.Reader) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("%w: %q", ErrInvalidFileName, name)
	}

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("error creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err = io.Copy(tmp, contextReader{ctx: ctx, r: r}); err != nil {
		tmp.Close()
		return "", fmt.Errorf("error writing upload: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return "", fmt.Errorf("error closing upload: %w", err)
	}

	if err = os.Rename(tmp.Name(), filepath.Join(s.dir, name)); err != nil {
		return "", fmt.Errorf("error moving upload into place: %w", err)
	}

	logger.FromContext(ctx).Info().Str("file", name).Msg("upload stored")
	return path.Join(UploadsURLPrefix, name), nil
}

func (s *localFileStorage) Dir() string {
	return s.dir
}

// contextReader stops a copy once ctx is done.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
