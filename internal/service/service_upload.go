package service

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/MKhiriev/go-site-forms/internal/logger"
	"github.com/MKhiriev/go-site-forms/internal/store"
	"github.com/MKhiriev/go-site-forms/internal/utils"
	"github.com/MKhiriev/go-site-forms/models"
)

// allowedImageTypes maps the sniffed content type of an upload to the
// extension it is stored with.
var allowedImageTypes = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

type uploadService struct {
	fileStorage store.FileStorage
	ids         *utils.UUIDGenerator

	logger *logger.Logger
}

func NewUploadService(fileStorage store.FileStorage, logger *logger.Logger) UploadService {
	return &uploadService{
		fileStorage: fileStorage,
		ids:         utils.NewUUIDGenerator(),
		logger:      logger,
	}
}

// Upload stores an image under a fresh name and returns its public URL.
// The type is sniffed from the content; filename only contributes a readable
// prefix.
func (u *uploadService) Upload(ctx context.Context, filename string, r io.Reader) (models.UploadResponse, error) {
	br := bufio.NewReaderSize(r, 512)
	head, err := br.Peek(512)
	if len(head) == 0 {
		if err != nil && err != io.EOF {
			return models.UploadResponse{}, fmt.Errorf("error reading upload: %w", err)
		}
		return models.UploadResponse{}, ErrEmptyUpload
	}

	contentType := http.DetectContentType(head)
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		logger.FromContext(ctx).Warn().Str("content_type", contentType).Msg("upload rejected")
		return models.UploadResponse{}, fmt.Errorf("%w: %s", ErrUnsupportedUpload, contentType)
	}

	url, err := u.fileStorage.Save(ctx, uploadName(filename, u.ids.Generate())+ext, br)
	if err != nil {
		return models.UploadResponse{}, fmt.Errorf("error storing upload: %w", err)
	}

	return models.UploadResponse{URL: url}, nil
}

// uploadName returns "<stem>-<id>" with a stem made of the safe characters
// of the original file name. Blanks and dots become dashes.
func uploadName(filename, id string) string {
	stem := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	stem = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		case r == ' ', r == '.':
			return '-'
		}
		return -1
	}, stem)
	if len(stem) > 32 {
		stem = stem[:32]
	}

	if stem == "" {
		return id
	}
	return stem + "-" + id
}
