package http

import (
	"errors"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/MKhiriev/go-site-forms/internal/store"
	"github.com/MKhiriev/go-site-forms/internal/utils"
)

const uploadsPattern = store.UploadsURLPrefix + "*"

// upload stores the "file" part of a multipart request and answers with the
// public URL of the stored image.
func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, errors.Join(ErrNoUploadFile, err))
		return
	}
	defer file.Close()

	stored, err := h.services.UploadService.Upload(r.Context(), header.Filename, file)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, stored, http.StatusCreated)
}

// serveUploads serves stored images. Directories and hidden files, such as
// uploads still being written, are not served.
func (h *Handler) serveUploads() http.HandlerFunc {
	files := http.StripPrefix(store.UploadsURLPrefix, http.FileServer(uploadsFS{http.Dir(h.uploadDir)}))

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		files.ServeHTTP(w, r)
	}
}

type uploadsFS struct {
	fs http.FileSystem
}

func (u uploadsFS) Open(name string) (http.File, error) {
	if strings.HasPrefix(path.Base(name), ".") {
		return nil, os.ErrNotExist
	}

	f, err := u.fs.Open(name)
	if err != nil {
		return nil, err
	}

	stat, err := f.Stat()
	if err != nil || stat.IsDir() {
		f.Close()
		return nil, os.ErrNotExist
	}
	return f, nil
}
