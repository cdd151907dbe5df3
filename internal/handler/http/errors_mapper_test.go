package http

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/MKhiriev/go-site-forms/internal/service"
	"github.com/MKhiriev/go-site-forms/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("get: %w", store.ErrFormNotFound), http.StatusNotFound},
		{fmt.Errorf("get: %w", store.ErrContentNotFound), http.StatusNotFound},
		{store.ErrVersionConflict, http.StatusConflict},
		{fmt.Errorf("%w: x", service.ErrFormValidation), http.StatusBadRequest},
		{service.ErrInvalidPageKey, http.StatusBadRequest},
		{service.ErrUnsupportedUpload, http.StatusUnsupportedMediaType},
		{service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized},
		{store.ErrBuildingSQLQuery, http.StatusInternalServerError},
		{fmt.Errorf("unknown"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFromError(tt.err), tt.err.Error())
	}
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "Internal Server Error", errorMessage(fmt.Errorf("secret dsn: %w", store.ErrExecutingQuery), http.StatusInternalServerError))
	assert.Equal(t, store.ErrFormNotFound.Error(), errorMessage(fmt.Errorf("get: %w", store.ErrFormNotFound), http.StatusNotFound))
	assert.Equal(t, "invalid content document: path not found", errorMessage(fmt.Errorf("%w: path not found", service.ErrInvalidContent), http.StatusBadRequest))
}
