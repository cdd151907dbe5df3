package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-site-forms/internal/logger"
	"github.com/MKhiriev/go-site-forms/internal/service"
	"github.com/MKhiriev/go-site-forms/internal/store"
	"github.com/MKhiriev/go-site-forms/internal/utils"
	"github.com/MKhiriev/go-site-forms/models"
)

var errorStatusMap = map[error]int{
	ErrEmptyAuthorizationHeader:   http.StatusUnauthorized,
	ErrInvalidAuthorizationHeader: http.StatusUnauthorized,
	ErrInvalidJSON:                http.StatusBadRequest,
	ErrInvalidQueryParam:          http.StatusBadRequest,
	ErrNoSession:                  http.StatusUnauthorized,
	ErrNoUploadFile:               http.StatusBadRequest,
	utils.ErrEmptyBody:            http.StatusBadRequest,

	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrWrongPassword:           http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrRegistrationClosed:      http.StatusForbidden,
	service.ErrInvalidPageKey:          http.StatusBadRequest,
	service.ErrFormValidation:          http.StatusBadRequest,
	service.ErrSubmissionValidation:    http.StatusBadRequest,
	service.ErrInvalidLocale:           http.StatusBadRequest,
	service.ErrInvalidContent:          http.StatusBadRequest,
	service.ErrSessionInvalid:          http.StatusUnauthorized,
	service.ErrUnsupportedUpload:       http.StatusUnsupportedMediaType,
	service.ErrEmptyUpload:             http.StatusBadRequest,

	store.ErrLoginAlreadyExists: http.StatusConflict,
	store.ErrAdminNotFound:      http.StatusUnauthorized,
	store.ErrFormNotFound:       http.StatusNotFound,
	store.ErrVersionConflict:    http.StatusConflict,
	store.ErrContentNotFound:    http.StatusNotFound,
	store.ErrInvalidFileName:    http.StatusBadRequest,
}

// detailedErrors keep their full message in the response body: it names the
// failing rule.
var detailedErrors = []error{
	service.ErrFormValidation,
	service.ErrSubmissionValidation,
	service.ErrInvalidContent,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// errorMessage returns the client-facing message for err.
func errorMessage(err error, status int) string {
	if status >= http.StatusInternalServerError {
		return http.StatusText(status)
	}
	if status == http.StatusUnauthorized && errors.Is(err, store.ErrAdminNotFound) {
		return service.ErrWrongPassword.Error()
	}

	for _, target := range detailedErrors {
		if errors.Is(err, target) {
			return err.Error()
		}
	}
	for target := range errorStatusMap {
		if errors.Is(err, target) {
			return target.Error()
		}
	}
	return http.StatusText(status)
}

// writeError logs err and answers with its status and an {"error": ...} body.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)
	status := statusFromError(err)

	if status >= http.StatusInternalServerError {
		log.Err(err).Msg("request failed")
	} else {
		log.Warn().Err(err).Int("status", status).Msg("request rejected")
	}

	utils.WriteJSON(w, models.ErrorResponse{Error: errorMessage(err, status)}, status)
}
