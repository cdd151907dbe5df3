package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-site-forms/internal/logger"
	"github.com/MKhiriev/go-site-forms/internal/utils"
	"github.com/MKhiriev/go-site-forms/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) getForm(w http.ResponseWriter, r *http.Request) {
	form, err := h.services.FormService.GetForm(r.Context(), chi.URLParam(r, "pageKey"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.FormResponse{Form: form}, http.StatusOK)
}

func (h *Handler) listForms(w http.ResponseWriter, r *http.Request) {
	forms, err := h.services.FormService.ListForms(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if forms == nil {
		forms = []models.Form{}
	}

	utils.WriteJSON(w, models.FormsResponse{Forms: forms}, http.StatusOK)
}

// saveForm replaces the steps of a form. The body carries the version the
// editor loaded; a stale version is answered with 409 Conflict.
func (h *Handler) saveForm(w http.ResponseWriter, r *http.Request) {
	var request models.SaveFormRequest
	if err := utils.DecodeJSON(r, &request, maxBodyBytes); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	form, err := h.services.FormService.SaveForm(r.Context(), chi.URLParam(r, "pageKey"), request)
	if err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Info().
		Str("page_key", form.PageKey).
		Int64("version", form.Version).
		Msg("form saved")
	utils.WriteJSON(w, models.SaveFormResponse{Success: true, Version: form.Version}, http.StatusOK)
}

func (h *Handler) deleteForm(w http.ResponseWriter, r *http.Request) {
	if err := h.services.FormService.DeleteForm(r.Context(), chi.URLParam(r, "pageKey")); err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.SuccessResponse{Success: true}, http.StatusOK)
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	var request models.SubmitRequest
	if err := utils.DecodeJSON(r, &request, maxBodyBytes); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	if _, err := h.services.SubmissionService.Submit(r.Context(), chi.URLParam(r, "pageKey"), request.Data); err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.SuccessResponse{Success: true}, http.StatusOK)
}

// listSubmissions returns one page of submissions, newest first. Paging comes
// from the offset and limit query parameters.
func (h *Handler) listSubmissions(w http.ResponseWriter, r *http.Request) {
	offset, err := uintQueryParam(r, "offset")
	if err != nil {
		writeError(w, r, err)
		return
	}
	limit, err := uintQueryParam(r, "limit")
	if err != nil {
		writeError(w, r, err)
		return
	}

	page, err := h.services.SubmissionService.ListSubmissions(r.Context(), models.SubmissionFilter{
		PageKey: chi.URLParam(r, "pageKey"),
		Offset:  offset,
		Limit:   limit,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	if page.Submissions == nil {
		page.Submissions = []models.Submission{}
	}

	utils.WriteJSON(w, page, http.StatusOK)
}

func uintQueryParam(r *http.Request, name string) (uint64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidQueryParam, name, raw)
	}
	return v, nil
}
