package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-site-forms/internal/content"
	"github.com/MKhiriev/go-site-forms/internal/locale"
	"github.com/MKhiriev/go-site-forms/internal/utils"
	"github.com/MKhiriev/go-site-forms/models"
	"github.com/go-chi/chi/v5"
)

type contentFieldsResponse struct {
	PageKey string                  `json:"pageKey"`
	Locale  string                  `json:"locale"`
	Fields  []content.EditableField `json:"fields"`
}

// requestLocale returns the locale of the "locale" query parameter, falling
// back to Accept-Language.
func requestLocale(r *http.Request) locale.Locale {
	if raw := r.URL.Query().Get("locale"); raw != "" {
		return locale.Parse(raw)
	}
	return locale.Parse(r.Header.Get("Accept-Language"))
}

func (h *Handler) getContent(w http.ResponseWriter, r *http.Request) {
	doc, err := h.services.ContentService.GetContent(r.Context(), chi.URLParam(r, "pageKey"), requestLocale(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, doc, http.StatusOK)
}

func (h *Handler) getContentFields(w http.ResponseWriter, r *http.Request) {
	pageKey := chi.URLParam(r, "pageKey")
	l := requestLocale(r)

	fields, err := h.services.ContentService.GetFields(r.Context(), pageKey, l)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if fields == nil {
		fields = []content.EditableField{}
	}

	utils.WriteJSON(w, contentFieldsResponse{PageKey: pageKey, Locale: l.String(), Fields: fields}, http.StatusOK)
}

// saveContent replaces the document of one locale. The other locale is
// re-derived by the content service.
func (h *Handler) saveContent(w http.ResponseWriter, r *http.Request) {
	var request models.SaveContentRequest
	if err := utils.DecodeJSON(r, &request, maxBodyBytes); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}
	if len(request.Data) == 0 {
		request.Data = json.RawMessage("null")
	}

	doc, err := h.services.ContentService.SaveContent(r.Context(),
		chi.URLParam(r, "pageKey"),
		locale.Locale(chi.URLParam(r, "locale")),
		request.Data,
	)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, doc, http.StatusOK)
}

func (h *Handler) updateContentField(w http.ResponseWriter, r *http.Request) {
	var update models.ContentFieldUpdate
	if err := utils.DecodeJSON(r, &update, maxBodyBytes); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	doc, err := h.services.ContentService.UpdateField(r.Context(),
		chi.URLParam(r, "pageKey"),
		locale.Locale(chi.URLParam(r, "locale")),
		update,
	)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, doc, http.StatusOK)
}
