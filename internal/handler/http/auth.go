package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-site-forms/internal/logger"
	"github.com/MKhiriev/go-site-forms/internal/utils"
	"github.com/MKhiriev/go-site-forms/models"
)

func (h *Handler) adminRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var admin models.Admin
	if err := utils.DecodeJSON(r, &admin, maxBodyBytes); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	registered, err := h.services.AuthService.RegisterAdmin(ctx, admin)
	if err != nil {
		writeError(w, r, err)
		return
	}

	token, err := h.services.AuthService.CreateToken(ctx, registered)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	utils.WriteJSON(w, models.SuccessResponse{Success: true}, http.StatusOK)
}

func (h *Handler) adminLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var admin models.Admin
	if err := utils.DecodeJSON(r, &admin, maxBodyBytes); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	found, err := h.services.AuthService.Login(ctx, admin)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Debug().Int64("id", found.AdminID).Msg("admin successfully logged in")

	token, err := h.services.AuthService.CreateToken(ctx, found)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	utils.WriteJSON(w, models.SuccessResponse{Success: true}, http.StatusOK)
}
