package http

import (
	"errors"
	"net/http"

	"juntaai-backend/internal/domain"
	"juntaai-backend/internal/service"
)

type ProfileHandler struct {
	profileSvc service.ProfileService
}

func NewProfileHandler(profileSvc service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileSvc: profileSvc}
}

func (h *ProfileHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	claims, err := ClaimsFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	profile, err := h.profileSvc.Get(r.Context(), claims.UserID)
	if errors.Is(err, domain.ErrNotFound) {
		// First request from a fresh identity: mirror the token claims.
		profile = ProfileFromClaims(claims)
		if err := h.profileSvc.Ensure(r.Context(), profile); err != nil {
			respondError(w, err)
			return
		}
	} else if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, profile)
}

type updateProfileRequest struct {
	FullName  string `json:"full_name"`
	Phone     string `json:"phone"`
	AvatarURL string `json:"avatar_url"`
}

func (h *ProfileHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	claims, err := ClaimsFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	var req updateProfileRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	profile, err := h.profileSvc.Update(r.Context(), claims.UserID, req.FullName, req.Phone, req.AvatarURL)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, profile)
}
