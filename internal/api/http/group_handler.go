package http

import (
	"net/http"

	"juntaai-backend/internal/domain"
	"juntaai-backend/internal/service"

	"github.com/gorilla/mux"
)

type GroupHandler struct {
	groupSvc  service.GroupService
	ledgerSvc service.LedgerService
}

func NewGroupHandler(groupSvc service.GroupService, ledgerSvc service.LedgerService) *GroupHandler {
	return &GroupHandler{groupSvc: groupSvc, ledgerSvc: ledgerSvc}
}

type createGroupRequest struct {
	Name      string `json:"name"`
	TotalGoal string `json:"total_goal_amount"`
	Category  string `json:"category"`
	PixKey    string `json:"pix_key"`
}

func (h *GroupHandler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	claims, err := ClaimsFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	var req createGroupRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	group, err := h.groupSvc.CreateGroup(r.Context(), ProfileFromClaims(claims), req.Name, req.TotalGoal, domain.GroupCategory(req.Category), req.PixKey)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, group)
}

func (h *GroupHandler) ListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.groupSvc.ListGroups(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, groups)
}

func (h *GroupHandler) ListMyGroups(w http.ResponseWriter, r *http.Request) {
	claims, err := ClaimsFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	groups, err := h.groupSvc.ListMyGroups(r.Context(), claims.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, groups)
}

func (h *GroupHandler) GetGroup(w http.ResponseWriter, r *http.Request) {
	group, err := h.groupSvc.GetGroup(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, group)
}

// GetSummary returns the full derived view of a group: balance, progress,
// member totals, pending queue, histories.
func (h *GroupHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.ledgerSvc.GetSummary(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

func (h *GroupHandler) Join(w http.ResponseWriter, r *http.Request) {
	claims, err := ClaimsFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	member, err := h.groupSvc.Join(r.Context(), mux.Vars(r)["id"], ProfileFromClaims(claims))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, member)
}

type setGoalRequest struct {
	Amount string `json:"amount"`
}

func (h *GroupHandler) SetIndividualGoal(w http.ResponseWriter, r *http.Request) {
	claims, err := ClaimsFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	var req setGoalRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	vars := mux.Vars(r)
	if err := h.groupSvc.SetIndividualGoal(r.Context(), vars["id"], vars["userID"], req.Amount, claims.UserID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
