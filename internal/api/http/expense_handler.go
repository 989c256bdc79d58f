package http

import (
	"net/http"

	"juntaai-backend/internal/service"

	"github.com/gorilla/mux"
)

type ExpenseHandler struct {
	expenseSvc service.ExpenseService
}

func NewExpenseHandler(expenseSvc service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseSvc: expenseSvc}
}

type presignRequest struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
}

// PresignUpload hands the owner a signed PUT URL for a receipt. The client
// uploads the bytes itself and then submits the expense with the public URL.
func (h *ExpenseHandler) PresignUpload(w http.ResponseWriter, r *http.Request) {
	claims, err := ClaimsFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	var req presignRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	target, err := h.expenseSvc.PresignReceiptUpload(r.Context(), mux.Vars(r)["id"], claims.UserID, req.Filename, req.ContentType)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, target)
}

type addExpenseRequest struct {
	Description string `json:"description"`
	Amount      string `json:"amount"`
	ProofURL    string `json:"proof_url"`
}

func (h *ExpenseHandler) Add(w http.ResponseWriter, r *http.Request) {
	claims, err := ClaimsFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	var req addExpenseRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	expense, err := h.expenseSvc.Add(r.Context(), mux.Vars(r)["id"], claims.UserID, req.Description, req.Amount, req.ProofURL)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, expense)
}
