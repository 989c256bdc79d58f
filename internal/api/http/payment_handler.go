package http

import (
	"fmt"
	"net/http"

	"juntaai-backend/internal/domain"
	"juntaai-backend/internal/service"

	"github.com/gorilla/mux"
)

type PaymentHandler struct {
	paymentSvc service.PaymentService
}

func NewPaymentHandler(paymentSvc service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentSvc: paymentSvc}
}

type reportPaymentRequest struct {
	Amount string `json:"amount"`
}

func (h *PaymentHandler) Report(w http.ResponseWriter, r *http.Request) {
	claims, err := ClaimsFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	var req reportPaymentRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	payment, err := h.paymentSvc.Report(r.Context(), mux.Vars(r)["id"], claims.UserID, req.Amount)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, payment)
}

type decideRequest struct {
	Status string `json:"status"` // CONFIRMED or REJECTED
}

func (h *PaymentHandler) Decide(w http.ResponseWriter, r *http.Request) {
	claims, err := ClaimsFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	var req decideRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	target := domain.PaymentStatus(req.Status)
	if !target.Terminal() {
		respondError(w, fmt.Errorf("%w: status must be CONFIRMED or REJECTED", domain.ErrValidation))
		return
	}
	vars := mux.Vars(r)
	payment, err := h.paymentSvc.Decide(r.Context(), vars["id"], vars["paymentID"], target, claims.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, payment)
}
