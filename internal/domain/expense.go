package domain

import "juntaai-backend/internal/money"

// Expense is an owner-recorded outflow. Immutable after creation: no status,
// no edit, no delete.
type Expense struct {
	ID          string      `json:"id"`
	GroupID     string      `json:"group_id"`
	Description string      `json:"description"`
	Amount      money.Cents `json:"amount"`
	ProofURL    string      `json:"proof_url,omitempty"`
	CreatedAt   string      `json:"created_at"`
}
