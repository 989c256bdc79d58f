package domain

import "juntaai-backend/internal/money"

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusConfirmed PaymentStatus = "CONFIRMED"
	PaymentStatusRejected  PaymentStatus = "REJECTED"
)

// Terminal reports whether s is a final approval state. CONFIRMED and
// REJECTED admit no further transition.
func (s PaymentStatus) Terminal() bool {
	return s == PaymentStatusConfirmed || s == PaymentStatusRejected
}

type Payment struct {
	ID        string        `json:"id"`
	GroupID   string        `json:"group_id"`
	UserID    string        `json:"user_id"`
	Amount    money.Cents   `json:"amount"`
	Status    PaymentStatus `json:"status"`
	CreatedAt string        `json:"created_at"`
	Reporter  *Profile      `json:"reporter,omitempty"` // populated on group reads
}
