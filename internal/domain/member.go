package domain

import "juntaai-backend/internal/money"

// Member associates a Profile with a Group. The only mutable field is
// IndividualGoal; zero means the member has not set a personal goal.
type Member struct {
	GroupID        string      `json:"group_id"`
	UserID         string      `json:"user_id"`
	IndividualGoal money.Cents `json:"individual_goal"`
	CreatedAt      string      `json:"created_at"`
	Profile        *Profile    `json:"profile,omitempty"` // populated on group reads
}
