package repository

import (
	"context"

	"juntaai-backend/internal/domain"
	"juntaai-backend/internal/money"
)

type GroupRepository interface {
	Create(ctx context.Context, group *domain.Group) error
	GetByID(ctx context.Context, id string) (*domain.Group, error)
	List(ctx context.Context) ([]domain.Group, error)
	ListByMember(ctx context.Context, userID string) ([]domain.Group, error)
}

type MemberRepository interface {
	Add(ctx context.Context, member *domain.Member) error
	Get(ctx context.Context, groupID, userID string) (*domain.Member, error)
	// ListByGroup returns members with their profiles joined in.
	ListByGroup(ctx context.Context, groupID string) ([]domain.Member, error)
	SetIndividualGoal(ctx context.Context, groupID, userID string, goal money.Cents) error
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	GetByID(ctx context.Context, groupID, paymentID string) (*domain.Payment, error)
	ListByGroup(ctx context.Context, groupID string) ([]domain.Payment, error)
	// UpdateStatusIfPending flips status only while the stored row is still
	// PENDING and reports the number of rows affected, so two racing
	// approvals cannot both win.
	UpdateStatusIfPending(ctx context.Context, paymentID string, status domain.PaymentStatus) (int64, error)
}

type ExpenseRepository interface {
	Create(ctx context.Context, expense *domain.Expense) error
	ListByGroup(ctx context.Context, groupID string) ([]domain.Expense, error)
}

type ProfileRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Profile, error)
	Upsert(ctx context.Context, profile *domain.Profile) error
}
