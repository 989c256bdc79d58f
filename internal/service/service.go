package service

import (
	"context"

	"juntaai-backend/internal/domain"
	"juntaai-backend/internal/ledger"
	"juntaai-backend/internal/storage"
)

type GroupService interface {
	// CreateGroup validates inputs, inserts the group, then enrolls the
	// owner as its first member in the same logical operation.
	CreateGroup(ctx context.Context, owner *domain.Profile, name, goalAmount string, category domain.GroupCategory, pixKey string) (*domain.Group, error)
	GetGroup(ctx context.Context, id string) (*domain.Group, error)
	ListGroups(ctx context.Context) ([]domain.Group, error)
	ListMyGroups(ctx context.Context, userID string) ([]domain.Group, error)
	Join(ctx context.Context, groupID string, actor *domain.Profile) (*domain.Member, error)
	SetIndividualGoal(ctx context.Context, groupID, memberUserID, amount, actorID string) error
}

type PaymentService interface {
	Report(ctx context.Context, groupID, userID, amount string) (*domain.Payment, error)
	// Decide runs the approval state machine: owner-only, PENDING-only,
	// compare-and-swap at the store.
	Decide(ctx context.Context, groupID, paymentID string, target domain.PaymentStatus, actorID string) (*domain.Payment, error)
}

type ExpenseService interface {
	PresignReceiptUpload(ctx context.Context, groupID, actorID, filename, contentType string) (*storage.UploadTarget, error)
	Add(ctx context.Context, groupID, actorID, description, amount, proofURL string) (*domain.Expense, error)
}

type LedgerService interface {
	// LoadSnapshot performs the four group reads. Any failed read fails the
	// snapshot; a partial snapshot is never returned.
	LoadSnapshot(ctx context.Context, groupID string) (*ledger.Snapshot, error)
	GetSummary(ctx context.Context, groupID string) (*ledger.Summary, error)
}

type ProfileService interface {
	Get(ctx context.Context, id string) (*domain.Profile, error)
	Update(ctx context.Context, id, fullName, phone, avatarURL string) (*domain.Profile, error)
	// Ensure mirrors a token's identity into the profiles table.
	Ensure(ctx context.Context, profile *domain.Profile) error
}

type EmailService interface {
	SendPaymentReported(ctx context.Context, ownerEmail, ownerName, reporterName, groupName, amount string) error
	SendPaymentDecision(ctx context.Context, reporterEmail, reporterName, groupName, amount string, confirmed bool) error
	SendPendingReminder(ctx context.Context, ownerEmail, ownerName, groupName string, pendingCount int) error
}
