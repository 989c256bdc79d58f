package service

import (
	"context"
	"errors"
	"fmt"

	"juntaai-backend/internal/domain"
	"juntaai-backend/internal/logger"
	"juntaai-backend/internal/money"
	"juntaai-backend/internal/repository"

	"github.com/google/uuid"
)

type paymentService struct {
	paymentRepo repository.PaymentRepository
	groupRepo   repository.GroupRepository
	memberRepo  repository.MemberRepository
	profileRepo repository.ProfileRepository
	emailSvc    EmailService
}

func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	groupRepo repository.GroupRepository,
	memberRepo repository.MemberRepository,
	profileRepo repository.ProfileRepository,
	emailSvc EmailService,
) PaymentService {
	return &paymentService{
		paymentRepo: paymentRepo,
		groupRepo:   groupRepo,
		memberRepo:  memberRepo,
		profileRepo: profileRepo,
		emailSvc:    emailSvc,
	}
}

// Report creates a PENDING payment for a member. Submitting the same amount
// twice creates two rows; there is no idempotency key on reporting.
func (s *paymentService) Report(ctx context.Context, groupID, userID, amount string) (*domain.Payment, error) {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if _, err := s.memberRepo.Get(ctx, groupID, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: only members may report payments", domain.ErrUnauthorized)
		}
		return nil, err
	}
	cents, err := money.ParsePositiveCents(amount)
	if err != nil {
		return nil, fmt.Errorf("%w: payment amount %q", domain.ErrInvalidAmount, amount)
	}

	payment := &domain.Payment{
		ID:      uuid.NewString(),
		GroupID: groupID,
		UserID:  userID,
		Amount:  cents,
		Status:  domain.PaymentStatusPending,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	s.notifyOwner(ctx, group, payment)
	return payment, nil
}

func (s *paymentService) Decide(ctx context.Context, groupID, paymentID string, target domain.PaymentStatus, actorID string) (*domain.Payment, error) {
	if !target.Terminal() {
		return nil, fmt.Errorf("%w: target status %q", domain.ErrValidation, target)
	}

	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	payment, err := s.paymentRepo.GetByID(ctx, groupID, paymentID)
	if err != nil {
		return nil, err
	}
	// Ownership is re-derived from owner_id on every decision, never cached.
	if !group.IsOwner(actorID) {
		return nil, fmt.Errorf("%w: only the group owner may decide payments", domain.ErrUnauthorized)
	}
	if payment.Status != domain.PaymentStatusPending {
		return nil, fmt.Errorf("%w: payment is %s", domain.ErrInvalidTransition, payment.Status)
	}

	affected, err := s.paymentRepo.UpdateStatusIfPending(ctx, paymentID, target)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		// Someone else decided it between our read and the write.
		return nil, fmt.Errorf("%w: payment already decided", domain.ErrInvalidTransition)
	}

	payment.Status = target
	s.notifyReporter(ctx, group, payment)
	return payment, nil
}

// Notification failures never fail the command; the ledger state is already
// committed by the time email is attempted.
func (s *paymentService) notifyOwner(ctx context.Context, group *domain.Group, payment *domain.Payment) {
	owner, err := s.profileRepo.GetByID(ctx, group.OwnerID)
	if err != nil || owner.Email == "" {
		return
	}
	reporterName := ""
	if reporter, err := s.profileRepo.GetByID(ctx, payment.UserID); err == nil {
		reporterName = reporter.FullName
	}
	if err := s.emailSvc.SendPaymentReported(ctx, owner.Email, owner.FullName, reporterName, group.Name, payment.Amount.String()); err != nil {
		logger.Warn("payment reported email failed", "group_id", group.ID, "error", err)
	}
}

func (s *paymentService) notifyReporter(ctx context.Context, group *domain.Group, payment *domain.Payment) {
	reporter, err := s.profileRepo.GetByID(ctx, payment.UserID)
	if err != nil || reporter.Email == "" {
		return
	}
	confirmed := payment.Status == domain.PaymentStatusConfirmed
	if err := s.emailSvc.SendPaymentDecision(ctx, reporter.Email, reporter.FullName, group.Name, payment.Amount.String(), confirmed); err != nil {
		logger.Warn("payment decision email failed", "group_id", group.ID, "error", err)
	}
}
