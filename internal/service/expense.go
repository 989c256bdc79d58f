package service

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"juntaai-backend/internal/domain"
	"juntaai-backend/internal/money"
	"juntaai-backend/internal/repository"
	"juntaai-backend/internal/storage"

	"github.com/google/uuid"
)

type expenseService struct {
	expenseRepo  repository.ExpenseRepository
	groupRepo    repository.GroupRepository
	store        storage.Storage
	allowedTypes []string
}

func NewExpenseService(
	expenseRepo repository.ExpenseRepository,
	groupRepo repository.GroupRepository,
	store storage.Storage,
	allowedTypes []string,
) ExpenseService {
	return &expenseService{
		expenseRepo:  expenseRepo,
		groupRepo:    groupRepo,
		store:        store,
		allowedTypes: allowedTypes,
	}
}

// PresignReceiptUpload is step one of the upload pipeline: sign, then the
// client PUTs the bytes, then Add references the public URL. A failure after
// the PUT orphans the object; the sweep job reclaims it later.
func (s *expenseService) PresignReceiptUpload(ctx context.Context, groupID, actorID, filename, contentType string) (*storage.UploadTarget, error) {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.IsOwner(actorID) {
		return nil, fmt.Errorf("%w: only the group owner may upload receipts", domain.ErrUnauthorized)
	}
	if !s.typeAllowed(contentType) {
		return nil, fmt.Errorf("%w: content type %q not allowed", domain.ErrValidation, contentType)
	}

	ext := strings.ToLower(path.Ext(filename))
	if ext == "" {
		ext = ".bin"
	}
	objectKey := fmt.Sprintf("receipts/%s/%d%s", groupID, time.Now().UnixNano(), ext)

	target, err := s.store.RequestUploadTarget(ctx, objectKey, contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: presign upload: %v", domain.ErrUpstreamUnavailable, err)
	}
	return target, nil
}

func (s *expenseService) Add(ctx context.Context, groupID, actorID, description, amount, proofURL string) (*domain.Expense, error) {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.IsOwner(actorID) {
		return nil, fmt.Errorf("%w: only the group owner may register expenses", domain.ErrUnauthorized)
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, fmt.Errorf("%w: expense description must not be empty", domain.ErrValidation)
	}
	cents, err := money.ParsePositiveCents(amount)
	if err != nil {
		return nil, fmt.Errorf("%w: expense amount %q", domain.ErrInvalidAmount, amount)
	}

	expense := &domain.Expense{
		ID:          uuid.NewString(),
		GroupID:     groupID,
		Description: description,
		Amount:      cents,
		ProofURL:    strings.TrimSpace(proofURL),
	}
	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

func (s *expenseService) typeAllowed(contentType string) bool {
	if len(s.allowedTypes) == 0 {
		return strings.HasPrefix(contentType, "image/") || contentType == "application/pdf"
	}
	for _, t := range s.allowedTypes {
		if strings.EqualFold(t, contentType) {
			return true
		}
	}
	return false
}
