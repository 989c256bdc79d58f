package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"juntaai-backend/internal/domain"
	"juntaai-backend/internal/logger"
	"juntaai-backend/internal/money"
	"juntaai-backend/internal/repository"

	"github.com/google/uuid"
)

type groupService struct {
	groupRepo   repository.GroupRepository
	memberRepo  repository.MemberRepository
	profileRepo repository.ProfileRepository
}

func NewGroupService(
	groupRepo repository.GroupRepository,
	memberRepo repository.MemberRepository,
	profileRepo repository.ProfileRepository,
) GroupService {
	return &groupService{
		groupRepo:   groupRepo,
		memberRepo:  memberRepo,
		profileRepo: profileRepo,
	}
}

func (s *groupService) CreateGroup(ctx context.Context, owner *domain.Profile, name, goalAmount string, category domain.GroupCategory, pixKey string) (*domain.Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: group name must not be empty", domain.ErrValidation)
	}
	goal, err := money.ParsePositiveCents(goalAmount)
	if err != nil {
		return nil, fmt.Errorf("%w: total goal %q", domain.ErrInvalidAmount, goalAmount)
	}
	if category == "" {
		category = domain.GroupCategoryGeneral
	}
	if !domain.ValidCategory(category) {
		return nil, fmt.Errorf("%w: unknown category %q", domain.ErrValidation, category)
	}

	if err := s.profileRepo.Upsert(ctx, owner); err != nil {
		return nil, err
	}

	group := &domain.Group{
		ID:        uuid.NewString(),
		Name:      name,
		Category:  category,
		TotalGoal: goal,
		PixKey:    strings.TrimSpace(pixKey),
		OwnerID:   owner.ID,
	}
	if err := s.groupRepo.Create(ctx, group); err != nil {
		return nil, err
	}

	// Owner enrollment is the second half of the logical create. If it
	// fails the group row already exists; surface that as a distinct
	// partial failure so the caller retries enrollment, not creation.
	member := &domain.Member{GroupID: group.ID, UserID: owner.ID}
	if err := s.memberRepo.Add(ctx, member); err != nil && !errors.Is(err, domain.ErrAlreadyMember) {
		logger.Error("owner enrollment failed after group insert", "group_id", group.ID, "owner_id", owner.ID, "error", err)
		return group, &domain.OwnerEnrollmentError{GroupID: group.ID, Err: err}
	}

	return group, nil
}

func (s *groupService) GetGroup(ctx context.Context, id string) (*domain.Group, error) {
	return s.groupRepo.GetByID(ctx, id)
}

func (s *groupService) ListGroups(ctx context.Context) ([]domain.Group, error) {
	return s.groupRepo.List(ctx)
}

func (s *groupService) ListMyGroups(ctx context.Context, userID string) ([]domain.Group, error) {
	return s.groupRepo.ListByMember(ctx, userID)
}

func (s *groupService) Join(ctx context.Context, groupID string, actor *domain.Profile) (*domain.Member, error) {
	if _, err := s.groupRepo.GetByID(ctx, groupID); err != nil {
		return nil, err
	}
	if err := s.profileRepo.Upsert(ctx, actor); err != nil {
		return nil, err
	}

	// Duplicate joins are rejected, not deduplicated: downstream
	// aggregates assume at most one member row per (group, user) pair.
	if _, err := s.memberRepo.Get(ctx, groupID, actor.ID); err == nil {
		return nil, domain.ErrAlreadyMember
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	member := &domain.Member{GroupID: groupID, UserID: actor.ID}
	if err := s.memberRepo.Add(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

func (s *groupService) SetIndividualGoal(ctx context.Context, groupID, memberUserID, amount, actorID string) error {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return err
	}
	if !group.IsOwner(actorID) {
		return fmt.Errorf("%w: only the group owner may set individual goals", domain.ErrUnauthorized)
	}
	goal, err := money.ParseCents(amount)
	if err != nil {
		return fmt.Errorf("%w: individual goal %q", domain.ErrInvalidAmount, amount)
	}
	return s.memberRepo.SetIndividualGoal(ctx, groupID, memberUserID, goal)
}
