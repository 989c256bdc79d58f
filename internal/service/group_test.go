package service

import (
	"context"
	"errors"
	"testing"

	"juntaai-backend/internal/domain"
	"juntaai-backend/internal/money"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// TestGroupService_CreateGroup verifies group creation plus owner enrollment.
// Goal: verify that:
// 1. Valid input produces a group with the parsed goal and the owner enrolled.
// 2. Invalid name, goal or category are rejected before any write.
// 3. A failed owner enrollment after the group insert surfaces the partial
//    failure together with the already-created group.
func TestGroupService_CreateGroup(t *testing.T) {
	ctx := context.Background()
	owner := &domain.Profile{ID: "owner-1", FullName: "Ana", Email: "ana@example.com"}

	t.Run("Success", func(t *testing.T) {
		groupRepo := new(MockGroupRepo)
		memberRepo := new(MockMemberRepo)
		profileRepo := new(MockProfileRepo)
		svc := NewGroupService(groupRepo, memberRepo, profileRepo)

		profileRepo.On("Upsert", ctx, owner).Return(nil).Once()
		groupRepo.On("Create", ctx, mock.AnythingOfType("*domain.Group")).Return(nil).Once()
		memberRepo.On("Add", ctx, mock.AnythingOfType("*domain.Member")).Return(nil).Once()

		group, err := svc.CreateGroup(ctx, owner, "  Trip Fund  ", "1000.00", "", "pix@example.com")
		assert.NoError(t, err)
		assert.Equal(t, "Trip Fund", group.Name)
		assert.Equal(t, money.Cents(100000), group.TotalGoal)
		assert.Equal(t, domain.GroupCategoryGeneral, group.Category)
		assert.Equal(t, "owner-1", group.OwnerID)
		assert.NotEmpty(t, group.ID)
		groupRepo.AssertExpectations(t)
		memberRepo.AssertExpectations(t)
		profileRepo.AssertExpectations(t)
	})

	t.Run("Error_EmptyName", func(t *testing.T) {
		svc := NewGroupService(new(MockGroupRepo), new(MockMemberRepo), new(MockProfileRepo))
		_, err := svc.CreateGroup(ctx, owner, "   ", "1000.00", domain.GroupCategoryTravel, "")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("Error_InvalidGoal", func(t *testing.T) {
		svc := NewGroupService(new(MockGroupRepo), new(MockMemberRepo), new(MockProfileRepo))
		for _, amount := range []string{"0", "-10", "abc", ""} {
			_, err := svc.CreateGroup(ctx, owner, "Trip", amount, domain.GroupCategoryTravel, "")
			assert.ErrorIs(t, err, domain.ErrInvalidAmount, "amount %q", amount)
		}
	})

	t.Run("Error_UnknownCategory", func(t *testing.T) {
		svc := NewGroupService(new(MockGroupRepo), new(MockMemberRepo), new(MockProfileRepo))
		_, err := svc.CreateGroup(ctx, owner, "Trip", "1000.00", "yachts", "")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("Error_OwnerEnrollmentFailed", func(t *testing.T) {
		groupRepo := new(MockGroupRepo)
		memberRepo := new(MockMemberRepo)
		profileRepo := new(MockProfileRepo)
		svc := NewGroupService(groupRepo, memberRepo, profileRepo)

		profileRepo.On("Upsert", ctx, owner).Return(nil).Once()
		groupRepo.On("Create", ctx, mock.AnythingOfType("*domain.Group")).Return(nil).Once()
		memberRepo.On("Add", ctx, mock.AnythingOfType("*domain.Member")).Return(errors.New("db down")).Once()

		group, err := svc.CreateGroup(ctx, owner, "Trip", "1000.00", domain.GroupCategoryTravel, "")
		assert.ErrorIs(t, err, domain.ErrOwnerEnrollmentFailed)
		// The group row exists at this point; callers get it back so they
		// can retry enrollment instead of creating a duplicate group.
		assert.NotNil(t, group)
		var enrollErr *domain.OwnerEnrollmentError
		assert.ErrorAs(t, err, &enrollErr)
		assert.Equal(t, group.ID, enrollErr.GroupID)
		memberRepo.AssertExpectations(t)
	})
}

// TestGroupService_Join verifies membership enrollment.
// Goal: verify that duplicate joins are rejected with the typed error and
// that joining an unknown group fails with not-found.
func TestGroupService_Join(t *testing.T) {
	ctx := context.Background()
	group := &domain.Group{ID: "g1", Name: "Trip", OwnerID: "owner-1"}
	actor := &domain.Profile{ID: "u2", FullName: "Bruno"}

	t.Run("Success", func(t *testing.T) {
		groupRepo := new(MockGroupRepo)
		memberRepo := new(MockMemberRepo)
		profileRepo := new(MockProfileRepo)
		svc := NewGroupService(groupRepo, memberRepo, profileRepo)

		groupRepo.On("GetByID", ctx, "g1").Return(group, nil).Once()
		profileRepo.On("Upsert", ctx, actor).Return(nil).Once()
		memberRepo.On("Get", ctx, "g1", "u2").Return(nil, domain.ErrNotFound).Once()
		memberRepo.On("Add", ctx, mock.AnythingOfType("*domain.Member")).Return(nil).Once()

		member, err := svc.Join(ctx, "g1", actor)
		assert.NoError(t, err)
		assert.Equal(t, "g1", member.GroupID)
		assert.Equal(t, "u2", member.UserID)
		memberRepo.AssertExpectations(t)
	})

	t.Run("Error_AlreadyMember", func(t *testing.T) {
		groupRepo := new(MockGroupRepo)
		memberRepo := new(MockMemberRepo)
		profileRepo := new(MockProfileRepo)
		svc := NewGroupService(groupRepo, memberRepo, profileRepo)

		groupRepo.On("GetByID", ctx, "g1").Return(group, nil).Once()
		profileRepo.On("Upsert", ctx, actor).Return(nil).Once()
		memberRepo.On("Get", ctx, "g1", "u2").
			Return(&domain.Member{GroupID: "g1", UserID: "u2"}, nil).Once()

		_, err := svc.Join(ctx, "g1", actor)
		assert.ErrorIs(t, err, domain.ErrAlreadyMember)
		memberRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	})

	t.Run("Error_GroupNotFound", func(t *testing.T) {
		groupRepo := new(MockGroupRepo)
		svc := NewGroupService(groupRepo, new(MockMemberRepo), new(MockProfileRepo))

		groupRepo.On("GetByID", ctx, "missing").Return(nil, domain.ErrNotFound).Once()

		_, err := svc.Join(ctx, "missing", actor)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

// TestGroupService_SetIndividualGoal verifies the owner-only goal update.
func TestGroupService_SetIndividualGoal(t *testing.T) {
	ctx := context.Background()
	group := &domain.Group{ID: "g1", OwnerID: "owner-1"}

	t.Run("Success", func(t *testing.T) {
		groupRepo := new(MockGroupRepo)
		memberRepo := new(MockMemberRepo)
		svc := NewGroupService(groupRepo, memberRepo, new(MockProfileRepo))

		groupRepo.On("GetByID", ctx, "g1").Return(group, nil).Once()
		memberRepo.On("SetIndividualGoal", ctx, "g1", "u2", money.Cents(25000)).Return(nil).Once()

		err := svc.SetIndividualGoal(ctx, "g1", "u2", "250.00", "owner-1")
		assert.NoError(t, err)
		memberRepo.AssertExpectations(t)
	})

	t.Run("Success_ZeroClearsGoal", func(t *testing.T) {
		groupRepo := new(MockGroupRepo)
		memberRepo := new(MockMemberRepo)
		svc := NewGroupService(groupRepo, memberRepo, new(MockProfileRepo))

		groupRepo.On("GetByID", ctx, "g1").Return(group, nil).Once()
		memberRepo.On("SetIndividualGoal", ctx, "g1", "u2", money.Cents(0)).Return(nil).Once()

		err := svc.SetIndividualGoal(ctx, "g1", "u2", "0", "owner-1")
		assert.NoError(t, err)
	})

	t.Run("Error_NotOwner", func(t *testing.T) {
		groupRepo := new(MockGroupRepo)
		memberRepo := new(MockMemberRepo)
		svc := NewGroupService(groupRepo, memberRepo, new(MockProfileRepo))

		groupRepo.On("GetByID", ctx, "g1").Return(group, nil).Once()

		err := svc.SetIndividualGoal(ctx, "g1", "u2", "250.00", "u2")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
		memberRepo.AssertNotCalled(t, "SetIndividualGoal", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
