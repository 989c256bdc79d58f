package service

import (
	"context"
	"fmt"
	"strings"

	"juntaai-backend/internal/domain"
	"juntaai-backend/internal/repository"
)

type profileService struct {
	profileRepo repository.ProfileRepository
}

func NewProfileService(profileRepo repository.ProfileRepository) ProfileService {
	return &profileService{profileRepo: profileRepo}
}

func (s *profileService) Get(ctx context.Context, id string) (*domain.Profile, error) {
	return s.profileRepo.GetByID(ctx, id)
}

func (s *profileService) Update(ctx context.Context, id, fullName, phone, avatarURL string) (*domain.Profile, error) {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return nil, fmt.Errorf("%w: full name must not be empty", domain.ErrValidation)
	}
	current, err := s.profileRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	current.FullName = fullName
	// Blank fields mean "leave as is", matching the store's upsert.
	if phone = strings.TrimSpace(phone); phone != "" {
		current.Phone = phone
	}
	if avatarURL != "" {
		current.AvatarURL = avatarURL
	}
	if err := s.profileRepo.Upsert(ctx, current); err != nil {
		return nil, err
	}
	return current, nil
}

func (s *profileService) Ensure(ctx context.Context, profile *domain.Profile) error {
	return s.profileRepo.Upsert(ctx, profile)
}
