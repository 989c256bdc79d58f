package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"juntaai-backend/internal/domain"
	"juntaai-backend/internal/repository"
)

type profileRepository struct {
	db *sql.DB
}

func NewProfileRepository(db *sql.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	query := `SELECT id, full_name, COALESCE(phone, ''), COALESCE(email, ''), COALESCE(avatar_url, '')
	          FROM profiles WHERE id = $1`
	var p domain.Profile
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.FullName, &p.Phone, &p.Email, &p.AvatarURL)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &p, nil
}

// Upsert mirrors the identity provider's profile record. Email is written
// once on first sight; the full name follows the latest write. Blank phone
// and avatar never overwrite a stored value: callers mirroring token claims
// carry only name and email.
func (r *profileRepository) Upsert(ctx context.Context, profile *domain.Profile) error {
	query := `INSERT INTO profiles (id, full_name, phone, email, avatar_url)
	          VALUES ($1, $2, $3, $4, $5)
	          ON CONFLICT (id) DO UPDATE
	          SET full_name = EXCLUDED.full_name,
	              phone = COALESCE(NULLIF(EXCLUDED.phone, ''), profiles.phone),
	              avatar_url = COALESCE(NULLIF(EXCLUDED.avatar_url, ''), profiles.avatar_url)`
	_, err := r.db.ExecContext(ctx, query, profile.ID, profile.FullName, profile.Phone, profile.Email, profile.AvatarURL)
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}
