package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"juntaai-backend/internal/domain"
	"juntaai-backend/internal/repository"
)

type groupRepository struct {
	db *sql.DB
}

func NewGroupRepository(db *sql.DB) repository.GroupRepository {
	return &groupRepository{db: db}
}

func (r *groupRepository) Create(ctx context.Context, group *domain.Group) error {
	query := `INSERT INTO groups (id, name, category, total_goal_cents, pix_key, owner_id, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, query, group.ID, group.Name, group.Category, group.TotalGoal, group.PixKey, group.OwnerID, now)
	if err != nil {
		return fmt.Errorf("insert group: %w", err)
	}
	group.CreatedAt = formatTime(now)
	return nil
}

func (r *groupRepository) GetByID(ctx context.Context, id string) (*domain.Group, error) {
	query := `SELECT id, name, category, total_goal_cents, COALESCE(pix_key, ''), owner_id, created_at
	          FROM groups WHERE id = $1`
	var g domain.Group
	var createdAt time.Time
	err := r.db.QueryRowContext(ctx, query, id).Scan(&g.ID, &g.Name, &g.Category, &g.TotalGoal, &g.PixKey, &g.OwnerID, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get group: %w", err)
	}
	g.CreatedAt = formatTime(createdAt)
	return &g, nil
}

func (r *groupRepository) List(ctx context.Context) ([]domain.Group, error) {
	query := `SELECT id, name, category, total_goal_cents, COALESCE(pix_key, ''), owner_id, created_at
	          FROM groups ORDER BY created_at DESC`
	return r.scanGroups(ctx, query)
}

func (r *groupRepository) ListByMember(ctx context.Context, userID string) ([]domain.Group, error) {
	query := `SELECT g.id, g.name, g.category, g.total_goal_cents, COALESCE(g.pix_key, ''), g.owner_id, g.created_at
	          FROM groups g
	          JOIN group_members m ON m.group_id = g.id
	          WHERE m.user_id = $1
	          ORDER BY g.created_at DESC`
	return r.scanGroups(ctx, query, userID)
}

func (r *groupRepository) scanGroups(ctx context.Context, query string, args ...any) ([]domain.Group, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	defer rows.Close()

	var groups []domain.Group
	for rows.Next() {
		var g domain.Group
		var createdAt time.Time
		if err := rows.Scan(&g.ID, &g.Name, &g.Category, &g.TotalGoal, &g.PixKey, &g.OwnerID, &createdAt); err != nil {
			return nil, fmt.Errorf("scan group: %w", err)
		}
		g.CreatedAt = formatTime(createdAt)
		groups = append(groups, g)
	}
	return groups, rows.Err()
}
