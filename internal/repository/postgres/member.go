package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"juntaai-backend/internal/domain"
	"juntaai-backend/internal/money"
	"juntaai-backend/internal/repository"

	"github.com/lib/pq"
)

type memberRepository struct {
	db *sql.DB
}

func NewMemberRepository(db *sql.DB) repository.MemberRepository {
	return &memberRepository{db: db}
}

func (r *memberRepository) Add(ctx context.Context, member *domain.Member) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin add member: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO group_members (group_id, user_id, individual_goal_cents, created_at)
	          VALUES ($1, $2, $3, $4)`
	now := time.Now().UTC()
	if _, err := tx.ExecContext(ctx, query, member.GroupID, member.UserID, member.IndividualGoal, now); err != nil {
		var pqErr *pq.Error
		// 23505 unique_violation: one Member row per (group, user) pair.
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return domain.ErrAlreadyMember
		}
		return fmt.Errorf("insert member: %w", err)
	}
	if err := notifyGroupChange(ctx, tx, member.GroupID, "group_members"); err != nil {
		return fmt.Errorf("notify member change: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit add member: %w", err)
	}
	member.CreatedAt = formatTime(now)
	return nil
}

func (r *memberRepository) Get(ctx context.Context, groupID, userID string) (*domain.Member, error) {
	query := `SELECT group_id, user_id, individual_goal_cents, created_at
	          FROM group_members WHERE group_id = $1 AND user_id = $2`
	var m domain.Member
	var createdAt time.Time
	err := r.db.QueryRowContext(ctx, query, groupID, userID).Scan(&m.GroupID, &m.UserID, &m.IndividualGoal, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get member: %w", err)
	}
	m.CreatedAt = formatTime(createdAt)
	return &m, nil
}

func (r *memberRepository) ListByGroup(ctx context.Context, groupID string) ([]domain.Member, error) {
	query := `SELECT m.group_id, m.user_id, m.individual_goal_cents, m.created_at,
	                 p.full_name, COALESCE(p.phone, ''), COALESCE(p.email, ''), COALESCE(p.avatar_url, '')
	          FROM group_members m
	          JOIN profiles p ON p.id = m.user_id
	          WHERE m.group_id = $1
	          ORDER BY m.created_at ASC`
	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()

	var members []domain.Member
	for rows.Next() {
		var m domain.Member
		var p domain.Profile
		var createdAt time.Time
		if err := rows.Scan(&m.GroupID, &m.UserID, &m.IndividualGoal, &createdAt,
			&p.FullName, &p.Phone, &p.Email, &p.AvatarURL); err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		m.CreatedAt = formatTime(createdAt)
		p.ID = m.UserID
		m.Profile = &p
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *memberRepository) SetIndividualGoal(ctx context.Context, groupID, userID string, goal money.Cents) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin set goal: %w", err)
	}
	defer tx.Rollback()

	query := `UPDATE group_members SET individual_goal_cents = $1 WHERE group_id = $2 AND user_id = $3`
	res, err := tx.ExecContext(ctx, query, goal, groupID, userID)
	if err != nil {
		return fmt.Errorf("update goal: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update goal result: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	if err := notifyGroupChange(ctx, tx, groupID, "group_members"); err != nil {
		return fmt.Errorf("notify goal change: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit set goal: %w", err)
	}
	return nil
}
