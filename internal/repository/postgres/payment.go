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

type paymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) repository.PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin report payment: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO payments (id, group_id, user_id, amount_cents, status, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`
	now := time.Now().UTC()
	if _, err := tx.ExecContext(ctx, query, payment.ID, payment.GroupID, payment.UserID, payment.Amount, payment.Status, now); err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	if err := notifyGroupChange(ctx, tx, payment.GroupID, "payments"); err != nil {
		return fmt.Errorf("notify payment change: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit report payment: %w", err)
	}
	payment.CreatedAt = formatTime(now)
	return nil
}

func (r *paymentRepository) GetByID(ctx context.Context, groupID, paymentID string) (*domain.Payment, error) {
	query := `SELECT id, group_id, user_id, amount_cents, status, created_at
	          FROM payments WHERE id = $1 AND group_id = $2`
	var p domain.Payment
	var createdAt time.Time
	err := r.db.QueryRowContext(ctx, query, paymentID, groupID).Scan(&p.ID, &p.GroupID, &p.UserID, &p.Amount, &p.Status, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get payment: %w", err)
	}
	p.CreatedAt = formatTime(createdAt)
	return &p, nil
}

func (r *paymentRepository) ListByGroup(ctx context.Context, groupID string) ([]domain.Payment, error) {
	query := `SELECT pay.id, pay.group_id, pay.user_id, pay.amount_cents, pay.status, pay.created_at,
	                 pr.full_name, COALESCE(pr.avatar_url, '')
	          FROM payments pay
	          JOIN profiles pr ON pr.id = pay.user_id
	          WHERE pay.group_id = $1
	          ORDER BY pay.created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		var p domain.Payment
		var reporter domain.Profile
		var createdAt time.Time
		if err := rows.Scan(&p.ID, &p.GroupID, &p.UserID, &p.Amount, &p.Status, &createdAt,
			&reporter.FullName, &reporter.AvatarURL); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		p.CreatedAt = formatTime(createdAt)
		reporter.ID = p.UserID
		p.Reporter = &reporter
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// UpdateStatusIfPending is the compare-and-swap guard of the approval state
// machine. The WHERE clause carries the expected prior state; a zero row
// count means someone else already decided the payment.
func (r *paymentRepository) UpdateStatusIfPending(ctx context.Context, paymentID string, status domain.PaymentStatus) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin decide payment: %w", err)
	}
	defer tx.Rollback()

	query := `UPDATE payments SET status = $1 WHERE id = $2 AND status = 'PENDING' RETURNING group_id`
	var groupID string
	err = tx.QueryRowContext(ctx, query, status, paymentID).Scan(&groupID)
	if errors.Is(err, sql.ErrNoRows) {
		// Lost the race or already terminal; nothing changed, nothing to notify.
		return 0, tx.Commit()
	}
	if err != nil {
		return 0, fmt.Errorf("update payment status: %w", err)
	}
	if err := notifyGroupChange(ctx, tx, groupID, "payments"); err != nil {
		return 0, fmt.Errorf("notify payment change: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit decide payment: %w", err)
	}
	return 1, nil
}
