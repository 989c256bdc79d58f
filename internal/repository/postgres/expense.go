package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"juntaai-backend/internal/domain"
	"juntaai-backend/internal/repository"
)

type expenseRepository struct {
	db *sql.DB
}

func NewExpenseRepository(db *sql.DB) repository.ExpenseRepository {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) Create(ctx context.Context, expense *domain.Expense) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin add expense: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO expenses (id, group_id, description, amount_cents, proof_url, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`
	now := time.Now().UTC()
	var proof sql.NullString
	if expense.ProofURL != "" {
		proof = sql.NullString{String: expense.ProofURL, Valid: true}
	}
	if _, err := tx.ExecContext(ctx, query, expense.ID, expense.GroupID, expense.Description, expense.Amount, proof, now); err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	if err := notifyGroupChange(ctx, tx, expense.GroupID, "expenses"); err != nil {
		return fmt.Errorf("notify expense change: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit add expense: %w", err)
	}
	expense.CreatedAt = formatTime(now)
	return nil
}

func (r *expenseRepository) ListByGroup(ctx context.Context, groupID string) ([]domain.Expense, error) {
	query := `SELECT id, group_id, description, amount_cents, COALESCE(proof_url, ''), created_at
	          FROM expenses WHERE group_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []domain.Expense
	for rows.Next() {
		var e domain.Expense
		var createdAt time.Time
		if err := rows.Scan(&e.ID, &e.GroupID, &e.Description, &e.Amount, &e.ProofURL, &createdAt); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		e.CreatedAt = formatTime(createdAt)
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}
