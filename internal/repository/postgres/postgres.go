package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"juntaai-backend/internal/repository"

	_ "github.com/lib/pq"
)

// timeFormat is fixed width so timestamp strings sort the same way the
// instants do. RFC3339Nano drops trailing fractional zeros, which breaks
// lexical ordering within a second.
const timeFormat = "2006-01-02T15:04:05.000000000Z"

// formatTime renders a timestamp in timeFormat. Always UTC; the layout's
// literal Z would otherwise mislabel local wall-clock time.
func formatTime(t time.Time) string {
	return t.UTC().Format(timeFormat)
}

// changeChannel is the LISTEN/NOTIFY channel carrying row-change events for
// the realtime synchronizer. Payloads are changeEvent JSON.
const changeChannel = "group_changes"

type changeEvent struct {
	GroupID string `json:"group_id"`
	Table   string `json:"table"`
}

type Store struct {
	db *sql.DB
	repository.GroupRepository
	repository.MemberRepository
	repository.PaymentRepository
	repository.ExpenseRepository
	repository.ProfileRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                db,
		GroupRepository:   NewGroupRepository(db),
		MemberRepository:  NewMemberRepository(db),
		PaymentRepository: NewPaymentRepository(db),
		ExpenseRepository: NewExpenseRepository(db),
		ProfileRepository: NewProfileRepository(db),
	}
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// notifyGroupChange emits a change event on the shared channel. Called inside
// the same transaction as the write so subscribers only ever observe
// committed rows.
func notifyGroupChange(ctx context.Context, e execer, groupID, table string) error {
	payload, err := json.Marshal(changeEvent{GroupID: groupID, Table: table})
	if err != nil {
		return err
	}
	_, err = e.ExecContext(ctx, `SELECT pg_notify($1, $2)`, changeChannel, string(payload))
	return err
}
