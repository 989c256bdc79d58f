package postgres

import (
	"context"
	"testing"
	"time"

	"juntaai-backend/internal/domain"
	"juntaai-backend/internal/money"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestMemberRepository_Add(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewMemberRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		member := &domain.Member{GroupID: "g1", UserID: "u1"}

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO group_members").
			WithArgs(member.GroupID, member.UserID, member.IndividualGoal, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("SELECT pg_notify").
			WithArgs(changeChannel, `{"group_id":"g1","table":"group_members"}`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.Add(ctx, member)
		assert.NoError(t, err)
		assert.NotEmpty(t, member.CreatedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error_DuplicateMember", func(t *testing.T) {
		// The composite primary key rejects a second row for the same
		// (group, user) pair; the driver error maps to the typed failure.
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO group_members").
			WithArgs("g1", "u1", money.Cents(0), sqlmock.AnyArg()).
			WillReturnError(&pq.Error{Code: "23505"})
		mock.ExpectRollback()

		err := repo.Add(ctx, &domain.Member{GroupID: "g1", UserID: "u1"})
		assert.ErrorIs(t, err, domain.ErrAlreadyMember)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestMemberRepository_Get(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewMemberRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"group_id", "user_id", "individual_goal_cents", "created_at"}).
			AddRow("g1", "u1", 25000, time.Now())
		mock.ExpectQuery("SELECT (.+) FROM group_members WHERE group_id = \\$1 AND user_id = \\$2").
			WithArgs("g1", "u1").
			WillReturnRows(rows)

		member, err := repo.Get(ctx, "g1", "u1")
		assert.NoError(t, err)
		assert.Equal(t, money.Cents(25000), member.IndividualGoal)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM group_members WHERE group_id = \\$1 AND user_id = \\$2").
			WithArgs("g1", "stranger").
			WillReturnRows(sqlmock.NewRows([]string{"group_id", "user_id", "individual_goal_cents", "created_at"}))

		_, err := repo.Get(ctx, "g1", "stranger")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestMemberRepository_ListByGroup(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewMemberRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"group_id", "user_id", "individual_goal_cents", "created_at", "full_name", "phone", "email", "avatar_url"}).
			AddRow("g1", "u1", 25000, time.Now().Add(-time.Hour), "Ana", "+5511999990000", "ana@example.com", "").
			AddRow("g1", "u2", 0, time.Now(), "Bruno", "", "bruno@example.com", "")
		mock.ExpectQuery("SELECT (.+) FROM group_members m").
			WithArgs("g1").
			WillReturnRows(rows)

		members, err := repo.ListByGroup(ctx, "g1")
		assert.NoError(t, err)
		assert.Len(t, members, 2)
		assert.Equal(t, "Ana", members[0].Profile.FullName)
		assert.Equal(t, "u1", members[0].Profile.ID)
		assert.Zero(t, members[1].IndividualGoal)
	})
}

func TestMemberRepository_SetIndividualGoal(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewMemberRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE group_members SET individual_goal_cents = \\$1").
			WithArgs(money.Cents(30000), "g1", "u1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("SELECT pg_notify").
			WithArgs(changeChannel, `{"group_id":"g1","table":"group_members"}`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.SetIndividualGoal(ctx, "g1", "u1", 30000)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error_NotAMember", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE group_members SET individual_goal_cents = \\$1").
			WithArgs(money.Cents(30000), "g1", "stranger").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.SetIndividualGoal(ctx, "g1", "stranger", 30000)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
