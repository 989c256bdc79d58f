package postgres

import (
	"context"
	"testing"
	"time"

	"juntaai-backend/internal/domain"
	"juntaai-backend/internal/money"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestGroupRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewGroupRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		group := &domain.Group{
			ID:        "g1",
			Name:      "Trip Fund",
			Category:  domain.GroupCategoryTravel,
			TotalGoal: 100000,
			PixKey:    "pix@example.com",
			OwnerID:   "owner-1",
		}

		mock.ExpectExec("INSERT INTO groups").
			WithArgs(group.ID, group.Name, group.Category, group.TotalGoal, group.PixKey, group.OwnerID, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Create(ctx, group)
		assert.NoError(t, err)
		assert.NotEmpty(t, group.CreatedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGroupRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewGroupRepository(db)
	ctx := context.Background()

	columns := []string{"id", "name", "category", "total_goal_cents", "pix_key", "owner_id", "created_at"}

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows(columns).
			AddRow("g1", "Trip Fund", "travel", 100000, "pix@example.com", "owner-1", time.Now())
		mock.ExpectQuery("SELECT (.+) FROM groups WHERE id = \\$1").
			WithArgs("g1").
			WillReturnRows(rows)

		group, err := repo.GetByID(ctx, "g1")
		assert.NoError(t, err)
		assert.Equal(t, "Trip Fund", group.Name)
		assert.Equal(t, money.Cents(100000), group.TotalGoal)
		assert.True(t, group.IsOwner("owner-1"))
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM groups WHERE id = \\$1").
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows(columns))

		_, err := repo.GetByID(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestGroupRepository_ListByMember(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewGroupRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "name", "category", "total_goal_cents", "pix_key", "owner_id", "created_at"}).
			AddRow("g2", "Housewarming", "home", 50000, "", "u1", time.Now()).
			AddRow("g1", "Trip Fund", "travel", 100000, "pix@example.com", "owner-1", time.Now().Add(-time.Hour))
		mock.ExpectQuery("SELECT (.+) FROM groups g").
			WithArgs("u1").
			WillReturnRows(rows)

		groups, err := repo.ListByMember(ctx, "u1")
		assert.NoError(t, err)
		assert.Len(t, groups, 2)
		assert.Equal(t, "g2", groups[0].ID)
	})

	t.Run("Success_Empty", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM groups g").
			WithArgs("loner").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "category", "total_goal_cents", "pix_key", "owner_id", "created_at"}))

		groups, err := repo.ListByMember(ctx, "loner")
		assert.NoError(t, err)
		assert.Empty(t, groups)
	})
}
