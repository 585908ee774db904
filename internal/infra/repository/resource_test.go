//go:build unit

package repository_test

import (
	"context"
	"testing"
	"time"

	"gin-booking-engine/internal/infra"
	"gin-booking-engine/internal/infra/repository"
	"gin-booking-engine/tests/common/pgxfake"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResourceRepository_ListCandidates(t *testing.T) {
	ctx := context.Background()
	monday := time.Date(2030, 6, 3, 0, 0, 0, 0, time.UTC)
	created := monday.Add(-48 * time.Hour)
	bob, alice := uuid.New(), uuid.New()

	t.Run("success: database order is kept and hours are attached", func(t *testing.T) {
		candidates := pgxfake.RowsOf(
			[]any{bob, "Bob", true, created, created},
			[]any{alice, "Alice", true, created, created},
		)
		hours := pgxfake.RowsOf(
			[]any{alice, int(time.Monday), 9 * 60, 17 * 60},
			[]any{bob, int(time.Monday), 10 * 60, 14 * 60},
		)
		db := pgxfake.New().OnQuery(candidates, nil).OnQuery(hours, nil)
		repo := repository.NewResourceRepository(db)

		got, err := repo.ListCandidates(ctx, monday)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, bob, got[0].ID(), "least loaded first as returned by the query")
		assert.Equal(t, alice, got[1].ID())

		h, ok := got[0].HoursOn(monday)
		require.True(t, ok)
		assert.Equal(t, 10*60, h.Open.Minutes())
		assert.True(t, got[1].CanHost(monday, monday.Add(9*time.Hour), monday.Add(17*time.Hour)))

		require.Len(t, db.Calls, 2)
		assert.Contains(t, db.Calls[0].SQL, "ORDER BY count(b.id), r.name, r.id")
		assert.Equal(t, []any{int(time.Monday), pgtype.Date{Time: monday, Valid: true}}, db.Calls[0].Args)
		assert.Equal(t, []any{[]uuid.UUID{bob, alice}}, db.Calls[1].Args)
		assert.True(t, candidates.Closed())
		assert.True(t, hours.Closed())
	})

	t.Run("success: no candidates skips the hours lookup", func(t *testing.T) {
		db := pgxfake.New().OnQuery(pgxfake.RowsOf(), nil)
		repo := repository.NewResourceRepository(db)

		got, err := repo.ListCandidates(ctx, monday)
		require.NoError(t, err)
		assert.Empty(t, got)
		assert.Len(t, db.Calls, 1)
	})

	t.Run("error: iteration fails", func(t *testing.T) {
		db := pgxfake.New().OnQuery(pgxfake.RowsOf().WithErr(errDBConnectionLost), nil)
		repo := repository.NewResourceRepository(db)

		_, err := repo.ListCandidates(ctx, monday)
		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindDBFailure), "got (%v)", err)
	})

	t.Run("error: stored hours are invalid", func(t *testing.T) {
		db := pgxfake.New().
			OnQuery(pgxfake.RowsOf([]any{bob, "Bob", true, created, created}), nil).
			OnQuery(pgxfake.RowsOf([]any{bob, int(time.Monday), 17 * 60, 9 * 60}), nil)
		repo := repository.NewResourceRepository(db)

		_, err := repo.ListCandidates(ctx, monday)
		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindDBFailure), "got (%v)", err)
	})
}

func TestResourceRepository_FindByIDLocks(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	testCases := []struct {
		name     string
		find     func(*repository.ResourceRepository) error
		wantLock string
	}{
		{
			name:     "success: plain read takes no lock",
			find:     func(r *repository.ResourceRepository) error { _, err := r.FindByID(ctx, id); return err },
			wantLock: "",
		},
		{
			name:     "success: share lock",
			find:     func(r *repository.ResourceRepository) error { _, err := r.FindByIDForShare(ctx, id); return err },
			wantLock: "FOR SHARE",
		},
		{
			name:     "success: update lock",
			find:     func(r *repository.ResourceRepository) error { _, err := r.FindByIDForUpdate(ctx, id); return err },
			wantLock: "FOR UPDATE",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			db := pgxfake.New().OnQueryRow(pgxfake.RowErr(pgx.ErrNoRows))
			repo := repository.NewResourceRepository(db)

			err := tc.find(repo)
			require.Error(t, err)
			assert.True(t, infra.IsKind(err, infra.KindNotFound), "got (%v)", err)

			sql := db.Last().SQL
			if tc.wantLock == "" {
				assert.NotContains(t, sql, "FOR ")
				return
			}
			assert.Contains(t, sql, tc.wantLock)
		})
	}
}

func TestResourceRepository_Update(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2030, 6, 3, 8, 0, 0, 0, time.UTC)

	db := pgxfake.New().
		OnQueryRow(pgxfake.RowOf(uuid.New(), "Bob", true, now, now)).
		OnQuery(pgxfake.RowsOf(), nil).
		OnExec("UPDATE 0", nil)
	repo := repository.NewResourceRepository(db)

	res, err := repo.FindByID(ctx, uuid.New())
	require.NoError(t, err)
	res.Retire(now.Add(time.Hour))

	err = repo.Update(ctx, res)
	require.Error(t, err)
	assert.True(t, infra.IsKind(err, infra.KindNotFound), "got (%v)", err)
	assert.Equal(t, false, db.Last().Args[2])
}
