//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// Hours maps time.Weekday to an "HH:MM" open/close pair.
type Hours map[time.Weekday][2]string

// WeekdayHours is Monday to Friday, 09:00 to 17:00.
func WeekdayHours() Hours {
	h := Hours{}
	for d := time.Monday; d <= time.Friday; d++ {
		h[d] = [2]string{"09:00", "17:00"}
	}
	return h
}

func CreateTestResource(t *testing.T, db DBLike, name string, hours Hours) uuid.UUID {
	t.Helper()

	id := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx, "INSERT INTO resources (id, name, is_available) VALUES ($1, $2, true)", id, name)
	require.NoError(t, err)

	for day, oc := range hours {
		_, err := db.Exec(ctx,
			"INSERT INTO resource_hours (resource_id, weekday, open_min, close_min) VALUES ($1, $2, $3, $4)",
			id, int(day), clockMinutes(t, oc[0]), clockMinutes(t, oc[1]))
		require.NoError(t, err)
	}
	return id
}

func CreateTestService(t *testing.T, db DBLike, name string, durationMin int, priceCents int64) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO services (id, name, category, duration_min, price_cents, is_active) VALUES ($1, $2, 'general', $3, $4, true)",
		id, name, durationMin, priceCents)
	require.NoError(t, err)
	return id
}

func CreateTestCustomer(t *testing.T, db DBLike, name, email string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx, "INSERT INTO customers (id, name, email) VALUES ($1, $2, $3) ON CONFLICT (lower(email)) DO NOTHING",
		id, name, email)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM customers WHERE lower(email) = lower($1)", email).Scan(&id)
	}
	return id
}

// CountRows is a shortcut for assertions on side effects.
func CountRows(t *testing.T, db DBLike, table, where string, args ...any) int {
	t.Helper()

	q := "SELECT count(*) FROM " + table
	if where != "" {
		q += " WHERE " + where
	}
	var n int
	require.NoError(t, db.QueryRow(context.Background(), q, args...).Scan(&n))
	return n
}

func clockMinutes(t *testing.T, hhmm string) int {
	t.Helper()
	c, err := time.Parse("15:04", hhmm)
	require.NoError(t, err)
	return c.Hour()*60 + c.Minute()
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations', 'atlas_schema_revisions')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}
