package repository

import (
	"context"
	"time"

	"gin-booking-engine/internal/infra"
	"gin-booking-engine/internal/infra/db"
	"gin-booking-engine/internal/pkg/pgconv"
	"gin-booking-engine/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type OutboxRepository struct {
	db db.DBTX
}

func NewOutboxRepository(dbtx db.DBTX) *OutboxRepository {
	return &OutboxRepository{db: dbtx}
}

func (r *OutboxRepository) Enqueue(ctx context.Context, ev shared.OutboxEvent) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO outbox_events (id, aggregate_id, event_type, payload, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		ev.ID, ev.AggregateID, ev.EventType, ev.Payload, ev.CreatedAt)
	if err != nil {
		return infra.WrapRepoErr("failed to enqueue outbox event", err)
	}
	return nil
}

// ClaimPending must run inside a transaction; the row locks last until it ends.
func (r *OutboxRepository) ClaimPending(ctx context.Context, limit int) ([]shared.OutboxEvent, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, aggregate_id, event_type, payload, created_at, published_at
		FROM outbox_events
		WHERE published_at IS NULL
		ORDER BY created_at, id
		LIMIT $1
		FOR UPDATE SKIP LOCKED`, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to claim outbox events", err)
	}
	defer rows.Close()

	var out []shared.OutboxEvent
	for rows.Next() {
		var (
			ev          shared.OutboxEvent
			publishedAt pgtype.Timestamptz
		)
		if err := rows.Scan(&ev.ID, &ev.AggregateID, &ev.EventType, &ev.Payload, &ev.CreatedAt, &publishedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan outbox event", err)
		}
		ev.PublishedAt = pgconv.TimePtrFromPgtype(publishedAt)
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate outbox events", err)
	}
	return out, nil
}

func (r *OutboxRepository) MarkPublished(ctx context.Context, ids []uuid.UUID, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.db.Exec(ctx, `UPDATE outbox_events SET published_at = $2 WHERE id = ANY($1)`, ids, at)
	if err != nil {
		return infra.WrapRepoErr("failed to mark outbox events published", err)
	}
	return nil
}
