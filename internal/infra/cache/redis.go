package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gin-booking-engine/internal/domain/booking"
	"gin-booking-engine/internal/pkg/config"
	"gin-booking-engine/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// generationTTL outlives any slot entry so a bump is never forgotten early.
const generationTTL = 48 * time.Hour

// AvailabilityCache stores computed slot lists per resource, service and day.
// Invalidation bumps a per resource/day generation instead of scanning keys,
// so entries for every service on that day go stale at once.
type AvailabilityCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB})
}

func NewAvailabilityCache(client *redis.Client, ttl time.Duration) *AvailabilityCache {
	return &AvailabilityCache{client: client, ttl: ttl}
}

type cachedSlot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Get reads the day's generation first; the caller hands it back to Set.
func (c *AvailabilityCache) Get(ctx context.Context, key queries.SlotKey) queries.CacheLookup {
	gen, err := c.generation(ctx, key.ResourceID, key.Day)
	if err != nil {
		slog.Warn("availability cache unavailable", slog.Any("error", err))
		return queries.CacheLookup{Generation: -1}
	}
	miss := queries.CacheLookup{Generation: gen}

	data, err := c.client.Get(ctx, slotsKey(key, gen)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Warn("availability cache read failed", slog.Any("error", err))
		}
		return miss
	}

	var stored []cachedSlot
	if err := json.Unmarshal(data, &stored); err != nil {
		slog.Warn("availability cache entry is corrupt", slog.Any("error", err))
		return miss
	}
	out := make([]booking.TimeSlot, 0, len(stored))
	for _, s := range stored {
		ts, err := booking.NewTimeSlot(s.Start.In(key.Day.Location()), s.End.In(key.Day.Location()))
		if err != nil {
			return miss
		}
		out = append(out, ts)
	}
	return queries.CacheLookup{Slots: out, Hit: true, Generation: gen}
}

// Set stores slots under gen. A negative gen means Get could not read one and
// nothing is written.
func (c *AvailabilityCache) Set(ctx context.Context, key queries.SlotKey, gen int64, slots []booking.TimeSlot) {
	if gen < 0 {
		return
	}

	stored := make([]cachedSlot, len(slots))
	for i, s := range slots {
		stored[i] = cachedSlot{Start: s.Start(), End: s.End()}
	}
	payload, err := json.Marshal(stored)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, slotsKey(key, gen), payload, c.ttl).Err(); err != nil {
		slog.Warn("availability cache write failed", slog.Any("error", err))
	}
}

// Invalidate is called after a booking on resourceID's day commits or changes status.
func (c *AvailabilityCache) Invalidate(ctx context.Context, resourceID uuid.UUID, day time.Time) {
	k := generationKey(resourceID, day)
	pipe := c.client.TxPipeline()
	pipe.Incr(ctx, k)
	pipe.Expire(ctx, k, generationTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		slog.Warn("availability cache invalidation failed",
			slog.String("resource_id", resourceID.String()),
			slog.String("day", day.Format(time.DateOnly)),
			slog.Any("error", err))
	}
}

func (c *AvailabilityCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *AvailabilityCache) generation(ctx context.Context, resourceID uuid.UUID, day time.Time) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey(resourceID, day)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func generationKey(resourceID uuid.UUID, day time.Time) string {
	return fmt.Sprintf("availability:gen:%s:%s", resourceID, day.Format(time.DateOnly))
}

func slotsKey(key queries.SlotKey, gen int64) string {
	return fmt.Sprintf("availability:slots:%s:%s:%s:%d",
		key.ResourceID, key.Day.Format(time.DateOnly), key.ServiceID, gen)
}

// Nop is used when no Redis address is configured.
type Nop struct{}

func (Nop) Get(context.Context, queries.SlotKey) queries.CacheLookup {
	return queries.CacheLookup{Generation: -1}
}
func (Nop) Set(context.Context, queries.SlotKey, int64, []booking.TimeSlot) {}
func (Nop) Invalidate(context.Context, uuid.UUID, time.Time)               {}
