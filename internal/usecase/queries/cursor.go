package queries

import (
	"encoding/base64"
	"strconv"
	"strings"
	"time"

	"gin-booking-engine/internal/pkg/errs"

	"github.com/google/uuid"
)

const (
	DefaultListLimit    = 20
	DefaultPopularLimit = 5
	MaxListLimit        = 200
	CursorVersionV1     = "v1"
)

var ErrInvalidCursor = errs.Mark(errs.New("invalid cursor"), errs.ErrValidation)

// Keyset is the (time, id) position of the last row a page returned.
type Keyset struct {
	At time.Time
	ID uuid.UUID
}

type Cursor struct {
	After string `json:"after,omitempty"`
}

// Uses microsecond precision to align with PostgreSQL timestamp precision
func EncodeAfterCursor(t time.Time, id uuid.UUID) string {
	payload := CursorVersionV1 + ":" + strconv.FormatInt(t.UnixMicro(), 10) + "-" + id.String()
	return base64.URLEncoding.EncodeToString([]byte(payload))
}

func DecodeAfterCursor(cursor string) (Keyset, error) {
	decoded, err := base64.URLEncoding.DecodeString(cursor)
	if err != nil {
		return Keyset{}, ErrInvalidCursor
	}
	payload, ok := strings.CutPrefix(string(decoded), CursorVersionV1+":")
	if !ok {
		return Keyset{}, ErrInvalidCursor
	}
	micros, rawID, ok := strings.Cut(payload, "-")
	if !ok {
		return Keyset{}, ErrInvalidCursor
	}
	ts, err := strconv.ParseInt(micros, 10, 64)
	if err != nil {
		return Keyset{}, ErrInvalidCursor
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return Keyset{}, ErrInvalidCursor
	}
	return Keyset{At: time.UnixMicro(ts).UTC(), ID: id}, nil
}

// after decodes an optional cursor; nil or empty means the first page.
func after(c *Cursor) (*Keyset, error) {
	if c == nil || c.After == "" {
		return nil, nil
	}
	k, err := DecodeAfterCursor(c.After)
	if err != nil {
		return nil, err
	}
	return &k, nil
}

func ValidateLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}

// paginate trims a limit+1 fetch to limit rows and emits the next cursor
// when the extra row proves another page exists.
func paginate[T any](rows []T, limit int, key func(T) Keyset) ([]T, *Cursor) {
	if len(rows) <= limit {
		return rows, nil
	}
	last := key(rows[limit-1])
	return rows[:limit], &Cursor{After: EncodeAfterCursor(last.At, last.ID)}
}
