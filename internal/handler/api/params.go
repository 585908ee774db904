package api

import (
	"net/http"
	"strconv"

	"gin-booking-engine/internal/handler/httperr"
	"gin-booking-engine/internal/pkg/errs"
	"gin-booking-engine/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var errBadParam = errs.Mark(errs.New("invalid request parameter"), errs.ErrValidation)

// pathID aborts with 400 when the segment is not a UUID.
func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid "+name, nil)
		return uuid.Nil, false
	}
	return id, true
}

// queryID returns nil for an absent parameter.
func queryID(c *gin.Context, name string) (*uuid.UUID, bool) {
	v := c.Query(name)
	if v == "" {
		return nil, true
	}
	id, err := uuid.Parse(v)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid "+name, nil)
		return nil, false
	}
	return &id, true
}

func queryLimit(c *gin.Context) (int, bool) {
	v := c.Query("limit")
	if v == "" {
		return queries.DefaultListLimit, true
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid limit", nil)
		return 0, false
	}
	return queries.ValidateLimit(n), true
}

func queryBool(c *gin.Context, name string) (bool, bool) {
	v := c.Query(name)
	if v == "" {
		return false, true
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid "+name, nil)
		return false, false
	}
	return b, true
}

func queryCursor(c *gin.Context) *queries.Cursor {
	if after := c.Query("after"); after != "" {
		return &queries.Cursor{After: after}
	}
	return nil
}

func nextCursor(next *queries.Cursor) string {
	if next == nil {
		return ""
	}
	return next.After
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, errs.Mark(err, errBadParam), "Invalid request", err.Error())
		return false
	}
	return true
}
