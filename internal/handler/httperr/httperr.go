package httperr

import (
	"net/http"

	"gin-booking-engine/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

func NewResponse(status int, msg string) Response {
	resp := Response{Status: status}
	resp.Error.Message = msg
	return resp
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := NewResponse(status, msg)
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// StatusFor maps the error taxonomy onto HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errs.Is(err, errs.ErrNotFound):
		return http.StatusNotFound
	case errs.Is(err, errs.ErrValidation):
		return http.StatusBadRequest
	case errs.Is(err, errs.ErrInvalidTransition):
		return http.StatusUnprocessableEntity
	case errs.Is(err, errs.ErrConflict), errs.Is(err, errs.ErrDuplicateReview):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// AbortWithUseCaseError exposes the error text for client errors only.
func AbortWithUseCaseError(c *gin.Context, err error) {
	status := StatusFor(err)
	msg := "Internal server error"
	if status < http.StatusInternalServerError {
		msg = err.Error()
	}
	AbortWithError(c, status, err, msg, nil)
}
