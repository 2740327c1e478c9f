package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hokkori/kifukin/internal/filecache"
	receiptdomain "github.com/hokkori/kifukin/internal/receipt/domain"
	"gorm.io/gorm"
)

// ErrorHandlingMiddleware maps workflow errors onto the JSON error
// shape {ok:false, error}. Validation → 400, mail delivery → 502,
// missing token/record → 404, everything else → 500.
func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status := statusForError(lastErr.Err)
		c.AbortWithStatusJSON(status, gin.H{
			"ok":    false,
			"error": lastErr.Err.Error(),
		})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func statusForError(err error) int {
	switch {
	case receiptdomain.IsValidationError(err):
		return http.StatusBadRequest
	case errors.Is(err, receiptdomain.ErrMailDelivery):
		return http.StatusBadGateway
	case errors.Is(err, receiptdomain.ErrNotFound),
		errors.Is(err, filecache.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
