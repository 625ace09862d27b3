package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/snnyvrz/library-api/internal/middleware"
	"github.com/snnyvrz/library-api/internal/repository"
	"github.com/snnyvrz/library-api/internal/validation"
)

func writeError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, validation.ErrorResponse{
		Code:    code,
		Message: message,
		Errors:  nil,
	})
}

// writeRepoError maps a repository error onto the response. Anything that
// is not a known domain error is logged and reported as a 500 carrying
// fallbackCode.
func writeRepoError(c *gin.Context, logger *slog.Logger, err error, fallbackCode, fallbackMessage string) {
	var verr *repository.ValidationError

	switch {
	case errors.As(err, &verr):
		validation.AbortWithFieldError(c, verr.Field, "invalid", verr.Field+" "+verr.Reason)
	case errors.Is(err, repository.ErrBookNotFound):
		writeError(c, http.StatusNotFound, "BOOK_NOT_FOUND", "book not found")
	case errors.Is(err, repository.ErrDuplicateISBN):
		writeError(c, http.StatusConflict, "DUPLICATE_ISBN", "a book with this isbn already exists")
	case errors.Is(err, repository.ErrBookHasOrders):
		writeError(c, http.StatusConflict, "BOOK_HAS_ORDERS", "book has orders and cannot be deleted")
	case errors.Is(err, repository.ErrInsufficientStock):
		writeError(c, http.StatusBadRequest, "INSUFFICIENT_STOCK", "not enough copies in stock")
	default:
		logger.Error(fallbackMessage,
			slog.String(middleware.RequestIDKey, middleware.RequestID(c)),
			slog.String("code", fallbackCode),
			slog.Any("error", err),
		)
		_ = c.Error(err)
		writeError(c, http.StatusInternalServerError, fallbackCode, fallbackMessage)
	}
}
