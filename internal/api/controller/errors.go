package controller

import (
	"ctchen222/Book-Review/internal/api/response"
	"ctchen222/Book-Review/internal/api/service"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// userFacing lists the errors whose message may be shown to the user, with
// the status they are rendered with.
var userFacing = []struct {
	err  error
	code int
}{
	{service.ErrMissingUsername, http.StatusForbidden},
	{service.ErrMissingPassword, http.StatusForbidden},
	{service.ErrPasswordMismatch, http.StatusForbidden},
	{service.ErrPasswordTooLong, http.StatusForbidden},
	{service.ErrUsernameTaken, http.StatusForbidden},
	{service.ErrInvalidCredentials, http.StatusForbidden},
	{service.ErrInvalidRating, http.StatusForbidden},
	{service.ErrEmptyReview, http.StatusForbidden},
	{service.ErrAlreadyReviewed, http.StatusForbidden},
	{service.ErrBookNotFound, http.StatusNotFound},
}

// apologize renders err as an apology page. Unknown errors are logged and
// shown as a generic 500.
func apologize(c *gin.Context, err error) {
	for _, known := range userFacing {
		if errors.Is(err, known.err) {
			response.Apology(c, known.err.Error(), known.code)
			return
		}
	}
	internalError(c, err)
}

func internalError(c *gin.Context, err error) {
	_ = c.Error(err)
	slog.ErrorContext(c.Request.Context(), "Request failed", "path", c.Request.URL.Path, "error", err)
	response.Apology(c, "internal server error", http.StatusInternalServerError)
}
