package controller

import (
	"ctchen222/Book-Review/internal/api/middleware"
	"ctchen222/Book-Review/internal/api/models"
	"ctchen222/Book-Review/internal/api/response"
	"ctchen222/Book-Review/internal/api/service"
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
)

// BookController serves the book page, review submission and the JSON API.
type BookController struct {
	books service.BookService
}

// NewBookController creates a new BookController.
func NewBookController(books service.BookService) *BookController {
	return &BookController{books: books}
}

// Show renders the book page.
func (bc *BookController) Show(c *gin.Context) {
	isbn := c.Param("isbn")
	detail, err := bc.books.Detail(c.Request.Context(), isbn, middleware.CurrentUserID(c))
	if errors.Is(err, service.ErrBookNotFound) {
		response.Apology(c, "sorry, book doesn't exist", http.StatusNotFound)
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}

	response.Page(c, "book.html", gin.H{"Title": detail.Book.Title, "Detail": detail})
}

// Review stores the submitted review and redirects back to the book page.
func (bc *BookController) Review(c *gin.Context) {
	isbn := c.Param("isbn")

	var req models.ReviewRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Apology(c, "invalid form", http.StatusBadRequest)
		return
	}

	err := bc.books.SubmitReview(c.Request.Context(), isbn, middleware.CurrentUserID(c), &req)
	if errors.Is(err, service.ErrBookNotFound) {
		response.Apology(c, "sorry, book doesn't exist", http.StatusNotFound)
		return
	}
	if err != nil {
		apologize(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/book/"+url.PathEscape(isbn))
}

// API returns the book summary as JSON.
func (bc *BookController) API(c *gin.Context) {
	summary, err := bc.books.Summary(c.Request.Context(), c.Param("isbn"))
	if errors.Is(err, service.ErrBookNotFound) {
		response.ErrorResponse(c, http.StatusUnprocessableEntity, "Invalid book isbn")
		return
	}
	if err != nil {
		_ = c.Error(err)
		response.ErrorResponse(c, http.StatusInternalServerError, "internal server error")
		return
	}

	response.SuccessResponse(c, summary)
}
