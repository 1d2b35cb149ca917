package controller

import (
	"ctchen222/Book-Review/internal/api/response"
	"ctchen222/Book-Review/internal/api/service"
	"strings"

	"github.com/gin-gonic/gin"
)

// PageController serves the search page.
type PageController struct {
	catalog service.CatalogService
}

// NewPageController creates a new PageController.
func NewPageController(catalog service.CatalogService) *PageController {
	return &PageController{catalog: catalog}
}

// Index renders the empty search form.
func (pc *PageController) Index(c *gin.Context) {
	response.Page(c, "index.html", gin.H{"Search": "", "Searched": false, "Books": nil})
}

// Search renders the books matching the submitted term. A blank term renders
// the empty form again.
func (pc *PageController) Search(c *gin.Context) {
	term := strings.TrimSpace(c.PostForm("search"))
	if term == "" {
		pc.Index(c)
		return
	}

	books, err := pc.catalog.Search(c.Request.Context(), term)
	if err != nil {
		internalError(c, err)
		return
	}

	response.Page(c, "index.html", gin.H{"Search": term, "Searched": true, "Books": books})
}
