package response

import (
	"net/http"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
)

// ApologyTemplate is the page rendered for user-facing errors.
const ApologyTemplate = "apology.html"

// Page renders an HTML template with status 200. data is wrapped so every
// page can tell whether someone is logged in.
func Page(c *gin.Context, name string, data gin.H) {
	c.HTML(http.StatusOK, name, withLayout(c, data))
}

// Apology renders the apology page with message capitalized and code as both
// the HTTP status and the displayed code. A zero code means 400.
func Apology(c *gin.Context, message string, code int) {
	if code == 0 {
		code = http.StatusBadRequest
	}
	c.HTML(code, ApologyTemplate, withLayout(c, gin.H{
		"Title":   "Apology",
		"Message": Capitalize(message),
		"Code":    code,
	}))
}

// ErrorResponse writes a JSON error body {"error": message}.
func ErrorResponse(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

// SuccessResponse writes payload as JSON with status 200.
func SuccessResponse(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// Capitalize upper-cases the first letter of s and lower-cases the rest.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

const defaultTitle = "Book Review"

// LoggedInKey is the gin context key the session middleware uses to flag an
// authenticated request for templates.
const LoggedInKey = "logged_in"

func withLayout(c *gin.Context, data gin.H) gin.H {
	if data == nil {
		data = gin.H{}
	}
	if _, ok := data["Title"]; !ok {
		data["Title"] = defaultTitle
	}
	data["LoggedIn"] = c.GetBool(LoggedInKey)
	return data
}
