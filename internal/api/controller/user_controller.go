package controller

import (
	"ctchen222/Book-Review/internal/api/middleware"
	"ctchen222/Book-Review/internal/api/models"
	"ctchen222/Book-Review/internal/api/response"
	"ctchen222/Book-Review/internal/api/service"
	"ctchen222/Book-Review/internal/session"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// UserController handles registration, login and logout.
type UserController struct {
	userService service.UserService
	sessions    *session.Manager
}

// NewUserController creates a new UserController.
func NewUserController(userService service.UserService, sessions *session.Manager) *UserController {
	return &UserController{
		userService: userService,
		sessions:    sessions,
	}
}

// RegisterPage renders the registration form.
func (uc *UserController) RegisterPage(c *gin.Context) {
	response.Page(c, "register.html", gin.H{"Title": "Register"})
}

// Register creates the account and logs the new user in.
func (uc *UserController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Apology(c, "invalid form", http.StatusBadRequest)
		return
	}

	userID, err := uc.userService.Register(c.Request.Context(), &req)
	if err != nil {
		apologize(c, err)
		return
	}

	if !uc.startSession(c, userID) {
		return
	}
	slog.InfoContext(c.Request.Context(), "User registered", "user_id", userID)
	c.Redirect(http.StatusFound, "/")
}

// LoginPage forgets any current session and renders the login form.
func (uc *UserController) LoginPage(c *gin.Context) {
	uc.clearSession(c)
	response.Page(c, "login.html", gin.H{"Title": "Log In"})
}

// Login forgets any current session, then checks the credentials.
func (uc *UserController) Login(c *gin.Context) {
	uc.clearSession(c)

	var req models.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Apology(c, "invalid form", http.StatusBadRequest)
		return
	}

	userID, err := uc.userService.Authenticate(c.Request.Context(), &req)
	if err != nil {
		apologize(c, err)
		return
	}

	if !uc.startSession(c, userID) {
		return
	}
	c.Redirect(http.StatusFound, "/")
}

// Logout forgets the session and sends the browser home, which in turn
// redirects to the login form.
func (uc *UserController) Logout(c *gin.Context) {
	uc.clearSession(c)
	c.Redirect(http.StatusFound, "/")
}

func (uc *UserController) startSession(c *gin.Context, userID int64) bool {
	state, err := uc.sessions.Start(c.Request.Context(), c.Writer, userID)
	if err != nil {
		internalError(c, err)
		return false
	}
	middleware.SetSession(c, state)
	return true
}

func (uc *UserController) clearSession(c *gin.Context) {
	if err := uc.sessions.Clear(c.Request.Context(), c.Writer, middleware.CurrentSession(c)); err != nil {
		slog.WarnContext(c.Request.Context(), "Failed to clear session", "error", err)
	}
	middleware.SetSession(c, session.State{})
}
