package middleware

import (
	"ctchen222/Book-Review/internal/api/response"
	"ctchen222/Book-Review/internal/session"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

const sessionKey = "session"

// Session loads the request's session.State into the gin context. A store
// failure is logged and the request continues as anonymous.
func Session(m *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		state, err := m.Load(c.Request.Context(), c.Request)
		if err != nil {
			slog.ErrorContext(c.Request.Context(), "Failed to load session", "error", err)
			state = session.State{}
		}
		SetSession(c, state)
		c.Next()
	}
}

// SetSession replaces the request's session state, e.g. after login.
func SetSession(c *gin.Context, state session.State) {
	c.Set(sessionKey, state)
	c.Set(response.LoggedInKey, state.Authenticated())
}

// CurrentSession returns the state stored by Session, or the anonymous state.
func CurrentSession(c *gin.Context) session.State {
	if v, ok := c.Get(sessionKey); ok {
		if state, ok := v.(session.State); ok {
			return state
		}
	}
	return session.State{}
}

// CurrentUserID returns the logged in user's id, or 0.
func CurrentUserID(c *gin.Context) int64 {
	return CurrentSession(c).UserID
}

// RequireLogin redirects anonymous requests to /login.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if session.Gate(CurrentSession(c)) == session.Redirect {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}
