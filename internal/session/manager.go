package session

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// CookieName is the name of the browser cookie carrying the session.
const CookieName = "session"

const issuer = "book-review"

// Manager issues, reads and clears session cookies.
type Manager struct {
	store  Store
	secret []byte
	ttl    time.Duration
}

// NewManager signs cookies with secret. An empty secret is replaced by random
// bytes, so cookies issued by a previous process stop validating.
func NewManager(store Store, secret string, ttl time.Duration) (*Manager, error) {
	key := []byte(secret)
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("failed to generate session secret: %w", err)
		}
	}
	return &Manager{store: store, secret: key, ttl: ttl}, nil
}

// Start creates a session for userID and sets the cookie on w.
func (m *Manager) Start(ctx context.Context, w http.ResponseWriter, userID int64) (State, error) {
	token := uuid.NewString()
	if err := m.store.Create(ctx, token, userID); err != nil {
		return State{}, err
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		ID:        token,
		Issuer:    issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return State{}, fmt.Errorf("failed to sign session token: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    signed,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return State{Token: token, UserID: userID}, nil
}

// Load returns the session named by the request cookie. Missing, tampered or
// expired cookies and unknown tokens all yield the anonymous State; only
// store failures are returned as errors.
func (m *Manager) Load(ctx context.Context, r *http.Request) (State, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return State{}, nil
	}

	token, ok := m.parse(cookie.Value)
	if !ok {
		return State{}, nil
	}

	userID, err := m.store.UserID(ctx, token)
	if errors.Is(err, ErrNotFound) {
		return State{}, nil
	}
	if err != nil {
		return State{}, err
	}
	return State{Token: token, UserID: userID}, nil
}

// Clear forgets state server-side and expires the cookie.
func (m *Manager) Clear(ctx context.Context, w http.ResponseWriter, state State) error {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	if state.Token == "" {
		return nil
	}
	return m.store.Delete(ctx, state.Token)
}

func (m *Manager) parse(raw string) (string, bool) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		slog.Debug("Rejected session cookie", "error", err)
		return "", false
	}
	if claims.ID == "" {
		return "", false
	}
	return claims.ID, true
}
