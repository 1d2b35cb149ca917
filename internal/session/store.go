// Package session tracks which user, if any, a browser is logged in as.
//
// The browser holds a signed cookie naming a server-side token; the Store maps
// tokens to user ids. A request is either anonymous or authenticated, see State.
package session

import (
	"context"
	"errors"
)

// ErrNotFound is returned by a Store for unknown or expired tokens.
var ErrNotFound = errors.New("session not found")

// Store persists session tokens.
type Store interface {
	Create(ctx context.Context, token string, userID int64) error
	UserID(ctx context.Context, token string) (int64, error)
	Delete(ctx context.Context, token string) error
}
