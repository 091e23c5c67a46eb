// Package session keeps form machines alive across HTTP requests. Snapshots
// are persisted in a Store and addressed by signed tokens.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/goliatone/go-signupform/pkg/formstate"
)

var (
	// ErrNotFound is returned by stores when no live snapshot exists.
	ErrNotFound = errors.New("session: not found")
	// ErrInvalidToken is returned when a token fails verification.
	ErrInvalidToken = errors.New("session: invalid token")
)

// Store persists machine snapshots by session id.
type Store interface {
	Load(ctx context.Context, id string) (formstate.Snapshot, error)
	Save(ctx context.Context, id string, snapshot formstate.Snapshot, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}
