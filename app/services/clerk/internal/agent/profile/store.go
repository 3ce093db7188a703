package profile

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("profile not found")

// Store keeps one Profile per session id.
type Store interface {
	// Get returns ErrNotFound when the session has no profile yet.
	Get(ctx context.Context, sessionId string) (*Profile, error)
	Create(ctx context.Context, sessionId string) (*Profile, error)
	Put(ctx context.Context, sessionId string, p *Profile) error
}

// Locker serializes turns of one session.
type Locker interface {
	Lock(ctx context.Context, sessionId string) (unlock func(), err error)
}

// Load returns the session's profile, creating it on first use. The result is
// a private copy.
func Load(ctx context.Context, s Store, sessionId string) (*Profile, error) {
	p, err := s.Get(ctx, sessionId)
	if errors.Is(err, ErrNotFound) {
		return s.Create(ctx, sessionId)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}
