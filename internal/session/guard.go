package session

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"adra/internal/utils"
	"adra/pkg/types"

	"github.com/sirupsen/logrus"
)

// Guard is the shared-secret admin gate. It issues opaque tokens on a
// successful password check and validates them on every protected call,
// distinguishing a missing token from an unknown or expired one.
type Guard struct {
	logger *logrus.Logger
	store  Store
	secret []byte
	ttl    time.Duration
}

func NewGuard(logger *logrus.Logger, store Store, secret string, ttl time.Duration) *Guard {
	return &Guard{
		logger: logger,
		store:  store,
		secret: []byte(secret),
		ttl:    ttl,
	}
}

func (g *Guard) Authenticate(ctx context.Context, password string) (types.AdminSession, error) {
	if subtle.ConstantTimeCompare([]byte(password), g.secret) != 1 {
		return types.AdminSession{}, types.ErrInvalidCredentials
	}

	now := time.Now()
	session := types.AdminSession{
		Token:     utils.SessionToken(),
		IssuedAt:  now,
		ExpiresAt: now.Add(g.ttl),
	}

	if err := g.store.Save(ctx, session); err != nil {
		return types.AdminSession{}, fmt.Errorf("failed to store session: %w", err)
	}

	g.logger.WithField("expires_at", session.ExpiresAt).Info("admin session issued")

	return session, nil
}

// Check validates a token. An empty token fails with ErrNoSession and an
// unknown or expired one with ErrInvalidSession; store failures propagate
// untouched so callers never mistake an outage for a login prompt.
func (g *Guard) Check(ctx context.Context, token string) (types.AdminSession, error) {
	if token == "" {
		return types.AdminSession{}, types.ErrNoSession
	}

	session, err := g.store.Find(ctx, token)
	if err != nil {
		if errors.Is(err, types.ErrSessionNotFound) {
			return types.AdminSession{}, types.ErrInvalidSession
		}
		return types.AdminSession{}, fmt.Errorf("failed to look up session: %w", err)
	}

	if session.Expired(time.Now()) {
		return types.AdminSession{}, types.ErrInvalidSession
	}

	return session, nil
}

// Revoke invalidates a token. Revoking an unknown token is not an error.
func (g *Guard) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return g.store.Delete(ctx, token)
}
