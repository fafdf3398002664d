package session

import (
	"context"

	"adra/pkg/types"
)

// Store holds admin sessions keyed by token. Implementations must return
// types.ErrSessionNotFound for unknown or expired tokens and treat Delete of
// an absent token as a no-op.
type Store interface {
	Save(ctx context.Context, session types.AdminSession) error
	Find(ctx context.Context, token string) (types.AdminSession, error)
	Delete(ctx context.Context, token string) error
}
