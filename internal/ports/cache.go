package ports

import (
	"context"
	"time"
)

// TokenCache fronts the session store with a short-lived token cache.
// Invalidate must take effect before the revocation that triggered it is
// acknowledged; a revoked shop being served from cache is a correctness bug,
// not a staleness annoyance.
type TokenCache interface {
	Get(ctx context.Context, shop string) (token string, ok bool, err error)
	Set(ctx context.Context, shop, token string, ttl time.Duration) error
	Invalidate(ctx context.Context, shop string) error
}
