package ports

import (
	"context"

	"github.com/Ghani-Agu/app-reviews/internal/domain"
)

// SessionRepository reads and revokes stored shop credentials. Sessions are
// written by the authorization flow, which lives outside this service; the
// submission pipeline only ever reads, and only the uninstall webhook deletes.
type SessionRepository interface {
	// FindOfflineByShop returns the most recently stored offline session for
	// the shop, or domain.ErrNotFound.
	FindOfflineByShop(ctx context.Context, shop string) (domain.Session, error)
	DeleteByShop(ctx context.Context, shop string) (int64, error)
}
