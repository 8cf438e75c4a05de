package ports

import (
	"context"
	"time"

	"github.com/Ghani-Agu/app-reviews/internal/domain"
)

// ReviewSubmitter performs the single remote create call against the shop's
// Admin API and classifies what came back. One call per submission, no
// retries; every failure mode is folded into the outcome.
type ReviewSubmitter interface {
	Submit(ctx context.Context, token string, review domain.Review, submittedAt time.Time) domain.Outcome
}
