package application

import (
	"log/slog"
	"time"

	"github.com/Ghani-Agu/app-reviews/internal/ports"
)

type Service struct {
	cfg       Config
	sessions  ports.SessionRepository
	tokens    ports.TokenCache
	submitter ports.ReviewSubmitter
	publisher ports.EventPublisher
	logger    *slog.Logger
	nowFn     func() time.Time
}

func NewService(deps Dependencies) *Service {
	cfg := deps.Config
	if cfg.TokenCacheTTL <= 0 {
		cfg.TokenCacheTTL = 5 * time.Minute
	}
	return &Service{
		cfg:       cfg,
		sessions:  deps.Sessions,
		tokens:    deps.Tokens,
		submitter: deps.Submitter,
		publisher: deps.Publisher,
		logger:    slog.Default(),
		nowFn:     func() time.Time { return time.Now().UTC() },
	}
}
