package application

import (
	"time"

	"github.com/Ghani-Agu/app-reviews/internal/ports"
)

type Config struct {
	TokenCacheTTL time.Duration
}

type Dependencies struct {
	Config    Config
	Sessions  ports.SessionRepository
	Tokens    ports.TokenCache
	Submitter ports.ReviewSubmitter
	Publisher ports.EventPublisher
}

// SubmitReviewInput is the typed form of the storefront field bag. The HTTP
// adapter fills it at the boundary; nothing past this point touches raw form
// values.
type SubmitReviewInput struct {
	Shop      string
	ProductID string
	Rating    string
	Title     string
	Body      string
	Author    string
	Email     string
	ReturnTo  string
}

// ShopStatus backs the embedded admin page.
type ShopStatus struct {
	Shop       string `json:"shop"`
	Authorized bool   `json:"authorized"`
	Scope      string `json:"scope,omitempty"`
}
