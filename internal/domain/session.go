package domain

import "time"

// Session is a platform-issued access credential for one shop. Offline
// sessions are long-lived and shop-wide; online sessions are bound to a
// single admin user and expire. Only offline sessions may act on the shop's
// behalf from the storefront pipeline.
type Session struct {
	ID          string
	Shop        string
	AccessToken string
	Scope       string
	IsOnline    bool
	ExpiresAt   *time.Time
	CreatedAt   time.Time
}
