package domain

import "time"

const EventReviewCreated = "review.created"

// ReviewCreatedEvent is published after the Admin API accepts a review.
type ReviewCreatedEvent struct {
	Shop       string    `json:"shop"`
	ReviewID   string    `json:"review_id"`
	ProductGID string    `json:"product_gid"`
	Rating     int       `json:"rating"`
	OccurredAt time.Time `json:"occurred_at"`
}
