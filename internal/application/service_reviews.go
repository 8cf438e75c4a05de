package application

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/Ghani-Agu/app-reviews/internal/domain"
)

// SubmitReview runs one submission through the whole pipeline: validate,
// resolve the shop's offline token, call the Admin API, classify, and map to
// a rendering directive. Invalid input short-circuits before the credential
// lookup or any network call.
func (s *Service) SubmitReview(ctx context.Context, input SubmitReviewInput) domain.Directive {
	returnTo := input.ReturnTo
	if returnTo == "" {
		returnTo = "/"
	}

	review, reason := domain.ValidateSubmission(domain.Submission{
		Shop:      input.Shop,
		ProductID: input.ProductID,
		Rating:    input.Rating,
		Title:     input.Title,
		Body:      input.Body,
		Author:    input.Author,
		Email:     input.Email,
	})
	if reason != "" {
		s.logFailure(ctx, input.Shop, reason)
		return domain.Failure(reason).Render(returnTo)
	}

	token, err := s.resolveToken(ctx, review.Shop)
	if err != nil {
		if !errors.Is(err, domain.ErrUnauthorized) {
			s.logger.ErrorContext(ctx, "credential lookup failed",
				"module", "application.reviews",
				"operation", "resolve_token",
				"shop", review.Shop,
				"error", err,
			)
		}
		s.logFailure(ctx, review.Shop, domain.ReasonUnauthorized)
		return domain.Failure(domain.ReasonUnauthorized).Render(returnTo)
	}

	now := s.nowFn()
	outcome := s.submitter.Submit(ctx, token, review, now)
	if !outcome.OK() {
		s.logFailure(ctx, review.Shop, outcome.Reason)
		return outcome.Render(returnTo)
	}

	s.publishReviewCreated(ctx, review, outcome.ID)
	s.logger.InfoContext(ctx, "review created",
		"module", "application.reviews",
		"operation", "submit_review",
		"outcome", "success",
		"shop", review.Shop,
		"review_id", outcome.ID,
	)
	return outcome.Render(returnTo)
}

// resolveToken returns the offline access token for the shop, consulting the
// cache first. Cache errors fall through to the store; a shop without an
// offline session is unauthorized.
func (s *Service) resolveToken(ctx context.Context, shop string) (string, error) {
	if token, ok, err := s.tokens.Get(ctx, shop); err == nil && ok {
		return token, nil
	}
	session, err := s.sessions.FindOfflineByShop(ctx, shop)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrUnauthorized
		}
		return "", err
	}
	if cacheErr := s.tokens.Set(ctx, shop, session.AccessToken, s.cfg.TokenCacheTTL); cacheErr != nil {
		s.logger.WarnContext(ctx, "token cache write failed",
			"module", "application.reviews",
			"operation", "resolve_token",
			"shop", shop,
			"error", cacheErr,
		)
	}
	return session.AccessToken, nil
}

// RevokeShop drops the shop's stored sessions and then its cache entry, in
// that order, so a revoked shop can never be re-filled from a row that no
// longer exists.
func (s *Service) RevokeShop(ctx context.Context, shop string) error {
	deleted, err := s.sessions.DeleteByShop(ctx, shop)
	if err != nil {
		return err
	}
	if err := s.tokens.Invalidate(ctx, shop); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "shop credentials revoked",
		"module", "application.reviews",
		"operation", "revoke_shop",
		"outcome", "success",
		"shop", shop,
		"sessions_deleted", deleted,
	)
	return nil
}

// Status reports whether the shop currently holds an offline credential. Used
// by the embedded admin page only.
func (s *Service) Status(ctx context.Context, shop string) (ShopStatus, error) {
	session, err := s.sessions.FindOfflineByShop(ctx, shop)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ShopStatus{Shop: shop, Authorized: false}, nil
		}
		return ShopStatus{}, err
	}
	return ShopStatus{Shop: shop, Authorized: true, Scope: session.Scope}, nil
}

func (s *Service) publishReviewCreated(ctx context.Context, review domain.Review, id string) {
	payload, err := json.Marshal(domain.ReviewCreatedEvent{
		Shop:       review.Shop,
		ReviewID:   id,
		ProductGID: review.ProductGID,
		Rating:     review.Rating,
		OccurredAt: s.nowFn(),
	})
	if err != nil {
		return
	}
	if err := s.publisher.Publish(ctx, domain.EventReviewCreated, payload, review.Shop); err != nil {
		s.logger.WarnContext(ctx, "event publish failed",
			"module", "application.reviews",
			"operation", "publish_review_created",
			"shop", review.Shop,
			"error", err,
		)
	}
}

// logFailure records the failure kind per shop. Remote response detail is
// logged by the submitter adapter, which still holds the raw body.
func (s *Service) logFailure(ctx context.Context, shop string, reason domain.FailureReason) {
	s.logger.WarnContext(ctx, "review submission failed",
		"module", "application.reviews",
		"operation", "submit_review",
		"outcome", "failure",
		"reason", string(reason),
		"shop", shop,
	)
}
