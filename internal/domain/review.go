package domain

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ProductGIDPrefix is the canonical global-identifier form the Admin API
// expects for product references.
const ProductGIDPrefix = "gid://shopify/Product/"

const (
	RatingMin = 1
	RatingMax = 5
)

// ReviewStatus is stamped on every created review. There is no moderation
// queue; submissions go live immediately.
const ReviewStatus = "approved"

// Submission is the raw field bag taken off the storefront form, before any
// validation. The shop may come from either the form or a proxy header.
type Submission struct {
	Shop      string
	ProductID string
	Rating    string
	Title     string
	Body      string
	Author    string
	Email     string
	ReturnTo  string
}

// Review holds the normalized fields of a submission that passed validation.
type Review struct {
	Shop       string
	ProductGID string
	Rating     int
	Title      string
	Body       string
	Author     string
	Email      string
}

var plainDecimalPattern = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?$`)

// NormalizeProductGID converts a loose product reference into the canonical
// gid form. Already-canonical input is returned unchanged. Anything else must
// be a plain decimal number strictly greater than zero; the digits are
// embedded verbatim, fractional values included (the Admin API does its own
// validation downstream). Exponent and hex-float syntax are rejected so the
// canonical reference only ever carries plain digits. Everything else fails.
func NormalizeProductGID(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, ProductGIDPrefix) {
		return trimmed, true
	}
	if !plainDecimalPattern.MatchString(trimmed) {
		return "", false
	}
	n, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsInf(n, 0) || n <= 0 {
		return "", false
	}
	return ProductGIDPrefix + trimmed, true
}

// ValidateSubmission checks a raw submission and returns the normalized
// review. Checks run in a fixed order and stop at the first failure, so a
// submission missing its shop reports MissingShop even when the rating is
// also bad.
func ValidateSubmission(sub Submission) (Review, FailureReason) {
	shop := strings.TrimSpace(sub.Shop)
	if shop == "" {
		return Review{}, ReasonMissingShop
	}
	gid, ok := NormalizeProductGID(sub.ProductID)
	if !ok {
		return Review{}, ReasonInvalidProduct
	}
	rating, err := strconv.Atoi(strings.TrimSpace(sub.Rating))
	if err != nil || rating < RatingMin || rating > RatingMax {
		return Review{}, ReasonInvalidRating
	}
	return Review{
		Shop:       shop,
		ProductGID: gid,
		Rating:     rating,
		Title:      sub.Title,
		Body:       sub.Body,
		Author:     sub.Author,
		Email:      sub.Email,
	}, ""
}
