package shopify

import (
	"strconv"
	"time"

	"github.com/Ghani-Agu/app-reviews/internal/domain"
)

const reviewMetaobjectType = "product_review"

const createReviewMutation = `mutation CreateReview($metaobject: MetaobjectCreateInput!) {
  metaobjectCreate(metaobject: $metaobject) {
    metaobject { id }
    userErrors { field message }
  }
}`

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type metaobjectField struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// buildCreateRequest assembles the metaobjectCreate payload. Field order is
// fixed; rating is stringified and the creation timestamp is RFC3339.
func buildCreateRequest(review domain.Review, submittedAt time.Time) graphqlRequest {
	fields := []metaobjectField{
		{Key: "product", Value: review.ProductGID},
		{Key: "rating", Value: strconv.Itoa(review.Rating)},
		{Key: "title", Value: review.Title},
		{Key: "body", Value: review.Body},
		{Key: "author", Value: review.Author},
		{Key: "email", Value: review.Email},
		{Key: "status", Value: domain.ReviewStatus},
		{Key: "created_at", Value: submittedAt.UTC().Format(time.RFC3339)},
	}
	return graphqlRequest{
		Query: createReviewMutation,
		Variables: map[string]any{
			"metaobject": map[string]any{
				"type":   reviewMetaobjectType,
				"fields": fields,
			},
		},
	}
}
