package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/Ghani-Agu/app-reviews/internal/domain"
)

const maxLoggedBody = 2048

// Client submits reviews to a shop's Admin GraphQL endpoint. One synchronous
// call per submission; the caller resubmits on failure.
type Client struct {
	httpClient *http.Client
	apiVersion string
	logger     *slog.Logger

	// baseURL overrides the per-shop endpoint in tests.
	baseURL string
}

type ClientConfig struct {
	HTTPClient *http.Client
	APIVersion string
	BaseURL    string
}

func NewClient(cfg ClientConfig) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	apiVersion := cfg.APIVersion
	if apiVersion == "" {
		apiVersion = "2024-07"
	}
	return &Client{
		httpClient: httpClient,
		apiVersion: apiVersion,
		logger:     slog.Default(),
		baseURL:    cfg.BaseURL,
	}
}

type createReviewResponse struct {
	Data struct {
		MetaobjectCreate struct {
			Metaobject struct {
				ID string `json:"id"`
			} `json:"metaobject"`
			UserErrors []userError `json:"userErrors"`
		} `json:"metaobjectCreate"`
	} `json:"data"`
}

type userError struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
}

// Submit issues the create mutation and classifies the result. Network errors
// map to a transport failure, non-JSON bodies to a bad response, a nonempty
// userErrors list to a remote validation failure; everything else must carry
// the created metaobject id.
func (c *Client) Submit(ctx context.Context, token string, review domain.Review, submittedAt time.Time) domain.Outcome {
	body, err := json.Marshal(buildCreateRequest(review, submittedAt))
	if err != nil {
		return domain.Failure(domain.ReasonBadResponse)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(review.Shop), bytes.NewReader(body))
	if err != nil {
		return domain.Failure(domain.ReasonTransport)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WarnContext(ctx, "admin api call failed",
			"module", "shopify.client",
			"operation", "metaobject_create",
			"shop", review.Shop,
			"error", err,
		)
		return domain.Failure(domain.ReasonTransport)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return domain.Failure(domain.ReasonTransport)
	}

	var parsed createReviewResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		c.logBody(ctx, review.Shop, "non-json response", resp.StatusCode, raw)
		return domain.Failure(domain.ReasonBadResponse)
	}
	if errs := parsed.Data.MetaobjectCreate.UserErrors; len(errs) > 0 {
		c.logger.WarnContext(ctx, "admin api rejected review",
			"module", "shopify.client",
			"operation", "metaobject_create",
			"shop", review.Shop,
			"user_errors", formatUserErrors(errs),
		)
		return domain.Failure(domain.ReasonRemoteValidation)
	}
	id := parsed.Data.MetaobjectCreate.Metaobject.ID
	if id == "" {
		c.logBody(ctx, review.Shop, "response missing metaobject id", resp.StatusCode, raw)
		return domain.Failure(domain.ReasonBadResponse)
	}
	return domain.Success(id)
}

func (c *Client) endpoint(shop string) string {
	if c.baseURL != "" {
		return fmt.Sprintf("%s/admin/api/%s/graphql.json", c.baseURL, c.apiVersion)
	}
	return fmt.Sprintf("https://%s/admin/api/%s/graphql.json", shop, c.apiVersion)
}

func (c *Client) logBody(ctx context.Context, shop, msg string, status int, raw []byte) {
	if len(raw) > maxLoggedBody {
		raw = raw[:maxLoggedBody]
	}
	c.logger.WarnContext(ctx, msg,
		"module", "shopify.client",
		"operation", "metaobject_create",
		"shop", shop,
		"status", status,
		"body", string(raw),
	)
}

func formatUserErrors(errs []userError) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, fmt.Sprintf("%v: %s", e.Field, e.Message))
	}
	return out
}
