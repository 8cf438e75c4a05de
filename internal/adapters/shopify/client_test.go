package shopify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Ghani-Agu/app-reviews/internal/domain"
)

var testReview = domain.Review{
	Shop:       "shop.example",
	ProductGID: "gid://shopify/Product/42",
	Rating:     5,
	Title:      "Great",
	Body:       "Loved it",
	Author:     "Jane",
	Email:      "jane@example.com",
}

func newTestClient(serverURL string) *Client {
	return NewClient(ClientConfig{BaseURL: serverURL})
}

func TestSubmitSuccess(t *testing.T) {
	t.Parallel()

	var captured graphqlRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/admin/api/2024-07/graphql.json" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("X-Shopify-Access-Token") != "tok-123" {
			t.Errorf("missing access token header")
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"metaobjectCreate":{"metaobject":{"id":"gid://x/Metaobject/1"},"userErrors":[]}}}`))
	}))
	defer server.Close()

	outcome := newTestClient(server.URL).Submit(context.Background(), "tok-123", testReview, time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC))
	if !outcome.OK() || outcome.ID != "gid://x/Metaobject/1" {
		t.Fatalf("expected success with id, got %+v", outcome)
	}
	if captured.Query == "" {
		t.Fatalf("expected a graphql query in the request body")
	}
}

func TestSubmitRemoteValidationError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"metaobjectCreate":{"metaobject":null,"userErrors":[{"field":["rating"],"message":"bad"}]}}}`))
	}))
	defer server.Close()

	outcome := newTestClient(server.URL).Submit(context.Background(), "tok", testReview, time.Now())
	if outcome.Reason != domain.ReasonRemoteValidation {
		t.Fatalf("expected remote validation failure, got %+v", outcome)
	}
}

func TestSubmitNonJSONBody(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>upstream error</html>"))
	}))
	defer server.Close()

	outcome := newTestClient(server.URL).Submit(context.Background(), "tok", testReview, time.Now())
	if outcome.Reason != domain.ReasonBadResponse {
		t.Fatalf("expected bad response failure, got %+v", outcome)
	}
}

func TestSubmitMissingID(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{}}`))
	}))
	defer server.Close()

	outcome := newTestClient(server.URL).Submit(context.Background(), "tok", testReview, time.Now())
	if outcome.Reason != domain.ReasonBadResponse {
		t.Fatalf("expected bad response for missing id, got %+v", outcome)
	}
}

func TestSubmitTransportError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	outcome := newTestClient(server.URL).Submit(context.Background(), "tok", testReview, time.Now())
	if outcome.Reason != domain.ReasonTransport {
		t.Fatalf("expected transport failure, got %+v", outcome)
	}
}

func TestBuildCreateRequestFields(t *testing.T) {
	t.Parallel()

	submittedAt := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
	req := buildCreateRequest(testReview, submittedAt)

	metaobject, ok := req.Variables["metaobject"].(map[string]any)
	if !ok {
		t.Fatalf("missing metaobject variable")
	}
	if metaobject["type"] != reviewMetaobjectType {
		t.Fatalf("unexpected metaobject type %v", metaobject["type"])
	}
	fields, ok := metaobject["fields"].([]metaobjectField)
	if !ok {
		t.Fatalf("missing fields list")
	}
	want := []metaobjectField{
		{Key: "product", Value: "gid://shopify/Product/42"},
		{Key: "rating", Value: "5"},
		{Key: "title", Value: "Great"},
		{Key: "body", Value: "Loved it"},
		{Key: "author", Value: "Jane"},
		{Key: "email", Value: "jane@example.com"},
		{Key: "status", Value: "approved"},
		{Key: "created_at", Value: "2024-07-01T12:00:00Z"},
	}
	if len(fields) != len(want) {
		t.Fatalf("expected %d fields, got %d", len(want), len(fields))
	}
	for i := range want {
		if fields[i] != want[i] {
			t.Fatalf("field %d: expected %+v, got %+v", i, want[i], fields[i])
		}
	}
}
