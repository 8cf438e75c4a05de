package http

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/Ghani-Agu/app-reviews/internal/adapters/shopify"
	"github.com/Ghani-Agu/app-reviews/internal/application"
	"github.com/Ghani-Agu/app-reviews/internal/domain"
)

type memSessionRepo struct {
	sessions map[string]domain.Session
}

func (m *memSessionRepo) FindOfflineByShop(_ context.Context, shop string) (domain.Session, error) {
	session, ok := m.sessions[shop]
	if !ok {
		return domain.Session{}, domain.ErrNotFound
	}
	return session, nil
}

func (m *memSessionRepo) DeleteByShop(_ context.Context, shop string) (int64, error) {
	if _, ok := m.sessions[shop]; !ok {
		return 0, nil
	}
	delete(m.sessions, shop)
	return 1, nil
}

type memTokenCache struct {
	entries map[string]string
}

func (m *memTokenCache) Get(_ context.Context, shop string) (string, bool, error) {
	token, ok := m.entries[shop]
	return token, ok, nil
}

func (m *memTokenCache) Set(_ context.Context, shop, token string, _ time.Duration) error {
	if m.entries == nil {
		m.entries = map[string]string{}
	}
	m.entries[shop] = token
	return nil
}

func (m *memTokenCache) Invalidate(_ context.Context, shop string) error {
	delete(m.entries, shop)
	return nil
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, string, []byte, string) error { return nil }

// newTestRouter wires the real pipeline against a stub Admin API endpoint.
// Proxy signature verification is off; the middleware has its own tests.
func newTestRouter(t *testing.T, adminHandler http.HandlerFunc) (http.Handler, *memSessionRepo) {
	t.Helper()
	remote := httptest.NewServer(adminHandler)
	t.Cleanup(remote.Close)

	repo := &memSessionRepo{sessions: map[string]domain.Session{
		"shop.example": {Shop: "shop.example", AccessToken: "tok-123"},
	}}
	service := application.NewService(application.Dependencies{
		Sessions:  repo,
		Tokens:    &memTokenCache{},
		Submitter: shopify.NewClient(shopify.ClientConfig{BaseURL: remote.URL}),
		Publisher: nopPublisher{},
	})
	handler := NewHandler(service, testSecret)
	router := NewRouter(handler, RouterConfig{APIKey: "api-key", APISecret: testSecret, VerifyProxySignature: false})
	return router, repo
}

func postForm(router http.Handler, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/proxy/reviews", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func validForm() url.Values {
	form := url.Values{}
	form.Set("shop", "shop.example")
	form.Set("product_id", "42")
	form.Set("rating", "5")
	form.Set("title", "Great")
	form.Set("body", "Loved it")
	form.Set("author", "Jane")
	form.Set("email", "jane@example.com")
	form.Set("return_to", "/products/tea")
	return form
}

func TestSubmitReviewEndToEnd(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Shopify-Access-Token") != "tok-123" {
			t.Errorf("expected resolved token on remote call")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"metaobjectCreate":{"metaobject":{"id":"gid://x/Metaobject/1"},"userErrors":[]}}}`))
	})

	rec := postForm(router, validForm())
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	page := rec.Body.String()
	if !strings.Contains(page, "Thanks for your review") {
		t.Fatalf("expected confirmation page, got %s", page)
	}
	if !strings.Contains(page, `href="/products/tea"`) {
		t.Fatalf("expected return link, got %s", page)
	}
}

func TestSubmitReviewInvalidRatingNoRemoteCall(t *testing.T) {
	t.Parallel()

	remoteCalled := false
	router, _ := newTestRouter(t, func(http.ResponseWriter, *http.Request) {
		remoteCalled = true
	})

	form := validForm()
	form.Set("rating", "0")
	rec := postForm(router, form)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Rating must be 1..5") {
		t.Fatalf("expected rating message, got %s", rec.Body.String())
	}
	if remoteCalled {
		t.Fatalf("expected no remote call for invalid input")
	}
}

func TestSubmitReviewShopFromProxyHeader(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"metaobjectCreate":{"metaobject":{"id":"gid://x/Metaobject/2"},"userErrors":[]}}}`))
	})

	form := validForm()
	form.Del("shop")
	req := httptest.NewRequest(http.MethodPost, "/proxy/reviews", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-Shopify-Shop-Domain", "shop.example")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected header fallback to succeed, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestSubmitReviewRemoteValidationNotLeaked(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"metaobjectCreate":{"metaobject":null,"userErrors":[{"field":["rating"],"message":"secret remote detail"}]}}}`))
	})

	rec := postForm(router, validForm())
	page := rec.Body.String()
	if !strings.Contains(page, "Validation error") {
		t.Fatalf("expected generic validation message, got %s", page)
	}
	if strings.Contains(page, "secret remote detail") {
		t.Fatalf("remote error detail leaked to the submitter")
	}
}

func TestAppUninstalledWebhookRevokes(t *testing.T) {
	t.Parallel()

	router, repo := newTestRouter(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"metaobjectCreate":{"metaobject":{"id":"gid://x/Metaobject/3"},"userErrors":[]}}}`))
	})

	body := []byte(`{"domain":"shop.example"}`)
	mac := hmac.New(sha256.New, []byte(testSecret))
	mac.Write(body)

	req := httptest.NewRequest(http.MethodPost, "/webhooks/app_uninstalled", strings.NewReader(string(body)))
	req.Header.Set("X-Shopify-Hmac-Sha256", base64.StdEncoding.EncodeToString(mac.Sum(nil)))
	req.Header.Set("X-Shopify-Shop-Domain", "shop.example")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if _, ok := repo.sessions["shop.example"]; ok {
		t.Fatalf("expected sessions deleted after webhook")
	}

	// The next submission must come back unauthorized.
	rec = postForm(router, validForm())
	if !strings.Contains(rec.Body.String(), "App not authorized for this shop") {
		t.Fatalf("expected unauthorized after uninstall, got %s", rec.Body.String())
	}
}

func TestAppUninstalledWebhookBadSignature(t *testing.T) {
	t.Parallel()

	router, repo := newTestRouter(t, func(http.ResponseWriter, *http.Request) {})

	req := httptest.NewRequest(http.MethodPost, "/webhooks/app_uninstalled", strings.NewReader(`{}`))
	req.Header.Set("X-Shopify-Hmac-Sha256", "bm90LXZhbGlk")
	req.Header.Set("X-Shopify-Shop-Domain", "shop.example")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if _, ok := repo.sessions["shop.example"]; !ok {
		t.Fatalf("expected sessions untouched on bad signature")
	}
}

func TestAdminStatusRequiresSessionToken(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t, func(http.ResponseWriter, *http.Request) {})

	req := httptest.NewRequest(http.MethodGet, "/admin/api/status", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without session token, got %d", rec.Code)
	}
}

func TestAdminHomeRenders(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t, func(http.ResponseWriter, *http.Request) {})

	req := httptest.NewRequest(http.MethodGet, "/?shop=shop.example", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "shop.example") {
		t.Fatalf("expected admin page with shop, got %d: %s", rec.Code, rec.Body.String())
	}
}
