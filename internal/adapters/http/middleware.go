package http

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	shopKey      contextKey = "shop"
)

func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := strings.TrimSpace(r.Header.Get("X-Request-Id"))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", requestID)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, requestID)))
	})
}

// proxySignatureMiddleware verifies the platform's application-proxy
// signature: hex HMAC-SHA256 of the sorted query parameters (signature param
// excluded, multi-values comma-joined, pairs concatenated with no separator)
// under the app shared secret.
func proxySignatureMiddleware(secret string, enabled bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !enabled {
				next.ServeHTTP(w, r)
				return
			}
			if !validProxySignature(r.URL.Query(), secret) {
				writeError(w, http.StatusForbidden, "invalid_signature", "proxy signature mismatch", requestIDFromContext(r.Context()))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func validProxySignature(query url.Values, secret string) bool {
	provided := query.Get("signature")
	if provided == "" {
		return false
	}
	keys := make([]string, 0, len(query))
	for key := range query {
		if key == "signature" {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	var sb strings.Builder
	for _, key := range keys {
		sb.WriteString(key)
		sb.WriteString("=")
		sb.WriteString(strings.Join(query[key], ","))
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(sb.String()))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(provided))
}

// sessionTokenMiddleware guards embedded-admin API routes. Session tokens are
// HS256 JWTs signed with the app secret; the shop is taken from the dest
// claim and stored on the request context.
func sessionTokenMiddleware(apiKey, secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := strings.TrimSpace(r.Header.Get("Authorization"))
			if !strings.HasPrefix(strings.ToLower(auth), "bearer ") {
				writeError(w, http.StatusUnauthorized, "unauthorized", "missing session token", requestIDFromContext(r.Context()))
				return
			}
			shop, err := verifySessionToken(strings.TrimSpace(auth[7:]), apiKey, secret)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "unauthorized", "invalid session token", requestIDFromContext(r.Context()))
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), shopKey, shop)))
		})
	}
}

func verifySessionToken(raw, apiKey, secret string) (string, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(
		raw,
		claims,
		func(token *jwt.Token) (any, error) {
			if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
				return nil, fmt.Errorf("unexpected signing method: %s", token.Method.Alg())
			}
			return []byte(secret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(apiKey),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(10*time.Second),
	)
	if err != nil {
		return "", fmt.Errorf("validate session token: %w", err)
	}
	if !parsed.Valid {
		return "", fmt.Errorf("invalid session token")
	}
	dest, _ := claims["dest"].(string)
	shop := strings.TrimPrefix(strings.TrimSpace(dest), "https://")
	if shop == "" {
		return "", fmt.Errorf("session token missing dest")
	}
	return shop, nil
}

// validWebhookSignature checks the webhook header: base64 HMAC-SHA256 of the
// raw request body under the app shared secret.
func validWebhookSignature(body []byte, header, secret string) bool {
	if header == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(header))
}

func requestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(requestIDKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

func shopFromContext(ctx context.Context) string {
	if v := ctx.Value(shopKey); v != nil {
		if shop, ok := v.(string); ok {
			return shop
		}
	}
	return ""
}
