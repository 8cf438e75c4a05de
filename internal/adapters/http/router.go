package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type RouterConfig struct {
	APIKey               string
	APISecret            string
	VerifyProxySignature bool
}

func NewRouter(handler *Handler, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/readyz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	})

	r.Get("/", handler.adminHome)
	r.Group(func(r chi.Router) {
		r.Use(sessionTokenMiddleware(cfg.APIKey, cfg.APISecret))
		r.Get("/admin/api/status", handler.adminStatus)
	})

	r.Group(func(r chi.Router) {
		r.Use(proxySignatureMiddleware(cfg.APISecret, cfg.VerifyProxySignature))
		r.Post("/proxy/reviews", handler.submitReview)
	})

	r.Post("/webhooks/app_uninstalled", handler.appUninstalled)

	return r
}
