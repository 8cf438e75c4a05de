package http

import (
	"io"
	"net/http"
	"strings"

	"github.com/Ghani-Agu/app-reviews/internal/application"
)

type Handler struct {
	service       *application.Service
	webhookSecret string
}

func NewHandler(service *application.Service, webhookSecret string) *Handler {
	return &Handler{service: service, webhookSecret: webhookSecret}
}

// submitReview maps the loosely-typed form fields into a typed input at the
// boundary and hands it to the pipeline. The shop may arrive as a form field
// or as the proxy-forwarded header.
func (h *Handler) submitReview(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", "malformed form body", requestIDFromContext(r.Context()))
		return
	}
	shop := strings.TrimSpace(r.Form.Get("shop"))
	if shop == "" {
		shop = strings.TrimSpace(r.Header.Get("X-Shopify-Shop-Domain"))
	}
	productID := r.Form.Get("product_id")
	if productID == "" {
		productID = r.Form.Get("productId")
	}
	directive := h.service.SubmitReview(r.Context(), application.SubmitReviewInput{
		Shop:      shop,
		ProductID: productID,
		Rating:    r.Form.Get("rating"),
		Title:     r.Form.Get("title"),
		Body:      r.Form.Get("body"),
		Author:    r.Form.Get("author"),
		Email:     r.Form.Get("email"),
		ReturnTo:  r.Form.Get("return_to"),
	})
	renderConfirmation(w, directive)
}

func (h *Handler) adminHome(w http.ResponseWriter, r *http.Request) {
	renderAdmin(w, strings.TrimSpace(r.URL.Query().Get("shop")))
}

func (h *Handler) adminStatus(w http.ResponseWriter, r *http.Request) {
	shop := shopFromContext(r.Context())
	status, err := h.service.Status(r.Context(), shop)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "status lookup failed", requestIDFromContext(r.Context()))
		return
	}
	writeJSON(w, http.StatusOK, status)
}

// appUninstalled handles the platform uninstall webhook: verify the body
// signature, drop the shop's sessions, then its cache entry. Acknowledged
// only after both are gone.
func (h *Handler) appUninstalled(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", "unreadable body", requestIDFromContext(r.Context()))
		return
	}
	if !validWebhookSignature(body, r.Header.Get("X-Shopify-Hmac-Sha256"), h.webhookSecret) {
		writeError(w, http.StatusUnauthorized, "unauthorized", "webhook signature mismatch", requestIDFromContext(r.Context()))
		return
	}
	shop := strings.TrimSpace(r.Header.Get("X-Shopify-Shop-Domain"))
	if shop == "" {
		writeError(w, http.StatusBadRequest, "invalid_input", "missing shop domain header", requestIDFromContext(r.Context()))
		return
	}
	if err := h.service.RevokeShop(r.Context(), shop); err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "revocation failed", requestIDFromContext(r.Context()))
		return
	}
	w.WriteHeader(http.StatusOK)
}
