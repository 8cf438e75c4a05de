package http

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/Ghani-Agu/app-reviews/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

func renderConfirmation(w http.ResponseWriter, directive domain.Directive) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	status := http.StatusOK
	if !directive.OK {
		status = http.StatusUnprocessableEntity
	}
	w.WriteHeader(status)
	_ = pageTemplates.ExecuteTemplate(w, "confirmation.html", directive)
}

func renderAdmin(w http.ResponseWriter, shop string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = pageTemplates.ExecuteTemplate(w, "admin.html", struct{ Shop string }{Shop: shop})
}
