package handler

import (
	"log/slog"
	"net/http"

	"github.com/a-h/templ"

	"github.com/mcoot/torosvacas/internal/web/middleware"
	"github.com/mcoot/torosvacas/internal/web/templates/layout"
	"github.com/mcoot/torosvacas/internal/web/templates/pages"
)

// render writes an HTML page with the given status
func render(w http.ResponseWriter, r *http.Request, logger *slog.Logger, status int, page templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := page.Render(r.Context(), w); err != nil {
		logger.Error("failed to render page",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
	}
}

// renderError writes the shared error page
func renderError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, status int, message string) {
	render(w, r, logger, status, pages.Error(pages.ErrorData{
		PageData: layout.PageData{
			Title: http.StatusText(status),
			User:  middleware.GetUser(r.Context()),
		},
		Message: message,
	}))
}
