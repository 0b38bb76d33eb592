package http //nolint:revive // directory-based package name, imported with alias

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

const requestTimeout = 30 * time.Second

func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.Heartbeat("/healthz"))

	r.Route("/api/paynow", func(r chi.Router) {
		r.Get("/qr", h.HandleQR)
		r.Post("/qr/custom", h.HandleCustomQR)
		r.Post("/decode", h.HandleDecode)

		r.Route("/requests", func(r chi.Router) {
			r.Use(render.SetContentType(render.ContentTypeJSON))
			r.Post("/", h.HandleIssue)
			r.Get("/{reference}", h.HandleLookup)
		})
	})

	return r
}
