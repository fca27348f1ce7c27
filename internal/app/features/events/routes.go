// internal/app/features/events/routes.go
package events

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns the event endpoints: reads are public, mutations pass
// through requireAdmin.
func Routes(h *Handler, requireAdmin func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeList) // mounted under /events
	r.Get("/{id}", h.ServeGet)

	r.Group(func(r chi.Router) {
		r.Use(requireAdmin)
		r.Post("/", h.ServeCreate)
		r.Patch("/{id}", h.ServeUpdate)
		r.Delete("/{id}", h.ServeDelete)
	})
	return r
}
