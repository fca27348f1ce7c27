// internal/app/features/members/routes.go
package members

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter with the directory moderation endpoints.
// The caller gates the whole subtree behind the admin role.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeList) // mounted under /members
	r.Get("/pending", h.ServePending)
	r.Get("/approved", h.ServeApproved)
	r.Post("/{id}/approve", h.ServeApprove)
	r.Post("/{id}/reject", h.ServeReject)
	r.Put("/{id}/role", h.ServeAssignRole)
	r.Put("/{id}/password", h.ServeResetPassword)
	r.Patch("/{id}", h.ServeUpdate)
	return r
}
