// internal/app/features/profile/routes.go
package profile

import "github.com/go-chi/chi/v5"

// Routes is mounted under /profiles.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/{userID}/sync", h.HandleSync)
	r.Post("/{userID}/photo", h.HandlePhoto)
	r.Post("/{userID}/ensure-creator", h.HandleEnsureCreator)
	return r
}
