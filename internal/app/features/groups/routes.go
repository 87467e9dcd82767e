// internal/app/features/groups/routes.go
package groups

import "github.com/go-chi/chi/v5"

// Routes returns the /groups subrouter.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	// LIST (?creator= or ?member=)
	r.Get("/", h.ServeList)

	// CREATE
	r.Post("/", h.HandleCreate)

	r.Route("/{id}", func(gr chi.Router) {
		gr.Get("/", h.ServeGroup)
		gr.Patch("/", h.HandleUpdate)
		gr.Delete("/", h.HandleDeactivate)

		// MEMBERS
		gr.Post("/members", h.HandleAddMember)
		gr.Post("/creator", h.HandleEnsureCreator)
	})

	return r
}
