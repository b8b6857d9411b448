package assistant

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts the assistant endpoints onto the given router
// under the /assistant prefix.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/assistant", func(r chi.Router) {
		r.Post("/explain", h.Explain)
		r.Post("/solve", h.Solve)
	})
}
