package calculator

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts all calculator endpoints onto the given router
// under the /calculator prefix.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/calculator", func(r chi.Router) {
		r.Get("/history", h.History)
		r.Delete("/history", h.ClearHistory)
		r.Post("/{operation}", h.Evaluate)
	})
}
