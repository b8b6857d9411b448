package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"smartcalc/internal/assistant"
	"smartcalc/internal/calculator"
	"smartcalc/internal/handlers"
	"smartcalc/internal/observability"
	"smartcalc/internal/session"
)

// NewRouter wires the middleware stack and all domain routes. The session
// store and completion backend are injected so tests can supply their own.
func NewRouter(sessions *session.Store, completer assistant.Completer) http.Handler {

	r := chi.NewRouter()

	r.Use(observability.RequestIDMiddleware)
	r.Use(observability.TracingMiddleware)
	r.Use(observability.LoggingMiddleware)
	r.Use(session.Middleware)

	r.Get("/health", handlers.Health)

	r.Handle("/metrics", observability.PrometheusHandler())

	calculator.NewHandler(sessions).RegisterRoutes(r)
	assistant.NewHandler(sessions, completer).RegisterRoutes(r)

	return r
}
