package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func buildRouter(s *stateStore) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	// UI/static
	r.Get("/", s.homeHandler)
	r.Get("/static/script.js", scriptHandler)

	// Pages
	r.Get("/solver", s.solverPageHandler)
	r.Post("/solver", s.solveHandler)
	r.Get("/tableau", s.tableauPageHandler)
	r.Get("/tableau/{iteration}/export.csv", s.exportIterationHandler)

	// Health/info
	r.Get("/healthz", s.healthzHandler)
	r.Get("/api/v1/server-info", s.serverInfoHandler)

	// Session API
	r.Post("/api/sidebar/toggle", s.toggleSidebarHandler)

	return r
}
