package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NewRouter registers every route on a fresh chi router. middlewares are
// applied in order ahead of all routes.
func NewRouter(s *Server, middlewares ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(middlewares...)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, codeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
	})

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)
	if s.metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", s.metricsHandler)
	}

	r.Route("/trips", func(r chi.Router) {
		r.Get("/", s.ListTrips)
		r.Post("/", s.CreateTrip)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetTrip)
			r.Put("/", s.UpdateTrip)
			r.Delete("/", s.DeleteTrip)
			r.Get("/comments", s.ListComments)
			r.Post("/comments", s.CreateComment)
		})
	})

	r.Get("/cities", s.ListCities)
	r.Get("/languages", s.ListLanguages)

	r.Route("/dates", func(r chi.Router) {
		r.Get("/today", s.GetToday)
		r.Get("/check", s.CheckDate)
		r.Get("/display", s.GetDisplayDate)
	})

	r.Get("/export", s.GetExport)
	return r
}
