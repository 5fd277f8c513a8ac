package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

func noCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		w.Header().Set("Pragma", "no-cache")
		w.Header().Set("Expires", "0")
		next.ServeHTTP(w, r)
	})
}

func requestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Debug().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("took", time.Since(start)).
				Msg("request")
		})
	}
}

// NewRouter wires the HTML views, the JSON API and the metrics endpoint.
// metricsHandler may be nil.
func NewRouter(h *Handlers, metricsHandler http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(requestLogger(h.logger))

	// Views and form actions
	r.Group(func(r chi.Router) {
		r.Use(noCache)
		r.Get("/", h.Index)
		r.Post("/golfers", h.AddGolfer)
		r.Post("/holes/difficulties", h.UpdateDifficulties)
		r.Post("/calculate", h.Calculate)
		r.Post("/back", h.Back)
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/golfers", h.ListGolfers)
		r.Post("/golfers", h.CreateGolfer)
		r.Post("/golfers/import", h.ImportGolfers)
		r.Get("/holes", h.ListHoles)
		r.Post("/holes/difficulties", h.SetDifficulties)
		r.Get("/bumps", h.Bumps)
		r.Get("/course/export", h.ExportCourse)
		r.Post("/reset", h.Reset)
	})

	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}
	return r
}
