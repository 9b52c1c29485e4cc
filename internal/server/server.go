// Package server exposes the analysis pipeline over HTTP.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"brand-insights-go/internal/logger"
	"brand-insights-go/internal/pipeline"
	"brand-insights-go/internal/store"
)

type Server struct {
	server *http.Server
	router *chi.Mux
}

func NewServer(addr string, engine *pipeline.Engine, results *store.Store, log *logger.Logger) *Server {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(90 * time.Second))

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	h := newHandler(engine, results, log)

	router.Get("/healthz", h.health)
	router.Route("/api/v1", func(r chi.Router) {
		r.Post("/analyze", h.analyze)
		r.Post("/brand", h.analyzeBrand)
		r.Post("/compare", h.compare)
		r.Get("/results", h.listResults)
		r.Get("/results/{runID}", h.getResult)
		r.Get("/stats", h.stats)
	})

	return &Server{
		server: &http.Server{
			Addr:         addr,
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 120 * time.Second,
			IdleTimeout:  120 * time.Second,
		},
		router: router,
	}
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) ListenAndServe() error {
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
