package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/permacache/permacache/pkg/item"
)

// StartServer starts the HTTP server with all routes configured
func StartServer(store ItemStore, pool *item.BufferPool, config ServerConfig) error {
	metrics := NewMetrics()
	server := NewServer(store, pool, config, metrics)

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(requestIDMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "HEAD", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"X-Item-Flags", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Prometheus metrics endpoint (unprotected for scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API key authentication middleware for protected routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(apiKeyMiddleware(config.APIKey))

		r.Get("/health", metrics.InstrumentHandler("GET", "/api/v1/health", server.handleHealth))

		r.Put("/cache/{key}", metrics.InstrumentHandler("PUT", "/api/v1/cache/{key}", server.handlePut))
		r.Get("/cache/{key}", metrics.InstrumentHandler("GET", "/api/v1/cache/{key}", server.handleGet))
		r.Head("/cache/{key}", metrics.InstrumentHandler("HEAD", "/api/v1/cache/{key}", server.handleExists))
		r.Delete("/cache/{key}", metrics.InstrumentHandler("DELETE", "/api/v1/cache/{key}", server.handleDelete))

		r.Get("/stats", metrics.InstrumentHandler("GET", "/api/v1/stats", server.handleStats))
	})

	addr := fmt.Sprintf("%s:%d", config.Bind, config.Port)
	fmt.Printf("Starting Permacache server on %s\n", addr)

	return http.ListenAndServe(addr, r)
}
