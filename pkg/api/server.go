// Package api exposes the codec and the record archive over HTTP.
package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires all routes, middleware and instrumentation for the server
func NewRouter(server *Server, metrics *Metrics) chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(requestIDMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Prometheus metrics endpoint (unprotected for scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API key authentication middleware for protected routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(apiKeyMiddleware(server.config.APIKey, metrics))

		// Health check
		r.Get("/health", metrics.InstrumentHandler("GET", "/api/v1/health", server.handleHealth))

		// Codec operations
		r.Post("/parse", metrics.InstrumentHandler("POST", "/api/v1/parse", server.handleParse))
		r.Post("/serialize", metrics.InstrumentHandler("POST", "/api/v1/serialize", server.handleSerialize))

		// Archive operations
		r.Put("/records/{index}", metrics.InstrumentHandler("PUT", "/api/v1/records/{index}", server.handlePutRecord))
		r.Get("/records/{index}", metrics.InstrumentHandler("GET", "/api/v1/records/{index}", server.handleGetRecord))
		r.Delete("/records/{index}", metrics.InstrumentHandler("DELETE", "/api/v1/records/{index}", server.handleDeleteRecord))

		// Diagnostics
		r.Get("/stats", metrics.InstrumentHandler("GET", "/api/v1/stats", server.handleStats))
	})

	return r
}

// StartServer starts the HTTP server with all routes configured
func StartServer(archive IArchive, config ServerConfig) error {
	metrics := NewMetrics()
	server := NewServer(archive, config, metrics)
	r := NewRouter(server, metrics)

	addr := fmt.Sprintf("%s:%d", config.Bind, config.Port)
	fmt.Printf("Starting FON REST API server on %s\n", addr)
	fmt.Printf("Metrics available at: http://%s/metrics\n", addr)
	return http.ListenAndServe(addr, r)
}
