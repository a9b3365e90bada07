// Package server provides the HTTP REST API for the screening pipeline.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmorrow/compliant-ats/internal/db"
	"github.com/jmorrow/compliant-ats/internal/feedback"
	"github.com/jmorrow/compliant-ats/internal/llm"
	"github.com/jmorrow/compliant-ats/internal/pipeline"
	"github.com/jmorrow/compliant-ats/internal/rewrite"
	"github.com/jmorrow/compliant-ats/internal/server/middleware"
)

// Config holds server configuration
type Config struct {
	Port        int
	AuthToken   string // empty disables authentication
	Concurrency int
	Verbose     bool
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	pipeline   *pipeline.Pipeline
	feedback   *feedback.Generator
	analyzer   *rewrite.Analyzer
	db         *db.DB // nil when run history is disabled
}

// New creates a new server instance. database may be nil, in which case the
// run-history endpoints respond 503.
func New(cfg Config, client llm.Client, database *db.DB) *Server {
	s := &Server{
		pipeline: pipeline.New(client, &pipeline.Options{
			Concurrency: cfg.Concurrency,
			Verbose:     cfg.Verbose,
		}),
		feedback: feedback.New(client),
		analyzer: rewrite.New(client),
		db:       database,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /rank", s.handleRank)
	mux.HandleFunc("POST /feedback", s.handleFeedback)
	mux.HandleFunc("POST /analyze", s.handleAnalyze)
	mux.HandleFunc("GET /runs", s.handleListRuns)
	mux.HandleFunc("GET /runs/{id}", s.handleGetRun)
	mux.HandleFunc("GET /health", s.handleHealth)

	var handler http.Handler = mux
	if cfg.AuthToken != "" {
		handler = middleware.Auth(cfg.AuthToken, []string{"GET /health"})(handler)
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.withCORS(handler)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // Ranking runs can take a while
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler exposes the configured handler for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins listening for requests and blocks until interrupted.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.db != nil {
		s.db.Close()
	}
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
