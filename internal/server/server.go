// Package server provides the HTTP REST API for the intelligence engine.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hykwon-dot/lira-intel/internal/blend"
	"github.com/hykwon-dot/lira-intel/internal/compliance"
	"github.com/hykwon-dot/lira-intel/internal/db"
	"github.com/hykwon-dot/lira-intel/internal/insights"
	"github.com/hykwon-dot/lira-intel/internal/llm"
	"github.com/hykwon-dot/lira-intel/internal/scenario"
	"github.com/hykwon-dot/lira-intel/internal/scoring"
	"github.com/hykwon-dot/lira-intel/internal/server/ratelimit"
	"github.com/hykwon-dot/lira-intel/internal/trend"
)

// Server represents the HTTP server
type Server struct {
	httpServer   *http.Server
	db           *db.DB
	store        trend.Store
	engine       *insights.Engine
	scorer       *scoring.TwinScorer
	registry     *scenario.Registry
	scanner      *compliance.Scanner
	orchestrator *blend.Orchestrator
	llmClient    llm.Client
	rateLimiter  *ratelimit.Limiter
}

// Config holds server configuration
type Config struct {
	Port        int
	DatabaseURL string
	APIKey      string
	LLMTimeout  time.Duration
}

// New creates a new server instance. Without a database URL the trend store
// is in-memory; without an API key scenario analyses stay heuristic-only.
func New(cfg Config) (*Server, error) {
	s := &Server{}

	var store trend.Store
	if cfg.DatabaseURL != "" {
		database, err := db.Connect(context.Background(), cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		s.db = database
		store = trend.NewResilient(db.NewTrendStore(database))
	} else {
		log.Println("no database configured, using in-memory trend store")
		store = trend.NewMemoryStore()
	}
	s.store = store
	s.engine = insights.NewEngine(store)

	s.registry = scenario.Builtin()
	s.scorer = scoring.NewTwinScorer(s.registry)
	s.scanner = compliance.NewScanner()

	if cfg.APIKey != "" {
		client, err := llm.NewClient(context.Background(), llm.DefaultConfig(), cfg.APIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create LLM client: %w", err)
		}
		s.llmClient = client
		s.orchestrator = blend.NewOrchestrator(client, cfg.LLMTimeout)
	} else {
		log.Println("no API key configured, scenario analyses will be heuristic-only")
		s.orchestrator = blend.NewOrchestrator(nil, cfg.LLMTimeout)
	}

	// Initialize rate limiter
	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	// Setup router
	mux := http.NewServeMux()
	mux.HandleFunc("POST /insights", s.handleInsights)
	mux.HandleFunc("POST /insights/stream", s.handleInsightsStream)
	mux.HandleFunc("POST /match", s.handleMatch)
	mux.HandleFunc("POST /twin", s.handleTwin)
	mux.HandleFunc("POST /compliance", s.handleCompliance)
	mux.HandleFunc("GET /trends", s.handleTrends)
	mux.HandleFunc("GET /scenario/categories", s.handleScenarioCategories)
	mux.HandleFunc("GET /scenario/categories/{category}", s.handleScenarioVariables)
	mux.HandleFunc("GET /analyses", s.handleListAnalyses)
	mux.HandleFunc("GET /analyses/{id}", s.handleGetAnalysis)
	mux.HandleFunc("GET /health", s.handleHealth)

	// Create HTTP server
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(mux))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
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

	// Stop rate limiter cleanup goroutine
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}

	if s.llmClient != nil {
		s.llmClient.Close() //nolint:errcheck
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
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		if !allowed {
			s.setRateLimitHeaders(w, info)
			s.rateLimitResponse(w, info)
			return
		}

		s.setRateLimitHeaders(w, info)
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

// extractClientID extracts the client identifier from the request.
// For MVP, this uses the IP address from RemoteAddr.
// In the future, this could use X-Forwarded-For header (only from trusted proxies).
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]interface{}{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
