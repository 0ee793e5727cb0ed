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

	"github.com/jonathan/talentsphere/internal/analysis"
	"github.com/jonathan/talentsphere/internal/batch"
	"github.com/jonathan/talentsphere/internal/config"
	"github.com/jonathan/talentsphere/internal/db"
	"github.com/jonathan/talentsphere/internal/server/middleware"
	"github.com/jonathan/talentsphere/internal/server/ratelimit"
)

// DefaultMaxUploadBytes bounds the request body of upload endpoints.
const DefaultMaxUploadBytes = 32 << 20

// Server serves the analysis API.
type Server struct {
	httpServer  *http.Server
	store       db.Store
	analyzer    *analysis.Analyzer
	processor   *batch.Processor
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	userService *UserService
	authHandler *AuthHandler
	maxUpload   int64
}

// Config is what New needs beyond the environment.
type Config struct {
	Port           int
	Store          db.Store
	Analyzer       *analysis.Analyzer // optional, a default analyzer is built when nil
	Workers        int
	MaxUploadBytes int64
}

// Dependencies are the environment derived settings New loads itself.
type Dependencies struct {
	Password  *config.PasswordConfig
	JWT       *config.JWTConfig
	RateLimit *config.RateLimitConfig
}

// New creates a new server instance with settings read from the environment
func New(cfg Config) (*Server, error) {
	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	rateConfig, err := config.NewRateLimitConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit config: %w", err)
	}

	return NewWithDependencies(cfg, Dependencies{
		Password:  passwordConfig,
		JWT:       jwtConfig,
		RateLimit: rateConfig,
	})
}

// NewWithDependencies creates a server from explicit settings.
func NewWithDependencies(cfg Config, deps Dependencies) (*Server, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("server requires a store")
	}
	if deps.Password == nil || deps.JWT == nil || deps.RateLimit == nil {
		return nil, fmt.Errorf("server requires password, JWT and rate limit settings")
	}

	analyzer := cfg.Analyzer
	if analyzer == nil {
		analyzer = analysis.New()
	}
	maxUpload := cfg.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = DefaultMaxUploadBytes
	}

	s := &Server{
		store:       cfg.Store,
		analyzer:    analyzer,
		processor:   batch.NewProcessor(analyzer, cfg.Workers),
		rateLimiter: ratelimit.NewLimiter(ratelimit.NewConfig(deps.RateLimit)),
		jwtService:  NewJWTService(deps.JWT),
		maxUpload:   maxUpload,
	}
	s.userService = NewUserService(cfg.Store, deps.Password)
	s.authHandler = NewAuthHandler(s.userService, s.jwtService)

	validator := s.jwtService.AsTokenValidator()
	requireAuth := middleware.AuthMiddleware(validator)
	optionalAuth := middleware.OptionalAuthMiddleware(validator)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /auth/register", s.authHandler.Register)
	mux.HandleFunc("POST /auth/login", s.authHandler.Login)
	mux.Handle("POST /analyze", optionalAuth(http.HandlerFunc(s.handleAnalyze)))
	mux.Handle("POST /rank", optionalAuth(http.HandlerFunc(s.handleRank)))
	mux.Handle("GET /scans", requireAuth(http.HandlerFunc(s.handleListScans)))

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(mux))),
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 300 * time.Second, // batch ranking of large uploads
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the fully wrapped request handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins listening for requests and blocks until SIGINT or SIGTERM
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-stop:
	case err := <-errCh:
		s.Close()
		return fmt.Errorf("server error: %w", err)
	}
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.Close()
	log.Println("Server stopped")
	return nil
}

// Close stops background work and releases the store.
func (s *Server) Close() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	s.store.Close()
}

// withCORS answers preflight requests and allows any origin.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit rejects requests over their endpoint budget with 429.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth reports liveness and whether skill extraction is available.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	status := map[string]string{"status": "ok"}
	if ok, err := s.analyzer.SkillsAvailable(); !ok {
		status["skills"] = err.Error()
	}
	jsonResponse(w, http.StatusOK, status)
}

// jsonResponse encodes data as the response body.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes {"error": message} with status.
func errorResponse(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}

// extractClientID keys rate limits by the remote host.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets the X-RateLimit-* headers.
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
		secs := int(info.RetryAfter.Seconds()) + 1
		response["retry_after"] = secs
		w.Header().Set("Retry-After", fmt.Sprintf("%d", secs))
	}

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	jsonResponse(w, http.StatusTooManyRequests, response)
}
