// Package web provides the HTTP server and handlers for the job application
// intake and review service.
package web

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/bilgiconline/isealim/internal/auth"
	"github.com/bilgiconline/isealim/internal/botcheck"
	"github.com/bilgiconline/isealim/internal/config"
	"github.com/bilgiconline/isealim/internal/feed"
	"github.com/bilgiconline/isealim/internal/intake"
	"github.com/bilgiconline/isealim/internal/review"
	"github.com/bilgiconline/isealim/internal/store"
	"github.com/bilgiconline/isealim/internal/web/middleware"
)

// Server is the HTTP server for the application service.
type Server struct {
	cfg      *config.Config
	pipeline *intake.Pipeline
	limiter  *intake.Limiter
	repo     store.Repository
	feed     *feed.Feed
	review   *review.Manager
	auth     *auth.Service
	verifier *botcheck.Verifier
	router   *chi.Mux
	server   *http.Server
}

// NewServer creates a new Server instance wiring all handlers.
func NewServer(
	cfg *config.Config,
	pipeline *intake.Pipeline,
	limiter *intake.Limiter,
	repo store.Repository,
	f *feed.Feed,
	rev *review.Manager,
	authService *auth.Service,
	verifier *botcheck.Verifier,
) *Server {
	s := &Server{
		cfg:      cfg,
		pipeline: pipeline,
		limiter:  limiter,
		repo:     repo,
		feed:     f,
		review:   rev,
		auth:     authService,
		verifier: verifier,
		router:   chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(chimw.RequestID)
	s.router.Use(chimw.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(chimw.Recoverer)
	s.router.Use(chimw.Compress(5))

	// Security hardening
	s.router.Use(securityHeaders)

	if s.cfg.Rate.Enabled {
		limiter := newRateLimiter(s.cfg.Rate.RequestsPerMinute, time.Minute)
		s.router.Use(limiter.middleware)
	}
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		// Applicant side
		r.Post("/applications", s.handleSubmit)

		// Reviewer session
		r.Post("/auth/login", s.handleLogin)
		r.Post("/auth/logout", s.handleLogout)

		// Reviewer side
		r.Group(func(r chi.Router) {
			r.Use(s.auth.Middleware)

			r.Get("/applications", s.handleList)
			r.Get("/applications/stream", s.handleStream)
			r.Patch("/applications/{id}/status", s.handleUpdateStatus)
		})
	})
}

// Start begins listening for HTTP requests.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout, // 0 for SSE
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// securityHeaders adds security headers to all responses.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Prevent MIME type sniffing
		w.Header().Set("X-Content-Type-Options", "nosniff")

		// Prevent clickjacking
		w.Header().Set("X-Frame-Options", "DENY")

		// XSS protection (legacy but still useful for older browsers)
		w.Header().Set("X-XSS-Protection", "1; mode=block")

		// Content Security Policy for the API surface
		w.Header().Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")

		// Control referrer information
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		next.ServeHTTP(w, r)
	})
}

// rateLimiter implements a simple token bucket rate limiter per IP.
type rateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rate     int           // requests per window
	window   time.Duration // time window
}

type visitor struct {
	tokens    int
	lastReset time.Time
}

// newRateLimiter creates a rate limiter with the specified rate per window.
func newRateLimiter(rate int, window time.Duration) *rateLimiter {
	rl := &rateLimiter{
		visitors: make(map[string]*visitor),
		rate:     rate,
		window:   window,
	}
	// Start cleanup goroutine
	go rl.cleanup()
	return rl
}

// cleanup removes stale visitor entries every minute.
func (rl *rateLimiter) cleanup() {
	for {
		time.Sleep(time.Minute)
		rl.mu.Lock()
		for ip, v := range rl.visitors {
			if time.Since(v.lastReset) > rl.window*2 {
				delete(rl.visitors, ip)
			}
		}
		rl.mu.Unlock()
	}
}

// allow checks if the request should be allowed and consumes a token if so.
func (rl *rateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[ip]
	if !exists {
		rl.visitors[ip] = &visitor{
			tokens:    rl.rate - 1, // consume one token
			lastReset: time.Now(),
		}
		return true
	}

	// Reset tokens if window has passed
	if time.Since(v.lastReset) > rl.window {
		v.tokens = rl.rate - 1
		v.lastReset = time.Now()
		return true
	}

	if v.tokens <= 0 {
		return false
	}

	v.tokens--
	return true
}

// middleware returns an HTTP middleware that rate limits by IP.
func (rl *rateLimiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := r.RemoteAddr
		// Use X-Real-IP if set (by RealIP middleware)
		if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
			ip = realIP
		}

		if !rl.allow(ip) {
			w.Header().Set("Retry-After", "60")
			writeError(w, r, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		next.ServeHTTP(w, r)
	})
}
