// Package web serves the summary viewer's JSON API over HTTP, behind the
// optional shared-password gate.
package web

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/chatdigest/internal/core/ports/driving"
	"github.com/custodia-labs/chatdigest/internal/logger"
)

// Ports holds the driving ports the API calls into.
type Ports struct {
	Groups     driving.GroupService
	Search     driving.SearchService
	Topics     driving.TopicService
	Highlights driving.HighlightService
	Auth       driving.AuthService
}

// Validate checks that all required ports are set. Highlights is optional.
func (p *Ports) Validate() error {
	if p == nil {
		return errors.New("ports cannot be nil")
	}
	if p.Groups == nil {
		return errors.New("groups service is required")
	}
	if p.Search == nil {
		return errors.New("search service is required")
	}
	if p.Topics == nil {
		return errors.New("topic service is required")
	}
	if p.Auth == nil {
		return errors.New("auth service is required")
	}
	return nil
}

// Options tunes the server.
type Options struct {
	// FailDelay is how long a rejected login waits before answering.
	FailDelay time.Duration

	// LoginRate and LoginBurst throttle login attempts across all clients.
	LoginRate  rate.Limit
	LoginBurst int

	// SecureCookie marks the session cookie Secure (HTTPS deployments).
	SecureCookie bool
}

// DefaultOptions returns the production settings.
func DefaultOptions() Options {
	return Options{
		FailDelay:  500 * time.Millisecond,
		LoginRate:  rate.Every(time.Second),
		LoginBurst: 5,
	}
}

// SessionCookie is the name of the session cookie.
const SessionCookie = "session"

// Server serves the viewer API.
type Server struct {
	ports   *Ports
	opts    Options
	limiter *rate.Limiter
	handler http.Handler

	listener net.Listener
	httpSrv  *http.Server
	stopOnce sync.Once
}

// NewServer creates a server over the given ports.
func NewServer(ports *Ports, opts Options) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("invalid ports: %w", err)
	}
	if opts.LoginBurst <= 0 {
		opts.LoginBurst = 1
	}
	if opts.LoginRate == 0 {
		opts.LoginRate = rate.Inf
	}

	s := &Server{
		ports:   ports,
		opts:    opts,
		limiter: rate.NewLimiter(opts.LoginRate, opts.LoginBurst),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("POST /api/auth", s.handleLogin)
	mux.HandleFunc("GET /api/auth", s.handleAuthStatus)
	mux.HandleFunc("DELETE /api/auth", s.handleLogout)

	mux.Handle("GET /api/groups", s.gated(s.handleGroups))
	mux.Handle("GET /api/groups/{id}", s.gated(s.handleGroup))
	mux.Handle("GET /api/search", s.gated(s.handleSearch))
	mux.Handle("GET /api/topics", s.gated(s.handleTopics))
	mux.Handle("GET /api/highlights", s.gated(s.handleHighlights))
	mux.Handle("POST /api/highlights", s.gated(s.handleAddHighlight))
	mux.Handle("DELETE /api/highlights/{id}", s.gated(s.handleRemoveHighlight))

	s.handler = mux
	return s, nil
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start begins listening on addr and serves in the background.
func (s *Server) Start(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	s.listener = ln
	s.httpSrv = &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server: %v", err)
		}
	}()
	return nil
}

// Addr returns the bound address, or "" before Start.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// URL returns the base URL of the running server.
func (s *Server) URL() string {
	return "http://" + s.Addr()
}

// Stop gracefully shuts down the server. Idempotent.
func (s *Server) Stop() {
	s.stopOnce.Do(func() {
		if s.httpSrv == nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.httpSrv.Shutdown(ctx); err != nil {
			logger.Warn("http shutdown: %v", err)
		}
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
