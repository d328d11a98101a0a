package api

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/CreativeUnicorns/vaultprefs"
)

var profileIDPattern = regexp.MustCompile(`^[A-Za-z0-9._-]{1,64}$`)

// Server holds the dependencies for the HTTP server.
type Server struct {
	options     []vaultprefs.Option
	logger      vaultprefs.Logger
	router      *chi.Mux
	httpServer  *http.Server
	definitions []vaultprefs.Definition

	mu       sync.Mutex
	profiles map[string]*vaultprefs.Preferences
}

// Config holds configuration for the API server.
type Config struct {
	ListenAddress string
	// Options are applied to every Preferences the server opens. They must
	// include vaultprefs.WithStorage; the profile comes from the request path.
	Options []vaultprefs.Option
	Logger  vaultprefs.Logger
}

// NewServer creates and configures a new API server instance.
func NewServer(cfg Config) (*Server, error) {
	if len(cfg.Options) == 0 {
		return nil, fmt.Errorf("%w: preference options with a storage are required", vaultprefs.ErrInvalidInput)
	}
	if cfg.Logger == nil {
		cfg.Logger = vaultprefs.NewDefaultLogger()
	}
	if cfg.ListenAddress == "" {
		cfg.ListenAddress = ":8080"
	}

	// Fail at startup rather than on the first request, without touching storage.
	defs, err := vaultprefs.Describe(cfg.Options...)
	if err != nil {
		return nil, err
	}

	s := &Server{
		options:     cfg.Options,
		logger:      cfg.Logger,
		router:      chi.NewRouter(),
		definitions: defs,
		profiles:    make(map[string]*vaultprefs.Preferences),
	}

	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:         cfg.ListenAddress,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the routed handler, for embedding or tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// open returns the facade for one profile, building it on first use.
func (s *Server) open(profileID string) (*vaultprefs.Preferences, error) {
	if !profileIDPattern.MatchString(profileID) {
		return nil, fmt.Errorf("%w: profile id %q", vaultprefs.ErrInvalidInput, profileID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.profiles[profileID]; ok {
		return p, nil
	}

	opts := make([]vaultprefs.Option, 0, len(s.options)+2)
	opts = append(opts, s.options...)
	opts = append(opts, vaultprefs.WithLogger(s.logger), vaultprefs.WithProfile(profileID))
	p, err := vaultprefs.New(opts...)
	if err != nil {
		return nil, err
	}
	s.profiles[profileID] = p
	return p, nil
}

// Start runs the HTTP server. It blocks until the server is shut down and
// returns nil after a graceful Stop.
func (s *Server) Start() error {
	s.logger.Info("API server starting", "address", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("could not start server: %w", err)
	}
	return nil
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("API server stopping")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.logger.Info("API server stopped gracefully")
	return nil
}
