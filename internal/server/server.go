// Package server provides the HTTP API for TalentSift.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/talentsift/talentsift/internal/config"
	"github.com/talentsift/talentsift/internal/corpus"
	"github.com/talentsift/talentsift/internal/match"
	"github.com/talentsift/talentsift/internal/profile"
)

// Server is the HTTP server for the TalentSift API.
type Server struct {
	ranker       *match.Ranker
	indexer      *corpus.Indexer
	profiles     *profile.Store
	originalsDir string
	config       *config.ServerConfig
	logger       *zap.Logger
	server       *http.Server
}

// NewServer creates a server with the given dependencies. profiles may be
// nil when the profile store is disabled.
func NewServer(
	ranker *match.Ranker,
	indexer *corpus.Indexer,
	profiles *profile.Store,
	originalsDir string,
	cfg *config.ServerConfig,
	logger *zap.Logger,
) *Server {
	return &Server{
		ranker:       ranker,
		indexer:      indexer,
		profiles:     profiles,
		originalsDir: originalsDir,
		config:       cfg,
		logger:       logger,
	}
}

// Router builds the chi router with all routes and middleware wired.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))

	r.Post("/api/search/jd", s.handleSearchJobDescription)
	r.Post("/api/search/skills", s.handleSearchSkills)
	r.Post("/api/search/education", s.handleSearchEducation)
	r.Post("/api/search/general", s.handleSearchGeneral)
	r.Post("/api/reindex", s.handleReindex)
	r.Get("/api/profiles", s.handleListProfiles)
	r.Get("/api/profiles/{documentID}", s.handleGetProfile)
	r.Get("/resume/{filename}", s.handleServeResume)
	r.Get("/health", s.handleHealth)
	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.Router(),
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
