package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/talentsift/talentsift/internal/models"
	"github.com/talentsift/talentsift/internal/profile"
)

func (s *Server) handleSearchJobDescription(w http.ResponseWriter, r *http.Request) {
	var query models.JobDescriptionQuery
	if err := json.NewDecoder(r.Body).Decode(&query); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.logger.Debug("jd search request", zap.Int("length", len(query.Text)))
	response, err := s.ranker.SearchJobDescription(r.Context(), query)
	if err != nil {
		s.logger.Error("jd search failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, response)
}

func (s *Server) handleSearchSkills(w http.ResponseWriter, r *http.Request) {
	var query models.SkillQuery
	if err := json.NewDecoder(r.Body).Decode(&query); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(query.Skills) == 0 {
		s.respondError(w, http.StatusBadRequest, "skills is required")
		return
	}
	s.logger.Debug("skill search request",
		zap.Strings("skills", query.Skills), zap.Int("min_years", query.MinYears))
	response, err := s.ranker.SearchSkills(r.Context(), query)
	if err != nil {
		s.logger.Error("skill search failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, response)
}

func (s *Server) handleSearchEducation(w http.ResponseWriter, r *http.Request) {
	var query models.EducationQuery
	if err := json.NewDecoder(r.Body).Decode(&query); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(query.Levels) == 0 {
		s.respondError(w, http.StatusBadRequest, "levels is required")
		return
	}
	s.logger.Debug("education search request", zap.Strings("levels", query.Levels))
	response, err := s.ranker.SearchEducation(r.Context(), query)
	if err != nil {
		s.logger.Error("education search failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, response)
}

func (s *Server) handleSearchGeneral(w http.ResponseWriter, r *http.Request) {
	var query models.GeneralQuery
	if err := json.NewDecoder(r.Body).Decode(&query); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(query.Text) == "" {
		s.respondError(w, http.StatusBadRequest, "q is required")
		return
	}
	s.logger.Debug("general search request", zap.Bool("include_notes", query.IncludeNotes))
	response, err := s.ranker.SearchGeneral(r.Context(), query)
	if err != nil {
		s.logger.Error("general search failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, response)
}

func (s *Server) handleReindex(w http.ResponseWriter, r *http.Request) {
	count, err := s.indexer.Reindex(r.Context())
	if err != nil {
		s.logger.Error("reindex failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{"indexed": count, "status": "ok"})
}

func (s *Server) handleListProfiles(w http.ResponseWriter, r *http.Request) {
	if s.profiles == nil {
		s.respondError(w, http.StatusNotImplemented, "profile store not enabled")
		return
	}
	profiles, err := s.profiles.List(r.Context())
	if err != nil {
		s.logger.Error("list profiles failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if profiles == nil {
		profiles = []*models.CandidateProfile{}
	}
	s.respondJSON(w, http.StatusOK, profiles)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	if s.profiles == nil {
		s.respondError(w, http.StatusNotImplemented, "profile store not enabled")
		return
	}
	documentID := chi.URLParam(r, "documentID")
	p, err := s.profiles.GetByDocument(r.Context(), documentID)
	if errors.Is(err, profile.ErrNotFound) {
		s.respondError(w, http.StatusNotFound, "profile not found")
		return
	}
	if err != nil {
		s.logger.Error("get profile failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, p)
}

// handleServeResume streams an original resume artifact from the originals
// directory. The filename is taken as given, after stripping any path
// components, so only files directly inside the directory are reachable.
func (s *Server) handleServeResume(w http.ResponseWriter, r *http.Request) {
	if s.originalsDir == "" {
		s.respondError(w, http.StatusNotFound, "originals directory not configured")
		return
	}
	filename := filepath.Base(chi.URLParam(r, "filename"))
	if filename == "." || filename == string(filepath.Separator) {
		s.respondError(w, http.StatusBadRequest, "invalid filename")
		return
	}
	path := filepath.Join(s.originalsDir, filename)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		s.respondError(w, http.StatusNotFound, "resume not found")
		return
	}
	http.ServeFile(w, r, path)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
