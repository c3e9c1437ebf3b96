package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/himanishpuri/SyncLyrics/pkg/logger"
	"github.com/himanishpuri/SyncLyrics/pkg/synclyrics"
)

// Server encapsulates the HTTP server and its dependencies
type Server struct {
	service synclyrics.Service
	config  *ServerConfig
	log     synclyrics.Logger
	limiter *clientLimiter
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           int
	DBPath         string
	AllowedOrigins []string
	// RateLimit is the sustained requests per second allowed per client, 0 disables limiting
	RateLimit float64
	RateBurst int
	// TrustProxyHeaders keys clients on X-Real-IP / X-Forwarded-For instead of the peer address
	TrustProxyHeaders bool
}

// NewServer creates a new server instance
func NewServer(service synclyrics.Service, config *ServerConfig) *Server {
	s := &Server{
		service: service,
		config:  config,
		log:     logger.GetLogger(),
	}
	if config.RateLimit > 0 {
		s.limiter = newClientLimiter(config.RateLimit, config.RateBurst)
	}
	return s
}

// respondJSON writes a JSON response
func (s *Server) respondJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Errorf("Failed to encode JSON response: %v", err)
	}
}

// respondError writes an error response
func (s *Server) respondError(w http.ResponseWriter, statusCode int, message string) {
	s.respondJSON(w, statusCode, ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
		Code:    statusCode,
	})
}

// respondParseError reports a rejected lyrics document as 422 with its kind
func (s *Server) respondParseError(w http.ResponseWriter, err error) bool {
	var pe *synclyrics.ParseError
	if !errors.As(err, &pe) {
		return false
	}
	s.respondJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
		Error:   http.StatusText(http.StatusUnprocessableEntity),
		Message: pe.Error(),
		Code:    http.StatusUnprocessableEntity,
		Kind:    pe.Kind.String(),
		Line:    pe.Line,
	})
	return true
}

// handleRoot handles GET /
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"service": "SyncLyrics API",
		"version": "1.0.0",
		"endpoints": map[string]string{
			"health":       "GET /health",
			"metrics":      "GET /api/health/metrics",
			"parse":        "POST /api/lyrics/parse",
			"listLyrics":   "GET /api/lyrics",
			"importLyrics": "POST /api/lyrics",
			"getLyrics":    "GET /api/lyrics/{id}",
			"deleteLyrics": "DELETE /api/lyrics/{id}",
		},
	})
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// handleMetrics handles GET /api/health/metrics
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	tracks, err := s.service.ListTracks()
	if err != nil {
		s.log.Errorf("Failed to get track count: %v", err)
		s.respondError(w, http.StatusInternalServerError, "Failed to retrieve metrics")
		return
	}

	lines := 0
	for _, t := range tracks {
		lines += t.LineCount
	}

	s.respondJSON(w, http.StatusOK, MetricsResponse{
		Status:       "healthy",
		DatabasePath: s.config.DBPath,
		TrackCount:   len(tracks),
		LineCount:    lines,
		RateLimit:    s.config.RateLimit,
	})
}

// handleParse handles POST /api/lyrics/parse. The body is either a
// ParseRequest or, for any non-JSON content type, the TTML document itself.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxDocumentBytes+1024)

	var req ParseRequest
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.respondError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}
	} else {
		raw, err := io.ReadAll(r.Body)
		if err != nil {
			s.respondError(w, http.StatusRequestEntityTooLarge, "Document too large")
			return
		}
		req.TTML = string(raw)
	}

	if err := req.Validate(); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	doc, err := s.service.ParseLyrics(req.TTML)
	if err != nil {
		s.log.Warnf("Rejected lyrics document: %v", err)
		if !s.respondParseError(w, err) {
			s.respondError(w, http.StatusInternalServerError, "Failed to parse lyrics")
		}
		return
	}

	out, err := synclyrics.Serialize(doc)
	if err != nil {
		s.log.Errorf("Failed to serialize lyrics: %v", err)
		s.respondError(w, http.StatusInternalServerError, "Failed to serialize lyrics")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, out)
}

// handleListLyrics handles GET /api/lyrics
func (s *Server) handleListLyrics(w http.ResponseWriter, r *http.Request) {
	tracks, err := s.service.ListTracks()
	if err != nil {
		s.log.Errorf("Failed to list tracks: %v", err)
		s.respondError(w, http.StatusInternalServerError, "Failed to retrieve tracks")
		return
	}

	s.respondJSON(w, http.StatusOK, ListTracksResponse{
		Tracks: tracks,
		Count:  len(tracks),
	})
}

// handleImportLyrics handles POST /api/lyrics
func (s *Server) handleImportLyrics(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), time.Minute)
	defer cancel()

	r.Body = http.MaxBytesReader(w, r.Body, MaxDocumentBytes+4096)

	var req ImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if err := req.Validate(); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	track, err := s.service.ImportLyrics(ctx, req.TrackID, req.Title, req.Artist, req.TTML)
	if err != nil {
		if s.respondParseError(w, err) {
			return
		}
		s.log.Errorf("Failed to import lyrics for %s: %v", req.TrackID, err)
		s.respondError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to import lyrics: %v", err))
		return
	}

	s.respondJSON(w, http.StatusCreated, ImportResponse{
		Message:     "Lyrics stored successfully",
		ID:          track.ID,
		Title:       track.Title,
		Artist:      track.Artist,
		Lines:       len(track.Lyrics.Lines),
		Songwriters: track.Lyrics.Songwriters,
	})
}

// handleGetLyrics handles GET /api/lyrics/{id}
func (s *Server) handleGetLyrics(w http.ResponseWriter, r *http.Request, trackID string) {
	track, err := s.service.GetLyrics(trackID)
	if err != nil {
		if errors.Is(err, synclyrics.ErrTrackNotFound) {
			s.respondError(w, http.StatusNotFound, fmt.Sprintf("No lyrics stored for track %s", trackID))
			return
		}
		s.log.Errorf("Failed to load lyrics for %s: %v", trackID, err)
		s.respondError(w, http.StatusInternalServerError, "Failed to retrieve lyrics")
		return
	}

	resp := TrackResponse{Track: track}
	if at := r.URL.Query().Get("at"); at != "" {
		seconds, err := strconv.ParseFloat(at, 64)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "Invalid playback position")
			return
		}
		if idx, ok := synclyrics.ActiveLine(&track.Lyrics, seconds); ok {
			resp.ActiveLine = &idx
		}
	}

	s.respondJSON(w, http.StatusOK, resp)
}

// handleDeleteLyrics handles DELETE /api/lyrics/{id}
func (s *Server) handleDeleteLyrics(w http.ResponseWriter, r *http.Request, trackID string) {
	if err := s.service.DeleteLyrics(trackID); err != nil {
		if errors.Is(err, synclyrics.ErrTrackNotFound) {
			s.respondError(w, http.StatusNotFound, fmt.Sprintf("No lyrics stored for track %s", trackID))
			return
		}
		s.log.Errorf("Failed to delete lyrics for %s: %v", trackID, err)
		s.respondError(w, http.StatusInternalServerError, "Failed to delete lyrics")
		return
	}

	s.respondJSON(w, http.StatusOK, DeleteTrackResponse{
		Message: "Lyrics deleted successfully",
		ID:      trackID,
	})
}

// handleLyricsCollection routes requests to /api/lyrics
func (s *Server) handleLyricsCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleListLyrics(w, r)
	case http.MethodPost:
		s.handleImportLyrics(w, r)
	default:
		s.respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// handleLyricsItem routes requests to /api/lyrics/{id}
func (s *Server) handleLyricsItem(w http.ResponseWriter, r *http.Request) {
	trackID := strings.TrimPrefix(r.URL.Path, "/api/lyrics/")
	if trackID == "" {
		s.respondError(w, http.StatusBadRequest, "Track ID required")
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.handleGetLyrics(w, r, trackID)
	case http.MethodDelete:
		s.handleDeleteLyrics(w, r, trackID)
	default:
		s.respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// handleParseRoute routes requests to /api/lyrics/parse
func (s *Server) handleParseRoute(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	s.handleParse(w, r)
}
