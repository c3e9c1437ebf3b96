package main

import (
	"fmt"
	"strings"

	"github.com/himanishpuri/SyncLyrics/pkg/synclyrics"
	"github.com/himanishpuri/SyncLyrics/pkg/utils"
)

// MaxDocumentBytes bounds the size of a TTML document accepted by the API
const MaxDocumentBytes = 5 << 20

// ParseRequest is the JSON body for POST /api/lyrics/parse. The endpoint
// also accepts the raw TTML document as the request body.
type ParseRequest struct {
	TTML string `json:"ttml"`
}

// Validate checks if the request is valid
func (r *ParseRequest) Validate() error {
	if strings.TrimSpace(r.TTML) == "" {
		return fmt.Errorf("ttml is required")
	}
	if len(r.TTML) > MaxDocumentBytes {
		return fmt.Errorf("ttml too large: %d bytes (maximum: %d)", len(r.TTML), MaxDocumentBytes)
	}
	return nil
}

// ImportRequest is the request body for POST /api/lyrics
type ImportRequest struct {
	// TrackID is the id to store the lyrics under. Optional when URL is set.
	TrackID string `json:"track_id,omitempty"`

	// URL is an Apple Music song URL the track id is taken from.
	URL string `json:"url,omitempty"`

	Title  string `json:"title,omitempty"`
	Artist string `json:"artist,omitempty"`

	// TTML is the lyrics document (required)
	TTML string `json:"ttml"`
}

// Validate checks the request and resolves TrackID from URL when needed
func (r *ImportRequest) Validate() error {
	if strings.TrimSpace(r.TTML) == "" {
		return fmt.Errorf("ttml is required")
	}
	if len(r.TTML) > MaxDocumentBytes {
		return fmt.Errorf("ttml too large: %d bytes (maximum: %d)", len(r.TTML), MaxDocumentBytes)
	}

	if r.URL != "" {
		id, err := utils.ExtractTrackID(r.URL)
		if err != nil {
			return err
		}
		if r.TrackID != "" && r.TrackID != id {
			return fmt.Errorf("track_id %q does not match url track %q", r.TrackID, id)
		}
		r.TrackID = id
	}

	if strings.TrimSpace(r.TrackID) == "" {
		return fmt.Errorf("track_id or url is required")
	}
	return nil
}

// ImportResponse is the response for a successful import
type ImportResponse struct {
	Message     string   `json:"message"`
	ID          string   `json:"id"`
	Title       string   `json:"title,omitempty"`
	Artist      string   `json:"artist,omitempty"`
	Lines       int      `json:"lines"`
	Songwriters []string `json:"songwriters"`
}

// ListTracksResponse is the response for GET /api/lyrics
type ListTracksResponse struct {
	Tracks []synclyrics.TrackSummary `json:"tracks"`
	Count  int                       `json:"count"`
}

// TrackResponse is the response for GET /api/lyrics/{id}. ActiveLine is set
// when the request carries an ?at= playback position.
type TrackResponse struct {
	*synclyrics.Track
	ActiveLine *int `json:"activeLine,omitempty"`
}

// DeleteTrackResponse is the response for DELETE /api/lyrics/{id}
type DeleteTrackResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

// MetricsResponse provides server health and database metrics
type MetricsResponse struct {
	Status       string  `json:"status"`
	DatabasePath string  `json:"database_path"`
	TrackCount   int     `json:"track_count"`
	LineCount    int     `json:"line_count"`
	RateLimit    float64 `json:"rate_limit"`
}

// ErrorResponse is the standard error response format. Kind and Line are
// set for rejected lyrics documents.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
	Kind    string `json:"kind,omitempty"`
	Line    int    `json:"line,omitempty"`
}
