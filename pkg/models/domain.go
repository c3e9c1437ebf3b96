package models

import "time"

// LyricLine is one displayable line with its timing, in seconds from the
// start of the track.
type LyricLine struct {
	ID        string  `json:"id"`
	Text      string  `json:"line"`
	StartTime float64 `json:"startTime"`
	EndTime   float64 `json:"endTime"`
}

// LyricsDocument is the parsed form of a synchronized lyrics file.
type LyricsDocument struct {
	Lines          []LyricLine `json:"lyrics"`
	LeadingSilence float64     `json:"leadingSilence"`
	Songwriters    []string    `json:"songwriters"`
}

// Track is a stored lyrics document together with the track it belongs to.
type Track struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	Artist    string         `json:"artist"`
	Lyrics    LyricsDocument `json:"document"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// TrackSummary is the listing view of a stored track.
type TrackSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Artist    string    `json:"artist"`
	LineCount int       `json:"lineCount"`
	UpdatedAt time.Time `json:"updatedAt"`
}
