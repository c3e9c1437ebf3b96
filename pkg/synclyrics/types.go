package synclyrics

import "github.com/himanishpuri/SyncLyrics/pkg/models"

type (
	// LyricsDocument is the parsed lyrics: ordered lines, leading silence
	// and songwriter credits.
	LyricsDocument = models.LyricsDocument
	// LyricLine is a single timed line.
	LyricLine = models.LyricLine
	// Track is a stored document and its track metadata.
	Track = models.Track
	// TrackSummary is the listing view of a stored track.
	TrackSummary = models.TrackSummary
)

// ImportResult reports the outcome of importing one file.
type ImportResult struct {
	Path    string // Source file
	TrackID string // Track id derived from the file name
	Lines   int    // Number of lines stored, 0 on failure
	Err     error  // Parse or storage failure, nil on success
}
