package synclyrics

import (
	"context"

	"github.com/himanishpuri/SyncLyrics/pkg/models"
)

type Service interface {
	ParseLyrics(raw string) (*models.LyricsDocument, error)
	ImportLyrics(ctx context.Context, trackID, title, artist, raw string) (*models.Track, error)
	ImportDirectory(ctx context.Context, dir string) ([]ImportResult, error)
	GetLyrics(trackID string) (*models.Track, error)
	ListTracks() ([]models.TrackSummary, error)
	DeleteLyrics(trackID string) error
	Close() error
}

type Storage interface {
	SaveTrack(track *models.Track) error
	GetTrack(trackID string) (*models.Track, error)
	ListTracks() ([]models.TrackSummary, error)
	DeleteTrack(trackID string) error
	Close() error
}

type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
	Debugf(format string, args ...any)
}
