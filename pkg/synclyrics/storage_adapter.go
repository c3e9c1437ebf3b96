//go:build !js && !wasm
// +build !js,!wasm

package synclyrics

import (
	"github.com/himanishpuri/SyncLyrics/pkg/models"
	"github.com/himanishpuri/SyncLyrics/pkg/synclyrics/storage"
)

// ErrTrackNotFound is returned when no lyrics are stored for a track id.
var ErrTrackNotFound = storage.ErrNotFound

// storageAdapter adapts the storage.DBClient to implement the Storage interface.
type storageAdapter struct {
	db *storage.DBClient
}

// NewSQLiteStorage creates a new SQLite storage backend.
func NewSQLiteStorage(dbPath string) (Storage, error) {
	db, err := storage.NewDBClientWithPath(dbPath)
	if err != nil {
		return nil, err
	}
	return &storageAdapter{db: db}, nil
}

func (s *storageAdapter) SaveTrack(track *models.Track) error {
	return s.db.SaveTrack(track)
}

func (s *storageAdapter) GetTrack(trackID string) (*models.Track, error) {
	return s.db.GetTrack(trackID)
}

func (s *storageAdapter) ListTracks() ([]models.TrackSummary, error) {
	return s.db.ListTracks()
}

func (s *storageAdapter) DeleteTrack(trackID string) error {
	return s.db.DeleteTrack(trackID)
}

func (s *storageAdapter) Close() error {
	return s.db.Close()
}
