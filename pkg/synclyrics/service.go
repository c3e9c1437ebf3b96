package synclyrics

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/himanishpuri/SyncLyrics/pkg/logger"
	"github.com/himanishpuri/SyncLyrics/pkg/models"
	"github.com/himanishpuri/SyncLyrics/pkg/utils"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrEmptyTrackID is returned when lyrics are imported without a track id.
	ErrEmptyTrackID = errors.New("track id is required")
	// ErrDuplicateTrackID marks a directory file whose base name another file already claimed.
	ErrDuplicateTrackID = errors.New("duplicate track id")
)

// lyricsService is the default implementation of the Service interface.
type lyricsService struct {
	storage Storage
	log     Logger
	config  *Config
	parser  *Parser
}

func NewService(opts ...Option) (Service, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	// Set default logger if none provided
	if cfg.Logger == nil {
		cfg.Logger = logger.GetLogger()
	}
	if cfg.ImportWorkers < 1 {
		cfg.ImportWorkers = 1
	}

	// Create or use provided storage
	var stor Storage
	var err error
	if cfg.Storage != nil {
		stor = cfg.Storage
	} else {
		stor, err = NewSQLiteStorage(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage: %w", err)
		}
	}

	return &lyricsService{
		storage: stor,
		log:     cfg.Logger,
		config:  cfg,
		parser:  newParser(cfg),
	}, nil
}

// ParseLyrics parses raw markup with the service's parser settings without
// storing anything.
func (s *lyricsService) ParseLyrics(raw string) (*models.LyricsDocument, error) {
	return s.parser.Parse(raw)
}

// ImportLyrics parses raw and stores the result under trackID, replacing any
// lyrics already stored for that track. Nothing is stored when parsing fails.
func (s *lyricsService) ImportLyrics(ctx context.Context, trackID, title, artist, raw string) (*models.Track, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(trackID) == "" {
		return nil, ErrEmptyTrackID
	}

	s.log.Debugf("Parsing lyrics for track %s (%d bytes)", trackID, len(raw))

	doc, err := s.parser.Parse(raw)
	if err != nil {
		s.log.Warnf("Rejected lyrics for track %s: %v", trackID, err)
		return nil, fmt.Errorf("parse lyrics for track %s: %w", trackID, err)
	}

	track := &models.Track{
		ID:     trackID,
		Title:  title,
		Artist: artist,
		Lyrics: *doc,
	}
	if err := s.storage.SaveTrack(track); err != nil {
		return nil, fmt.Errorf("failed to store lyrics for track %s: %w", trackID, err)
	}

	s.log.Infof("Stored %d lines for track %s (%d songwriters)", len(doc.Lines), trackID, len(doc.Songwriters))
	return track, nil
}

// ImportDirectory imports every lyrics file in dir, using each file's base
// name as track id and title. Files are parsed concurrently; a failing file
// is reported in its ImportResult and does not stop the others. When two
// files share a base name ("a.ttml" and "a.xml") the first in name order is
// imported and the rest fail with ErrDuplicateTrackID.
func (s *lyricsService) ImportDirectory(ctx context.Context, dir string) ([]ImportResult, error) {
	paths, err := utils.ListLyricsFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}
	s.log.Infof("Importing %d lyrics files from %s", len(paths), dir)

	results := make([]ImportResult, len(paths))
	claimed := make(map[string]string, len(paths))
	for i, path := range paths {
		trackID := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		results[i] = ImportResult{Path: path, TrackID: trackID}
		if first, ok := claimed[trackID]; ok {
			results[i].Err = fmt.Errorf("%w %q: already imported from %s", ErrDuplicateTrackID, trackID, filepath.Base(first))
			continue
		}
		claimed[trackID] = path
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.ImportWorkers)

	for i := range results {
		if results[i].Err != nil {
			continue
		}
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			path, trackID := results[i].Path, results[i].TrackID

			raw, err := utils.ReadInput(path)
			if err != nil {
				results[i].Err = err
				return nil
			}

			track, err := s.ImportLyrics(gctx, trackID, trackID, "", string(raw))
			if err != nil {
				results[i].Err = err
				return nil
			}
			results[i].Lines = len(track.Lyrics.Lines)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		s.log.Warnf("Import finished with %d/%d failures", failed, len(results))
	}
	return results, nil
}

func (s *lyricsService) GetLyrics(trackID string) (*models.Track, error) {
	return s.storage.GetTrack(trackID)
}

func (s *lyricsService) ListTracks() ([]models.TrackSummary, error) {
	return s.storage.ListTracks()
}

func (s *lyricsService) DeleteLyrics(trackID string) error {
	if err := s.storage.DeleteTrack(trackID); err != nil {
		return err
	}
	s.log.Infof("Deleted lyrics for track %s", trackID)
	return nil
}

func (s *lyricsService) Close() error {
	if s.storage != nil {
		return s.storage.Close()
	}
	return nil
}
