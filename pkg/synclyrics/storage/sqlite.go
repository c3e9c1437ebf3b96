//go:build !js && !wasm
// +build !js,!wasm

package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/himanishpuri/SyncLyrics/pkg/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

const errDBClientNil = "db client is nil"

// ErrNotFound is returned when no lyrics are stored for a track id.
var ErrNotFound = errors.New("track not found")

type DBClient struct {
	DB *gorm.DB
	db *sql.DB
}

type Track struct {
	ID             string `gorm:"primaryKey;type:varchar(64)"`
	Title          string `gorm:"index:idx_track_meta,priority:1" json:"title"`
	Artist         string `gorm:"index:idx_track_meta,priority:2" json:"artist"`
	LeadingSilence float64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type Line struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	TrackID   string `gorm:"type:varchar(64);index:idx_line_track" json:"track_id"`
	Position  int    `json:"position"`
	LineID    string `gorm:"type:varchar(64)" json:"line_id"`
	Text      string `json:"text"`
	StartTime float64
	EndTime   float64
}

type Songwriter struct {
	ID       uint   `gorm:"primaryKey;autoIncrement"`
	TrackID  string `gorm:"type:varchar(64);index:idx_songwriter_track" json:"track_id"`
	Position int    `json:"position"`
	Name     string `json:"name"`
}

func NewDBClientWithPath(dbPath string) (*DBClient, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil && !os.IsExist(err) {
		if filepath.Dir(dbPath) != "." {
			return nil, fmt.Errorf("creating db dir: %w", err)
		}
	}

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	db, err := gorm.Open(sqlite.Open(dbPath+"?_pragma=foreign_keys(1)"), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting sql.DB from gorm: %w", err)
	}

	// sqlite allows a single writer at a time
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(&Track{}, &Line{}, &Songwriter{}); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("auto migrate: %w", err)
	}

	return &DBClient{DB: db, db: sqlDB}, nil
}

func (c *DBClient) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

// SaveTrack stores a track and replaces any lyrics previously stored for it.
func (c *DBClient) SaveTrack(track *models.Track) error {
	if c == nil || c.DB == nil {
		return errors.New(errDBClientNil)
	}

	row := Track{
		ID:             track.ID,
		Title:          track.Title,
		Artist:         track.Artist,
		LeadingSilence: track.Lyrics.LeadingSilence,
	}

	lines := make([]Line, 0, len(track.Lyrics.Lines))
	for i, l := range track.Lyrics.Lines {
		lines = append(lines, Line{
			TrackID:   track.ID,
			Position:  i,
			LineID:    l.ID,
			Text:      l.Text,
			StartTime: l.StartTime,
			EndTime:   l.EndTime,
		})
	}

	writers := make([]Songwriter, 0, len(track.Lyrics.Songwriters))
	for i, name := range track.Lyrics.Songwriters {
		writers = append(writers, Songwriter{TrackID: track.ID, Position: i, Name: name})
	}

	return c.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"title", "artist", "leading_silence", "updated_at"}),
		}).Create(&row).Error
		if err != nil {
			return fmt.Errorf("upserting track: %w", err)
		}

		if err := tx.Where("track_id = ?", track.ID).Delete(&Line{}).Error; err != nil {
			return fmt.Errorf("clearing lines: %w", err)
		}
		if err := tx.Where("track_id = ?", track.ID).Delete(&Songwriter{}).Error; err != nil {
			return fmt.Errorf("clearing songwriters: %w", err)
		}

		if len(lines) > 0 {
			if err := tx.CreateInBatches(lines, 500).Error; err != nil {
				return fmt.Errorf("batch insert lines: %w", err)
			}
		}
		if len(writers) > 0 {
			if err := tx.Create(&writers).Error; err != nil {
				return fmt.Errorf("insert songwriters: %w", err)
			}
		}
		return nil
	})
}

func (c *DBClient) GetTrack(trackID string) (*models.Track, error) {
	if c == nil || c.DB == nil {
		return nil, errors.New(errDBClientNil)
	}

	var row Track
	if err := c.DB.Where("id = ?", trackID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, trackID)
		}
		return nil, fmt.Errorf("querying track: %w", err)
	}

	var lines []Line
	if err := c.DB.Where("track_id = ?", trackID).Order("position").Find(&lines).Error; err != nil {
		return nil, fmt.Errorf("querying lines: %w", err)
	}

	var writers []Songwriter
	if err := c.DB.Where("track_id = ?", trackID).Order("position").Find(&writers).Error; err != nil {
		return nil, fmt.Errorf("querying songwriters: %w", err)
	}

	doc := models.LyricsDocument{
		Lines:          make([]models.LyricLine, 0, len(lines)),
		LeadingSilence: row.LeadingSilence,
		Songwriters:    make([]string, 0, len(writers)),
	}
	for _, l := range lines {
		doc.Lines = append(doc.Lines, models.LyricLine{
			ID:        l.LineID,
			Text:      l.Text,
			StartTime: l.StartTime,
			EndTime:   l.EndTime,
		})
	}
	for _, w := range writers {
		doc.Songwriters = append(doc.Songwriters, w.Name)
	}

	return &models.Track{
		ID:        row.ID,
		Title:     row.Title,
		Artist:    row.Artist,
		Lyrics:    doc,
		UpdatedAt: row.UpdatedAt,
	}, nil
}

func (c *DBClient) ListTracks() ([]models.TrackSummary, error) {
	if c == nil || c.DB == nil {
		return nil, errors.New(errDBClientNil)
	}

	var rows []Track
	if err := c.DB.Order("artist, title, id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("listing tracks: %w", err)
	}

	var counts []struct {
		TrackID string
		Total   int
	}
	if err := c.DB.Model(&Line{}).Select("track_id, count(*) as total").Group("track_id").Scan(&counts).Error; err != nil {
		return nil, fmt.Errorf("counting lines: %w", err)
	}
	byTrack := make(map[string]int, len(counts))
	for _, n := range counts {
		byTrack[n.TrackID] = n.Total
	}

	out := make([]models.TrackSummary, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.TrackSummary{
			ID:        r.ID,
			Title:     r.Title,
			Artist:    r.Artist,
			LineCount: byTrack[r.ID],
			UpdatedAt: r.UpdatedAt,
		})
	}
	return out, nil
}

func (c *DBClient) DeleteTrack(trackID string) error {
	if c == nil || c.DB == nil {
		return errors.New(errDBClientNil)
	}
	return c.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("track_id = ?", trackID).Delete(&Line{}).Error; err != nil {
			return err
		}
		if err := tx.Where("track_id = ?", trackID).Delete(&Songwriter{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", trackID).Delete(&Track{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: %s", ErrNotFound, trackID)
		}
		return nil
	})
}
