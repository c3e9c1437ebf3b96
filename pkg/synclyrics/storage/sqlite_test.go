package storage

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/himanishpuri/SyncLyrics/pkg/models"
)

// setupTestDB creates a DBClient backed by a temporary sqlite file
func setupTestDB(t *testing.T) *DBClient {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test_synclyrics.sqlite3")
	client, err := NewDBClientWithPath(dbPath)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	t.Cleanup(func() {
		client.Close()
	})

	return client
}

func sampleTrack(id string) *models.Track {
	return &models.Track{
		ID:     id,
		Title:  "Sample Song",
		Artist: "Sample Artist",
		Lyrics: models.LyricsDocument{
			Lines: []models.LyricLine{
				{ID: "l1", Text: "First line", StartTime: 1.5, EndTime: 3},
				{ID: "l2", Text: "Second line", StartTime: 3, EndTime: 4.25},
				{ID: "l3", Text: "Third line", StartTime: 4.25, EndTime: 7},
			},
			LeadingSilence: 0.64,
			Songwriters:    []string{"Writer B", "Writer A"},
		},
	}
}

func TestNewDBClientWithPath(t *testing.T) {
	client := setupTestDB(t)

	if client.DB == nil {
		t.Fatal("Expected non-nil gorm DB")
	}

	for _, table := range []any{&Track{}, &Line{}, &Songwriter{}} {
		if !client.DB.Migrator().HasTable(table) {
			t.Errorf("Expected table for %T to exist", table)
		}
	}
}

func TestSaveAndGetTrack(t *testing.T) {
	client := setupTestDB(t)

	if err := client.SaveTrack(sampleTrack("1440818839")); err != nil {
		t.Fatalf("SaveTrack failed: %v", err)
	}

	got, err := client.GetTrack("1440818839")
	if err != nil {
		t.Fatalf("GetTrack failed: %v", err)
	}

	if got.Title != "Sample Song" || got.Artist != "Sample Artist" {
		t.Errorf("Expected 'Sample Song' by 'Sample Artist', got '%s' by '%s'", got.Title, got.Artist)
	}
	if got.Lyrics.LeadingSilence != 0.64 {
		t.Errorf("Expected leading silence 0.64, got %v", got.Lyrics.LeadingSilence)
	}

	want := sampleTrack("1440818839").Lyrics
	if len(got.Lyrics.Lines) != len(want.Lines) {
		t.Fatalf("Expected %d lines, got %d", len(want.Lines), len(got.Lyrics.Lines))
	}
	for i, line := range got.Lyrics.Lines {
		if line != want.Lines[i] {
			t.Errorf("Line %d: expected %+v, got %+v", i, want.Lines[i], line)
		}
	}

	if len(got.Lyrics.Songwriters) != 2 || got.Lyrics.Songwriters[0] != "Writer B" || got.Lyrics.Songwriters[1] != "Writer A" {
		t.Errorf("Expected songwriters in stored order, got %v", got.Lyrics.Songwriters)
	}
}

func TestSaveTrackReplacesLyrics(t *testing.T) {
	client := setupTestDB(t)

	if err := client.SaveTrack(sampleTrack("42")); err != nil {
		t.Fatalf("SaveTrack failed: %v", err)
	}

	updated := sampleTrack("42")
	updated.Title = "Renamed"
	updated.Lyrics.Lines = updated.Lyrics.Lines[:1]
	updated.Lyrics.Songwriters = []string{}
	if err := client.SaveTrack(updated); err != nil {
		t.Fatalf("Second SaveTrack failed: %v", err)
	}

	got, err := client.GetTrack("42")
	if err != nil {
		t.Fatalf("GetTrack failed: %v", err)
	}
	if got.Title != "Renamed" {
		t.Errorf("Expected title 'Renamed', got '%s'", got.Title)
	}
	if len(got.Lyrics.Lines) != 1 {
		t.Errorf("Expected 1 line after replace, got %d", len(got.Lyrics.Lines))
	}
	if got.Lyrics.Songwriters == nil || len(got.Lyrics.Songwriters) != 0 {
		t.Errorf("Expected empty non-nil songwriters, got %#v", got.Lyrics.Songwriters)
	}

	var lineCount int64
	client.DB.Model(&Line{}).Where("track_id = ?", "42").Count(&lineCount)
	if lineCount != 1 {
		t.Errorf("Expected 1 line row, found %d", lineCount)
	}
}

func TestGetTrackNotFound(t *testing.T) {
	client := setupTestDB(t)

	_, err := client.GetTrack("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestListTracks(t *testing.T) {
	client := setupTestDB(t)

	a := sampleTrack("a")
	a.Artist = "Zed"
	b := sampleTrack("b")
	b.Artist = "Abba"
	b.Lyrics.Lines = nil

	for _, tr := range []*models.Track{a, b} {
		if err := client.SaveTrack(tr); err != nil {
			t.Fatalf("SaveTrack(%s) failed: %v", tr.ID, err)
		}
	}

	tracks, err := client.ListTracks()
	if err != nil {
		t.Fatalf("ListTracks failed: %v", err)
	}
	if len(tracks) != 2 {
		t.Fatalf("Expected 2 tracks, got %d", len(tracks))
	}
	if tracks[0].ID != "b" || tracks[1].ID != "a" {
		t.Errorf("Expected tracks ordered by artist, got %s, %s", tracks[0].ID, tracks[1].ID)
	}
	if tracks[0].LineCount != 0 || tracks[1].LineCount != 3 {
		t.Errorf("Expected line counts 0 and 3, got %d and %d", tracks[0].LineCount, tracks[1].LineCount)
	}
}

func TestDeleteTrack(t *testing.T) {
	client := setupTestDB(t)

	if err := client.SaveTrack(sampleTrack("gone")); err != nil {
		t.Fatalf("SaveTrack failed: %v", err)
	}
	if err := client.DeleteTrack("gone"); err != nil {
		t.Fatalf("DeleteTrack failed: %v", err)
	}

	if _, err := client.GetTrack("gone"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}

	var lineCount, writerCount int64
	client.DB.Model(&Line{}).Where("track_id = ?", "gone").Count(&lineCount)
	client.DB.Model(&Songwriter{}).Where("track_id = ?", "gone").Count(&writerCount)
	if lineCount != 0 || writerCount != 0 {
		t.Errorf("Expected child rows removed, found %d lines and %d songwriters", lineCount, writerCount)
	}

	if err := client.DeleteTrack("gone"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound deleting twice, got %v", err)
	}
}

func TestNilClient(t *testing.T) {
	var client *DBClient

	if err := client.SaveTrack(sampleTrack("x")); err == nil {
		t.Error("Expected error from nil client")
	}
	if err := client.Close(); err != nil {
		t.Errorf("Expected nil error closing nil client, got %v", err)
	}
}
