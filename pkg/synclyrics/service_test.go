//go:build !js && !wasm

package synclyrics

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/himanishpuri/SyncLyrics/pkg/logger"
)

// setupTestService creates a service backed by a temporary database
func setupTestService(t *testing.T, opts ...Option) Service {
	t.Helper()

	quiet := logger.New(logger.Config{Level: logger.ERROR, Output: io.Discard})
	opts = append([]Option{
		WithDBPath(filepath.Join(t.TempDir(), "test_service_lyrics.sqlite3")),
		WithLogger(quiet),
	}, opts...)

	svc, err := NewService(opts...)
	if err != nil {
		t.Fatalf("Failed to create test service: %v", err)
	}
	t.Cleanup(func() {
		svc.Close()
	})
	return svc
}

func TestImportLyrics(t *testing.T) {
	svc := setupTestService(t)

	track, err := svc.ImportLyrics(context.Background(), "1440841383", "Test Song", "Test Artist", sampleDocument)
	if err != nil {
		t.Fatalf("ImportLyrics failed: %v", err)
	}
	if len(track.Lyrics.Lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d", len(track.Lyrics.Lines))
	}

	stored, err := svc.GetLyrics("1440841383")
	if err != nil {
		t.Fatalf("GetLyrics failed: %v", err)
	}
	if stored.Title != "Test Song" || stored.Artist != "Test Artist" {
		t.Errorf("Unexpected metadata: %s by %s", stored.Title, stored.Artist)
	}
	if len(stored.Lyrics.Lines) != 2 {
		t.Fatalf("Expected 2 stored lines, got %d", len(stored.Lyrics.Lines))
	}
	for i, line := range stored.Lyrics.Lines {
		if line != track.Lyrics.Lines[i] {
			t.Errorf("Line %d: expected %+v, got %+v", i, track.Lyrics.Lines[i], line)
		}
	}
	if len(stored.Lyrics.Songwriters) != 2 || stored.Lyrics.Songwriters[1] != "Name B" {
		t.Errorf("Unexpected songwriters: %v", stored.Lyrics.Songwriters)
	}
}

func TestImportLyricsRejectsBadDocument(t *testing.T) {
	svc := setupTestService(t)

	_, err := svc.ImportLyrics(context.Background(), "bad", "Bad", "", "<tt><body/></tt>")
	if !errors.Is(err, ErrMissingSection) {
		t.Fatalf("Expected ErrMissingSection, got %v", err)
	}

	if _, err := svc.GetLyrics("bad"); !errors.Is(err, ErrTrackNotFound) {
		t.Errorf("Expected nothing stored, got %v", err)
	}
}

func TestImportLyricsKeepsPreviousOnFailure(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	if _, err := svc.ImportLyrics(ctx, "t1", "First", "", sampleDocument); err != nil {
		t.Fatalf("ImportLyrics failed: %v", err)
	}
	if _, err := svc.ImportLyrics(ctx, "t1", "Second", "", "<broken"); err == nil {
		t.Fatal("Expected error for malformed document")
	}

	stored, err := svc.GetLyrics("t1")
	if err != nil {
		t.Fatalf("GetLyrics failed: %v", err)
	}
	if stored.Title != "First" || len(stored.Lyrics.Lines) != 2 {
		t.Errorf("Expected the first import to survive, got %s with %d lines", stored.Title, len(stored.Lyrics.Lines))
	}
}

func TestImportLyricsValidation(t *testing.T) {
	svc := setupTestService(t)

	if _, err := svc.ImportLyrics(context.Background(), "  ", "x", "", sampleDocument); !errors.Is(err, ErrEmptyTrackID) {
		t.Errorf("Expected ErrEmptyTrackID, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := svc.ImportLyrics(ctx, "t1", "x", "", sampleDocument); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestServiceStrictSongwriters(t *testing.T) {
	svc := setupTestService(t, WithStrictSongwriters(true))

	doc := buildDocument(`<metadata><iTunesMetadata><credits><c>X</c></credits></iTunesMetadata></metadata>`, "")
	if _, err := svc.ParseLyrics(doc); !errors.Is(err, ErrUnexpectedTag) {
		t.Errorf("Expected ErrUnexpectedTag, got %v", err)
	}
}

func TestImportDirectory(t *testing.T) {
	svc := setupTestService(t, WithImportWorkers(2))

	dir := t.TempDir()
	files := map[string]string{
		"alpha.ttml": sampleDocument,
		"beta.xml":   appleDocument,
		"gamma.ttml": "<tt/>",
		"notes.txt":  "ignored",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}

	results, err := svc.ImportDirectory(context.Background(), dir)
	if err != nil {
		t.Fatalf("ImportDirectory failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(results))
	}

	byID := make(map[string]ImportResult)
	for _, r := range results {
		byID[r.TrackID] = r
	}
	if r := byID["alpha"]; r.Err != nil || r.Lines != 2 {
		t.Errorf("Unexpected alpha result: %+v", r)
	}
	if r := byID["beta"]; r.Err != nil || r.Lines != 3 {
		t.Errorf("Unexpected beta result: %+v", r)
	}
	if r := byID["gamma"]; !errors.Is(r.Err, ErrMissingSection) {
		t.Errorf("Expected gamma to fail with ErrMissingSection, got %+v", r)
	}

	tracks, err := svc.ListTracks()
	if err != nil {
		t.Fatalf("ListTracks failed: %v", err)
	}
	if len(tracks) != 2 {
		t.Errorf("Expected 2 stored tracks, got %d", len(tracks))
	}
}

func TestImportDirectoryDuplicateTrackID(t *testing.T) {
	svc := setupTestService(t, WithImportWorkers(4))

	dir := t.TempDir()
	files := map[string]string{
		"a.ttml": sampleDocument,
		"a.xml":  appleDocument,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}

	results, err := svc.ImportDirectory(context.Background(), dir)
	if err != nil {
		t.Fatalf("ImportDirectory failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}
	if results[0].Err != nil || results[0].Lines != 2 {
		t.Errorf("Expected a.ttml to import, got %+v", results[0])
	}
	if !errors.Is(results[1].Err, ErrDuplicateTrackID) {
		t.Errorf("Expected a.xml to fail with ErrDuplicateTrackID, got %+v", results[1])
	}
	if filepath.Base(results[1].Path) != "a.xml" {
		t.Errorf("Expected the duplicate to be a.xml, got %s", results[1].Path)
	}

	track, err := svc.GetLyrics("a")
	if err != nil {
		t.Fatalf("GetLyrics failed: %v", err)
	}
	if len(track.Lyrics.Lines) != 2 {
		t.Errorf("Expected the stored track to come from a.ttml, got %d lines", len(track.Lyrics.Lines))
	}
}

func TestDeleteLyrics(t *testing.T) {
	svc := setupTestService(t)

	if _, err := svc.ImportLyrics(context.Background(), "t1", "x", "", sampleDocument); err != nil {
		t.Fatalf("ImportLyrics failed: %v", err)
	}
	if err := svc.DeleteLyrics("t1"); err != nil {
		t.Fatalf("DeleteLyrics failed: %v", err)
	}
	if err := svc.DeleteLyrics("t1"); !errors.Is(err, ErrTrackNotFound) {
		t.Errorf("Expected ErrTrackNotFound on second delete, got %v", err)
	}
}

func TestActiveLine(t *testing.T) {
	doc, err := Parse(sampleDocument)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	tests := []struct {
		seconds float64
		want    int
		ok      bool
	}{
		{0, -1, false},
		{12.5, 0, true},
		{14, 0, true},
		{15, 0, true},
		{16, 1, true},
		{18, 1, true},
		{18.01, -1, false},
	}
	for _, tt := range tests {
		got, ok := ActiveLine(doc, tt.seconds)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ActiveLine(%v): expected (%d, %v), got (%d, %v)", tt.seconds, tt.want, tt.ok, got, ok)
		}
	}

	if _, ok := ActiveLine(nil, 1); ok {
		t.Error("Expected no active line for nil document")
	}
}
