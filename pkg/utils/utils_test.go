package utils

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"
)

func TestGenerateUUID(t *testing.T) {
	pattern := regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := GenerateUUID()
		if !pattern.MatchString(id) {
			t.Fatalf("UUID %q does not match v4 format", id)
		}
		if seen[id] {
			t.Fatalf("Duplicate UUID generated: %s", id)
		}
		seen[id] = true
	}
}

func TestExtractTrackID(t *testing.T) {
	tests := []struct {
		url     string
		want    string
		wantErr bool
	}{
		{"https://music.apple.com/gb/album/sandstorm/1440818839?i=1440819047", "1440819047", false},
		{"https://music.apple.com/us/song/sandstorm/1440819047", "1440819047", false},
		{"https://music.apple.com/us/song/1440819047", "1440819047", false},
		{"https://beta.music.apple.com/gb/song/x/123", "123", false},
		{"https://music.apple.com/gb/album/sandstorm/1440818839", "", true},
		{"https://music.apple.com/gb/album/x/1?i=abc", "", true},
		{"https://youtube.com/watch?v=dQw4w9WgXcQ", "", true},
		{"://bad", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			got, err := ExtractTrackID(tt.url)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error, got id %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ExtractTrackID failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected '%s', got '%s'", tt.want, got)
			}
		})
	}
}

func TestListLyricsFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.ttml", "a.XML", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("<tt/>"), 0o644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
	if err := MakeDir(filepath.Join(dir, "nested.ttml")); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}

	paths, err := ListLyricsFiles(dir)
	if err != nil {
		t.Fatalf("ListLyricsFiles failed: %v", err)
	}

	want := []string{filepath.Join(dir, "a.XML"), filepath.Join(dir, "b.ttml")}
	if len(paths) != len(want) {
		t.Fatalf("Expected %v, got %v", want, paths)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("Expected %s at %d, got %s", want[i], i, paths[i])
		}
	}
}

func TestReadInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "song.ttml")
	if err := os.WriteFile(path, []byte("<tt/>"), 0o644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	data, err := ReadInput(path)
	if err != nil {
		t.Fatalf("ReadInput failed: %v", err)
	}
	if string(data) != "<tt/>" {
		t.Errorf("Expected '<tt/>', got %q", data)
	}

	if _, err := ReadInput(filepath.Join(t.TempDir(), "missing.ttml")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestGetEnvOrDefault(t *testing.T) {
	t.Setenv("SYNCLYRICS_TEST_VALUE", "set")
	t.Setenv("SYNCLYRICS_TEST_INT", "not-a-number")

	if got := GetEnvOrDefault("SYNCLYRICS_TEST_VALUE", "default"); got != "set" {
		t.Errorf("Expected 'set', got '%s'", got)
	}
	if got := GetEnvOrDefault("SYNCLYRICS_TEST_UNSET", "default"); got != "default" {
		t.Errorf("Expected 'default', got '%s'", got)
	}
	if got := GetEnvIntOrDefault("SYNCLYRICS_TEST_INT", 7); got != 7 {
		t.Errorf("Expected fallback 7, got %d", got)
	}
}
