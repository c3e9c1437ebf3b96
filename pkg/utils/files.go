package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// lyricsExtensions are the file extensions treated as lyrics documents.
var lyricsExtensions = map[string]bool{
	".ttml": true,
	".xml":  true,
}

// ReadInput reads the file at path, or standard input when path is "-".
func ReadInput(path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// IsLyricsFile reports whether path has a lyrics document extension.
func IsLyricsFile(path string) bool {
	return lyricsExtensions[strings.ToLower(filepath.Ext(path))]
}

// ListLyricsFiles returns the lyrics files directly inside dir, sorted by name.
func ListLyricsFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !IsLyricsFile(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// MakeDir creates a directory with all parent directories
func MakeDir(path string) error {
	return os.MkdirAll(path, 0755)
}
