package synclyrics

import (
	"encoding/json"
	"fmt"
)

// Serialize renders doc as JSON with the top-level fields lyrics,
// leadingSilence and songwriters. Nil slices are written as empty arrays.
func Serialize(doc *LyricsDocument) (string, error) {
	if doc == nil {
		return "", fmt.Errorf("serialize: nil document")
	}

	out := *doc
	if out.Lines == nil {
		out.Lines = []LyricLine{}
	}
	if out.Songwriters == nil {
		out.Songwriters = []string{}
	}

	data, err := json.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("serialize lyrics: %w", err)
	}
	return string(data), nil
}

// ParseLyrics parses raw markup and returns the serialized document. It
// fails as a whole on any structural or parse error.
func ParseLyrics(raw string) (string, error) {
	doc, err := Parse(raw)
	if err != nil {
		return "", err
	}
	return Serialize(doc)
}
