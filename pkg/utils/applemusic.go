package utils

import (
	"fmt"
	"net/url"
	"strings"
)

// ExtractTrackID returns the catalog song id from an Apple Music link.
//
// Album links carry the song in the "i" query parameter
// (https://music.apple.com/gb/album/name/1440818839?i=1440819047); song
// links end with the id (https://music.apple.com/gb/song/name/1440819047).
func ExtractTrackID(musicURL string) (string, error) {
	u, err := url.Parse(musicURL)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}

	if !IsAppleMusicURL(musicURL) {
		return "", fmt.Errorf("not an Apple Music URL: %s", musicURL)
	}

	if id := u.Query().Get("i"); id != "" {
		if !isNumeric(id) {
			return "", fmt.Errorf("invalid song id %q in URL", id)
		}
		return id, nil
	}

	// /{storefront}/song/{name}/{id}, name is optional
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segments) >= 3 && segments[1] == "song" {
		if last := segments[len(segments)-1]; isNumeric(last) {
			return last, nil
		}
	}

	return "", fmt.Errorf("unable to extract song ID from URL: %s", musicURL)
}

// IsAppleMusicURL reports whether urlStr points at music.apple.com.
func IsAppleMusicURL(urlStr string) bool {
	u, err := url.Parse(urlStr)
	if err != nil {
		return false
	}

	host := strings.ToLower(u.Hostname())
	return host == "music.apple.com" || strings.HasSuffix(host, ".music.apple.com")
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
