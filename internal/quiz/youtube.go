package quiz

import (
	"errors"
	"net/url"
	"regexp"
	"strings"
)

var (
	ErrNotYouTube     = errors.New("URL must be a YouTube link")
	ErrInvalidVideoID = errors.New("invalid YouTube video ID")
)

var videoIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

var youtubeHosts = map[string]bool{
	"youtube.com":     true,
	"www.youtube.com": true,
	"m.youtube.com":   true,
	"youtu.be":        true,
}

// NormalizeVideoURL validates that rawURL points at a YouTube video and
// rewrites it to the canonical watch form. The canonical URL, not the user's
// original string, is what gets stored and fed to the pipeline.
func NormalizeVideoURL(rawURL string) (string, error) {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", ErrNotYouTube
	}

	host := strings.ToLower(parsed.Hostname())
	if !youtubeHosts[host] {
		return "", ErrNotYouTube
	}

	var videoID string
	if host == "youtu.be" {
		videoID = strings.TrimPrefix(parsed.Path, "/")
	} else {
		videoID = parsed.Query().Get("v")
	}

	if !videoIDRe.MatchString(videoID) {
		return "", ErrInvalidVideoID
	}

	return "https://www.youtube.com/watch?v=" + videoID, nil
}
