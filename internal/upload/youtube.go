package upload

import (
	"fmt"
	"regexp"
)

var youtubePatterns = []*regexp.Regexp{
	regexp.MustCompile(`youtube\.com/watch\?v=([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/embed/([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtu\.be/([a-zA-Z0-9_-]{11})`),
}

// YouTubeID extracts the 11 character video id from watch, embed and short URLs
func YouTubeID(url string) (string, bool) {
	for _, p := range youtubePatterns {
		if m := p.FindStringSubmatch(url); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// EmbedURL converts a YouTube URL to its embed form; other URLs are returned unchanged
func EmbedURL(url string) string {
	if id, ok := YouTubeID(url); ok {
		return fmt.Sprintf("https://www.youtube.com/embed/%s", id)
	}
	return url
}

// ThumbnailURL returns YouTube's preview image for the video, or "" for other URLs
func ThumbnailURL(url string) string {
	if id, ok := YouTubeID(url); ok {
		return fmt.Sprintf("https://img.youtube.com/vi/%s/hqdefault.jpg", id)
	}
	return ""
}
