package upload

import (
	"testing"

	"github.com/mmcdole/vista/internal/domain"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func newService(t *testing.T) (*Service, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	return NewService(fs, "/data/uploads", nil), fs
}

func TestYouTubeID(t *testing.T) {
	tests := []struct {
		url  string
		want string
		ok   bool
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://youtube.com/watch?v=dQw4w9WgXcQ&t=42", "dQw4w9WgXcQ", true},
		{"https://www.youtube.com/embed/a_b-c1d2e3f", "a_b-c1d2e3f", true},
		{"https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://vimeo.com/123456", "", false},
		{"https://youtu.be/short", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			got, ok := YouTubeID(tt.url)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEmbedAndThumbnailURLs(t *testing.T) {
	url := "https://youtu.be/dQw4w9WgXcQ"
	assert.Equal(t, "https://www.youtube.com/embed/dQw4w9WgXcQ", EmbedURL(url))
	assert.Equal(t, "https://img.youtube.com/vi/dQw4w9WgXcQ/hqdefault.jpg", ThumbnailURL(url))

	assert.Equal(t, "https://example.com/a.mp4", EmbedURL("https://example.com/a.mp4"))
	assert.Empty(t, ThumbnailURL("https://example.com/a.mp4"))
}

func TestParseTags(t *testing.T) {
	assert.Equal(t, []string{"pasta", "italian", "quick meals"}, ParseTags(" pasta, italian,, quick meals ,"))
	assert.Empty(t, ParseTags(""))
}

func TestBuildValidation(t *testing.T) {
	s, _ := newService(t)

	_, err := s.Build(Form{Title: "  ", Type: domain.ItemTypeImage})
	assert.ErrorIs(t, err, domain.ErrTitleRequired)

	_, err = s.Build(Form{Title: "Clip", Type: "audio"})
	assert.ErrorIs(t, err, domain.ErrInvalidType)

	_, err = s.Build(Form{Title: "Clip", Type: domain.ItemTypeVideo, URL: "   "})
	assert.ErrorIs(t, err, domain.ErrSourceRequired)
}

func TestBuildYouTubeVideo(t *testing.T) {
	s, _ := newService(t)

	item, err := s.Build(Form{
		Title:       " Knife Skills ",
		Category:    "Cooking",
		Type:        domain.ItemTypeVideo,
		Description: " Dicing onions ",
		URL:         "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		Tags:        "knives, basics",
	})
	require.NoError(t, err)

	assert.Equal(t, "Knife Skills", item.Title)
	assert.Equal(t, "Dicing onions", item.Description)
	assert.Equal(t, "https://www.youtube.com/embed/dQw4w9WgXcQ", item.Source)
	assert.Equal(t, "https://img.youtube.com/vi/dQw4w9WgXcQ/hqdefault.jpg", item.Thumbnail)
	assert.Equal(t, []string{"knives", "basics"}, item.Tags)
	assert.Equal(t, []domain.Action{{Name: "Uploaded content", StartTime: "00:00:00", TimestampSec: 0}}, item.Actions)
	assert.Empty(t, item.ID)
}

func TestBuildImageWithoutSourceUsesPlaceholders(t *testing.T) {
	s, _ := newService(t)

	item, err := s.Build(Form{Title: "Sketch", Type: domain.ItemTypeImage})
	require.NoError(t, err)

	assert.Equal(t, domain.PlaceholderSource, item.Source)
	assert.Equal(t, domain.PlaceholderThumbnail, item.Thumbnail)
	assert.Equal(t, "Other", item.Category)
}

func TestBuildDirectLinkKeepsURL(t *testing.T) {
	s, _ := newService(t)

	item, err := s.Build(Form{Title: "Sunset", Type: domain.ItemTypeImage, URL: "https://example.com/sunset.jpg"})
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/sunset.jpg", item.Source)
	assert.Equal(t, "https://example.com/sunset.jpg", item.Thumbnail)
}

func TestBuildCopiesImageFile(t *testing.T) {
	s, fs := newService(t)
	require.NoError(t, afero.WriteFile(fs, "/home/me/latte.png", pngHeader, 0644))

	item, err := s.Build(Form{Title: "Latte", Type: domain.ItemTypeImage, FilePath: "/home/me/latte.png"})
	require.NoError(t, err)

	assert.Equal(t, "/data/uploads/latte.png", item.Source)
	assert.Equal(t, item.Source, item.Thumbnail)

	copied, err := afero.ReadFile(fs, "/data/uploads/latte.png")
	require.NoError(t, err)
	assert.Equal(t, pngHeader, copied)
}

func TestBuildRejectsUnsupportedFile(t *testing.T) {
	s, fs := newService(t)
	require.NoError(t, afero.WriteFile(fs, "/home/me/notes.txt", []byte("just some text"), 0644))

	_, err := s.Build(Form{Title: "Notes", Type: domain.ItemTypeImage, FilePath: "/home/me/notes.txt"})
	assert.ErrorIs(t, err, domain.ErrUnsupportedUpload)

	exists, err := afero.Exists(fs, "/data/uploads/notes.txt")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestBuildRejectsKindMismatch(t *testing.T) {
	s, fs := newService(t)
	require.NoError(t, afero.WriteFile(fs, "/home/me/latte.png", pngHeader, 0644))

	_, err := s.Build(Form{Title: "Latte", Type: domain.ItemTypeVideo, FilePath: "/home/me/latte.png"})
	assert.ErrorIs(t, err, domain.ErrUnsupportedUpload)
}
