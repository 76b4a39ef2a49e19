package upload

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
	"github.com/mmcdole/vista/internal/domain"
	"github.com/spf13/afero"
)

// Categories offered when adding an item
var Categories = []string{"Cooking", "Fitness", "Technology", "Music", "Art", "Other"}

// allowedExtensions are the upload kinds accepted, keyed by detected extension
var allowedExtensions = map[string]bool{
	"jpg":  true,
	"png":  true,
	"gif":  true,
	"mp4":  true,
	"webm": true,
}

// headerSize is enough for filetype to recognize every allowed kind
const headerSize = 262

// Form is the raw input for a new gallery item
type Form struct {
	Title       string
	Category    string
	Type        domain.ItemType
	Description string
	URL         string // YouTube or direct link
	FilePath    string // Local file to copy into the uploads directory
	Tags        string // Comma separated
}

// Service turns forms into gallery items, copying local files into the uploads directory
type Service struct {
	fs         afero.Fs
	uploadsDir string
	logger     *slog.Logger
}

func NewService(fs afero.Fs, uploadsDir string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{fs: fs, uploadsDir: uploadsDir, logger: logger}
}

// Build validates the form and resolves the item's source and thumbnail.
// The returned item has no id; it is assigned when the item is stored.
func (s *Service) Build(form Form) (domain.GalleryItem, error) {
	title := strings.TrimSpace(form.Title)
	if title == "" {
		return domain.GalleryItem{}, domain.ErrTitleRequired
	}
	if !form.Type.Valid() {
		return domain.GalleryItem{}, fmt.Errorf("%w: %q", domain.ErrInvalidType, form.Type)
	}

	url := strings.TrimSpace(form.URL)
	filePath := strings.TrimSpace(form.FilePath)
	isVideo := form.Type == domain.ItemTypeVideo
	if isVideo && url == "" && filePath == "" {
		return domain.GalleryItem{}, domain.ErrSourceRequired
	}

	source, thumbnail := url, url
	switch {
	case filePath != "":
		stored, err := s.store(filePath, form.Type)
		if err != nil {
			return domain.GalleryItem{}, err
		}
		source = stored
		thumbnail = domain.PlaceholderThumbnail
		if !isVideo {
			thumbnail = stored
		}
	case isVideo:
		if _, ok := YouTubeID(url); ok {
			source = EmbedURL(url)
			thumbnail = ThumbnailURL(url)
		}
	}

	if source == "" {
		source = domain.PlaceholderSource
	}
	if thumbnail == "" {
		thumbnail = domain.PlaceholderThumbnail
	}

	category := strings.TrimSpace(form.Category)
	if category == "" {
		category = "Other"
	}

	return domain.GalleryItem{
		Title:       title,
		Category:    category,
		Type:        form.Type,
		Description: strings.TrimSpace(form.Description),
		Source:      source,
		Thumbnail:   thumbnail,
		Actions:     []domain.Action{{Name: "Uploaded content", StartTime: "00:00:00", TimestampSec: 0}},
		Transcript:  "",
		Tags:        ParseTags(form.Tags),
	}, nil
}

// ParseTags splits a comma separated list, dropping blanks
func ParseTags(raw string) []string {
	tags := []string{}
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// store checks the file's content type and copies it into the uploads directory
func (s *Service) store(path string, itemType domain.ItemType) (string, error) {
	src, err := s.fs.Open(path)
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	head := make([]byte, headerSize)
	n, err := io.ReadFull(src, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", fmt.Errorf("read upload: %w", err)
	}

	kind, err := filetype.Match(head[:n])
	if err != nil || kind == filetype.Unknown || !allowedExtensions[kind.Extension] {
		return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedUpload, filepath.Base(path))
	}
	if kind.MIME.Type != string(itemType) {
		return "", fmt.Errorf("%w: %s is %s content, not %s", domain.ErrUnsupportedUpload, filepath.Base(path), kind.MIME.Type, itemType)
	}

	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind upload: %w", err)
	}

	if err := s.fs.MkdirAll(s.uploadsDir, 0755); err != nil {
		return "", fmt.Errorf("create uploads directory: %w", err)
	}

	dest := filepath.Join(s.uploadsDir, filepath.Base(path))
	if filepath.Clean(path) == dest {
		return dest, nil
	}
	dst, err := s.fs.Create(dest)
	if err != nil {
		return "", fmt.Errorf("create upload copy: %w", err)
	}

	written, err := io.Copy(dst, src)
	if closeErr := dst.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = s.fs.Remove(dest)
		return "", fmt.Errorf("copy upload: %w", err)
	}

	s.logger.Info("stored upload", "file", dest, "kind", kind.Extension, "bytes", written)
	return dest, nil
}
