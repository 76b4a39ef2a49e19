package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
)

// Document names
const (
	ItemsDocument     = "gallery_metadata.json"
	RatingsDocument   = "user_ratings.json"
	PlaylistsDocument = "user_playlists.json"
)

// ErrDocumentNotFound is returned by a Backend when a document was never saved
var ErrDocumentNotFound = errors.New("document not found")

// Backend persists whole named documents.
type Backend interface {
	// Read returns the raw bytes of the named document, or ErrDocumentNotFound
	Read(name string) ([]byte, error)

	// Write replaces the named document
	Write(name string, data []byte) error

	Close() error
}

// Documents loads and saves JSON documents on a Backend.
type Documents struct {
	backend Backend
	logger  *slog.Logger
}

func NewDocuments(backend Backend, logger *slog.Logger) *Documents {
	if logger == nil {
		logger = slog.Default()
	}
	return &Documents{backend: backend, logger: logger}
}

func (d *Documents) Close() error {
	return d.backend.Close()
}

// Load returns the named document decoded as T, or def when the document is
// missing, unreadable or not shaped like T.
func Load[T any](d *Documents, name string, def T) T {
	data, err := d.backend.Read(name)
	if err != nil {
		if errors.Is(err, ErrDocumentNotFound) {
			d.logger.Debug("document not found, using default", "document", name)
		} else {
			d.logger.Warn("failed to read document, using default", "document", name, "error", err)
		}
		return def
	}

	var doc T
	if err := json.Unmarshal(data, &doc); err != nil {
		d.logger.Warn("corrupt document, using default", "document", name, "error", err)
		return def
	}
	return doc
}

// Save serializes doc as indented JSON and overwrites the named document.
func Save(d *Documents, name string, doc any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}

	if err := d.backend.Write(name, buf.Bytes()); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	d.logger.Debug("saved document", "document", name, "bytes", buf.Len())
	return nil
}
