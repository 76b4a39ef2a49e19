package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrItemNotFound indicates the requested gallery item does not exist
	ErrItemNotFound = errors.New("gallery item not found")

	// ErrTitleRequired indicates an item was submitted with a blank title
	ErrTitleRequired = errors.New("title is required")

	// ErrInvalidType indicates an item type other than video or image
	ErrInvalidType = errors.New("item type must be video or image")

	// ErrInvalidAction indicates an action with a negative timestamp
	ErrInvalidAction = errors.New("action timestamp must not be negative")

	// ErrRatingOutOfRange indicates a rating outside 1-5
	ErrRatingOutOfRange = errors.New("rating must be between 1 and 5")

	// ErrPlaylistNameRequired indicates a blank playlist name
	ErrPlaylistNameRequired = errors.New("playlist name is required")

	// ErrSourceRequired indicates a video submitted without a URL or file
	ErrSourceRequired = errors.New("video requires a URL or a file")

	// ErrUnsupportedUpload indicates a file whose content is not an allowed media kind
	ErrUnsupportedUpload = errors.New("unsupported upload file type")
)
