package services

import "errors"

// Validation failures are rejected before any file or database I/O.
var (
	ErrInvalidMediaType    = errors.New("invalid media type")
	ErrNoFiles             = errors.New("at least one language file is required")
	ErrMissingFile         = errors.New("missing upload for language")
	ErrMissingTitle        = errors.New("missing title for language")
	ErrExtensionNotAllowed = errors.New("file extension not allowed for media type")
	ErrFileTooLarge        = errors.New("file exceeds the maximum size for media type")
)

// ErrMediaNotFound is returned when the referenced media id does not exist.
var ErrMediaNotFound = errors.New("media not found")

// IsValidationError reports whether err is one of the pre-I/O input checks.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidMediaType) ||
		errors.Is(err, ErrNoFiles) ||
		errors.Is(err, ErrMissingFile) ||
		errors.Is(err, ErrMissingTitle) ||
		errors.Is(err, ErrExtensionNotAllowed) ||
		errors.Is(err, ErrFileTooLarge)
}
