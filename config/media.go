package config

import "github.com/fucina/flexhibition-api/models"

// MediaTypeSettings describes where a media type is stored and what uploads
// are acceptable for it. Adding a type is a data change here, not a code
// change elsewhere.
type MediaTypeSettings struct {
	Folder     string
	Extensions []string
	MaxSizeKB  int64
}

var mediaTypeSettings = map[models.MediaType]MediaTypeSettings{
	models.MediaTypeImage: {
		Folder:     "media/images",
		Extensions: []string{"jpg", "jpeg", "png", "gif", "webp", "svg"},
		MaxSizeKB:  5120,
	},
	models.MediaTypeVideo: {
		Folder:     "media/videos",
		Extensions: []string{"mp4", "avi", "mov", "wmv", "flv", "webm"},
		MaxSizeKB:  102400,
	},
	models.MediaTypeAudio: {
		Folder:     "media/audio",
		Extensions: []string{"mp3", "wav", "ogg", "flac", "m4a", "aac"},
		MaxSizeKB:  10240,
	},
	models.MediaTypeDocument: {
		Folder:     "media/documents",
		Extensions: []string{"pdf", "doc", "docx", "xls", "xlsx", "ppt", "pptx", "txt"},
		MaxSizeKB:  10240,
	},
	models.MediaTypeQr: {
		Folder:     "media/qr-codes",
		Extensions: []string{"png", "jpg", "jpeg", "svg"},
		MaxSizeKB:  2048,
	},
}

// SettingsForMediaType returns the settings for a media type; ok is false for
// unknown types.
func SettingsForMediaType(t models.MediaType) (MediaTypeSettings, bool) {
	s, ok := mediaTypeSettings[t]
	return s, ok
}
