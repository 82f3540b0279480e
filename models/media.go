package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type MediaType string

const (
	MediaTypeImage    MediaType = "image"
	MediaTypeVideo    MediaType = "video"
	MediaTypeAudio    MediaType = "audio"
	MediaTypeDocument MediaType = "document"
	MediaTypeQr       MediaType = "qr"
)

// Media represents a stored file per language plus its per-language metadata.
// URL, Title and Description are keyed by language code; every URL entry is
// expected to have a matching Title entry.
type Media struct {
	ID               uint              `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
	DeletedAt        gorm.DeletedAt    `gorm:"index" json:"-"`
	Type             MediaType         `gorm:"size:20;not null;index" json:"type"`
	URL              Translations      `gorm:"type:jsonb;not null" json:"url"`
	Title            Translations      `gorm:"type:jsonb;not null" json:"title"`
	Description      Translations      `gorm:"type:jsonb" json:"description"`
	Tags             pq.StringArray    `gorm:"type:text[]" json:"tags,omitempty"`
	CustomProperties datatypes.JSONMap `json:"custom_properties,omitempty"`
}

// MuseumImage links a media asset to a museum gallery.
type MuseumImage struct {
	MuseumID  uint      `gorm:"primaryKey;autoIncrement:false" json:"museum_id"`
	MediaID   uint      `gorm:"primaryKey;autoIncrement:false" json:"media_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ExhibitionImage links a media asset to an exhibition gallery.
type ExhibitionImage struct {
	ExhibitionID uint      `gorm:"primaryKey;autoIncrement:false" json:"exhibition_id"`
	MediaID      uint      `gorm:"primaryKey;autoIncrement:false" json:"media_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PostImage links a media asset to a post gallery.
type PostImage struct {
	PostID    uint      `gorm:"primaryKey;autoIncrement:false" json:"post_id"`
	MediaID   uint      `gorm:"primaryKey;autoIncrement:false" json:"media_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
