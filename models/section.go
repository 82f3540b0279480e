package models

import (
	"time"

	"gorm.io/gorm"
)

// Section is a standalone informational area (entrance hall, wing, floor).
// Each media slot holds at most one asset; the QR slot is generated by the
// backend, one code per configured language.
type Section struct {
	ID          uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	Title       Translations   `gorm:"type:jsonb;not null" json:"title"`
	Subtitle    Translations   `gorm:"type:jsonb" json:"subtitle"`
	Description Translations   `gorm:"type:jsonb" json:"description"`
	ImageID     *uint          `json:"image_id"`
	Image       *Media         `json:"image,omitempty" gorm:"foreignKey:ImageID"`
	VideoID     *uint          `json:"video_id"`
	Video       *Media         `json:"video,omitempty" gorm:"foreignKey:VideoID"`
	AudioID     *uint          `json:"audio_id"`
	Audio       *Media         `json:"audio,omitempty" gorm:"foreignKey:AudioID"`
	QrCodeID    *uint          `json:"qr_code_id"`
	QrCode      *Media         `json:"qr_code,omitempty" gorm:"foreignKey:QrCodeID"`
}
