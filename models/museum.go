package models

import (
	"time"

	"gorm.io/gorm"
)

// Museum is the top level entity. Name and Description are per-language maps;
// galleries live in the museum_images join table.
type Museum struct {
	ID          uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	Name        Translations   `gorm:"type:jsonb;not null" json:"name"`
	Description Translations   `gorm:"type:jsonb" json:"description"`
	LogoID      *uint          `json:"logo_id"`
	Logo        *Media         `json:"logo,omitempty" gorm:"foreignKey:LogoID"`
	AudioID     *uint          `json:"audio_id"`
	Audio       *Media         `json:"audio,omitempty" gorm:"foreignKey:AudioID"`
	Exhibitions []Exhibition   `json:"exhibitions,omitempty" gorm:"foreignKey:MuseumID"`
}
