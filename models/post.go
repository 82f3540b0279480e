package models

import (
	"time"

	"gorm.io/gorm"
)

type Post struct {
	ID           uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Name         Translations   `gorm:"type:jsonb;not null" json:"name"`
	Description  Translations   `gorm:"type:jsonb" json:"description"`
	Content      Translations   `gorm:"type:jsonb" json:"content"`
	ExhibitionID *uint          `gorm:"index" json:"exhibition_id"`
	Exhibition   *Exhibition    `json:"exhibition,omitempty" gorm:"foreignKey:ExhibitionID"`
	AudioID      *uint          `json:"audio_id"`
	Audio        *Media         `json:"audio,omitempty" gorm:"foreignKey:AudioID"`
}
