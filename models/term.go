package models

import (
	"time"

	"gorm.io/gorm"
)

// Term is a glossary entry: a word and its definition, both per-language.
type Term struct {
	ID         uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
	Term       Translations   `gorm:"type:jsonb;not null" json:"term"`
	Definition Translations   `gorm:"type:jsonb" json:"definition"`
}
