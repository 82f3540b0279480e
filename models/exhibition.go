package models

import (
	"time"

	"gorm.io/gorm"
)

type Exhibition struct {
	ID          uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	Name        Translations   `gorm:"type:jsonb;not null" json:"name"`
	Description Translations   `gorm:"type:jsonb" json:"description"`
	StartDate   *time.Time     `json:"start_date"`
	EndDate     *time.Time     `json:"end_date"`
	IsArchived  bool           `gorm:"default:false" json:"is_archived"`
	MuseumID    *uint          `gorm:"index" json:"museum_id"`
	Museum      *Museum        `json:"museum,omitempty" gorm:"foreignKey:MuseumID"`
	AudioID     *uint          `json:"audio_id"`
	Audio       *Media         `json:"audio,omitempty" gorm:"foreignKey:AudioID"`
	Posts       []Post         `json:"posts,omitempty" gorm:"foreignKey:ExhibitionID"`
}

// IsActive reports whether the exhibition is currently open: not archived and
// within its start/end dates when those are set.
func (e *Exhibition) IsActive() bool {
	if e.IsArchived {
		return false
	}
	now := time.Now()
	if e.StartDate != nil && now.Before(*e.StartDate) {
		return false
	}
	if e.EndDate != nil && now.After(*e.EndDate) {
		return false
	}
	return true
}

// ScopeActive narrows a query to exhibitions that are open right now.
func ScopeActive(db *gorm.DB) *gorm.DB {
	now := time.Now()
	return db.Where("is_archived = ?", false).
		Where("start_date IS NULL OR start_date <= ?", now).
		Where("end_date IS NULL OR end_date >= ?", now)
}
