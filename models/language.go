package models

import "time"

// Language is an enabled interface language. Exactly one row is expected to
// be flagged as primary; the primary language drives required-field
// validation and default display.
type Language struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Code      string    `gorm:"size:10;unique;not null" json:"code"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	IsPrimary bool      `gorm:"default:false" json:"is_primary"`
}
