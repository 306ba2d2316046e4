package models

import "time"

type Notification struct {
	ID            int64  `gorm:"primaryKey" json:"id"`
	Content       string `gorm:"size:255;not null" json:"content"`
	ShortContent  string `gorm:"size:100;not null" json:"short_content"`
	DetailContent string `gorm:"type:text" json:"detail_content"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
