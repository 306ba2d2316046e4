package models

import "time"

type Company struct {
	ID   int64  `gorm:"primaryKey" json:"id"`
	Name string `json:"name"`
	Code string `gorm:"index" json:"code"`
	// Description holds the storage URL of the latest archived filing.
	Description string     `json:"description"`
	ValidFrom   *time.Time `json:"valid_from"`
	ValidTo     *time.Time `json:"valid_to"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
