package models

import "time"

// Client organisation serviced by a contractor. Branches hang off it.
type ClientCompany struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	ContractorID uint `json:"contractor_id"`

	Name    string `gorm:"size:100;not null" json:"name"`
	Phone   string `gorm:"size:20" json:"phone"`
	Email   string `gorm:"size:100" json:"email"`
	Address string `gorm:"size:255" json:"address"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
