package models

import "time"

// Equipment and Certificate carry expiry dates only; the expiring band is
// derived at read time and never stored.

type Equipment struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	ContractorID uint `json:"contractor_id"`
	BranchID     uint `json:"branch_id"`

	Name         string `gorm:"size:150;not null" json:"name"`
	SerialNumber string `gorm:"size:100" json:"serial_number"`
	Location     string `gorm:"size:255" json:"location"`

	ExpectedExpiry *time.Time `json:"expected_expiry"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Certificate struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	ContractorID uint `json:"contractor_id"`
	BranchID     uint `json:"branch_id"`

	Name   string `gorm:"size:150;not null" json:"name"`
	Number string `gorm:"size:100" json:"number"`

	ExpiryDate *time.Time `json:"expiry_date"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
