package models

import "time"

// Branch is a serviced facility owned by a client company. Branches are
// never hard-deleted; IsActive flags retirement.
type Branch struct {
	ID              uint          `gorm:"primaryKey" json:"id"`
	ContractorID    uint          `json:"contractor_id"`
	ClientCompanyID uint          `json:"client_company_id"`
	ClientCompany   ClientCompany `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client_company"`

	Name    string `gorm:"size:100;not null" json:"name"`
	Address string `gorm:"size:255" json:"address"`
	City    string `gorm:"size:100" json:"city"`

	// Civil-defense certificate held by the facility itself.
	CertificateNumber string     `gorm:"size:50" json:"certificate_number"`
	CertificateExpiry *time.Time `json:"certificate_expiry"`

	IsActive bool `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
