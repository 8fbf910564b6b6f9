package models

import "time"

// Contract is spawned when a project is approved. At most one per project.
type Contract struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	ContractorID uint `json:"contractor_id"`
	ProjectID    uint `gorm:"uniqueIndex" json:"project_id"`

	Number string `gorm:"size:40;uniqueIndex;not null" json:"number"`
	Status string `gorm:"size:25;default:'draft'" json:"status"`

	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`

	// Stored object key of the captured signature image (webp).
	SignatureURL string     `gorm:"size:500" json:"signature_url"`
	SignedAt     *time.Time `json:"signed_at"`
	SignedBy     *uint      `json:"signed_by"`

	TerminatedAt *time.Time `json:"terminated_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
