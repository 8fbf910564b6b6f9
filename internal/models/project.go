package models

import "time"

type Project struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	ContractorID uint   `json:"contractor_id"`
	BranchID     uint   `json:"branch_id"`
	Branch       Branch `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"branch"`

	Title       string `gorm:"size:150;not null" json:"title"`
	Description string `gorm:"size:500" json:"description"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`

	WorkOrders []WorkOrder `gorm:"foreignKey:ProjectID" json:"work_orders"`

	ApprovedAt *time.Time `json:"approved_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
