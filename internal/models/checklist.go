package models

import "time"

// Checklist is an inspection run with ordered items. Distinct from the
// billing work orders even where the UI calls both "checklist items".
type Checklist struct {
	ID           uint  `gorm:"primaryKey" json:"id"`
	ContractorID uint  `json:"contractor_id"`
	BranchID     uint  `json:"branch_id"`
	ProjectID    *uint `json:"project_id"`

	Name   string `gorm:"size:150;not null" json:"name"`
	Status string `gorm:"size:20;default:'draft'" json:"status"`

	Items []ChecklistItem `gorm:"foreignKey:ChecklistID" json:"items"`

	StartedAt   *time.Time `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ChecklistItem struct {
	ID          uint `gorm:"primaryKey" json:"id"`
	ChecklistID uint `json:"checklist_id"`

	Position int    `json:"position"`
	Label    string `gorm:"size:255;not null" json:"label"`

	Done   bool       `gorm:"default:false" json:"done"`
	DoneAt *time.Time `json:"done_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
