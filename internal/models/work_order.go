package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type WorkOrder struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	ContractorID uint `json:"contractor_id"`
	ProjectID    uint `json:"project_id"`

	// Optional checklist grouping; billing stays on the work order itself.
	ChecklistID *uint `json:"checklist_id"`

	Title       string `gorm:"size:150;not null" json:"title"`
	Description string `gorm:"size:500" json:"description"`

	Type  string `gorm:"size:20;default:'scheduled'" json:"type"`
	Stage string `gorm:"size:20;default:'requested'" json:"stage"`

	// Price is nullable on purpose: an invalid NullDecimal means
	// "awaiting pricing", which blocks project approval. Never zero.
	Price         decimal.NullDecimal `gorm:"type:decimal(12,2)" json:"price"`
	ScheduledDate *time.Time          `json:"scheduled_date"`

	PaymentStatus string `gorm:"size:25;default:'unpaid'" json:"payment_status"`

	ProofURL         string     `gorm:"size:500" json:"proof_url"`
	ProofType        string     `gorm:"size:10" json:"proof_type"`
	ProofFileName    string     `gorm:"size:255" json:"proof_file_name"`
	ProofSubmittedAt *time.Time `json:"proof_submitted_at"`

	CompletedAt *time.Time `json:"completed_at"`
	CancelledAt *time.Time `json:"cancelled_at"`
	PaidAt      *time.Time `json:"paid_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
