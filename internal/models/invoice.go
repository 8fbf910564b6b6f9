package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Invoice struct {
	ID           uint  `gorm:"primaryKey" json:"id"`
	ContractorID uint  `json:"contractor_id"`
	BranchID     uint  `json:"branch_id"`
	ProjectID    *uint `json:"project_id"`

	Number string `gorm:"size:40;uniqueIndex;not null" json:"number"`
	Status string `gorm:"size:20;default:'draft'" json:"status"`

	DueDate *time.Time `json:"due_date"`

	TaxRate   decimal.Decimal `gorm:"type:decimal(5,2)" json:"tax_rate"`
	Subtotal  decimal.Decimal `gorm:"type:decimal(12,2)" json:"subtotal"`
	TaxAmount decimal.Decimal `gorm:"type:decimal(12,2)" json:"tax_amount"`
	Total     decimal.Decimal `gorm:"type:decimal(12,2)" json:"total"`

	AmountPaid decimal.Decimal `gorm:"type:decimal(12,2)" json:"amount_paid"`

	Items []InvoiceItem `gorm:"foreignKey:InvoiceID" json:"items"`

	ProofURL         string     `gorm:"size:500" json:"proof_url"`
	ProofType        string     `gorm:"size:10" json:"proof_type"`
	ProofFileName    string     `gorm:"size:255" json:"proof_file_name"`
	ProofSubmittedAt *time.Time `json:"proof_submitted_at"`

	SentAt      *time.Time `json:"sent_at"`
	PaidAt      *time.Time `json:"paid_at"`
	CancelledAt *time.Time `json:"cancelled_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type InvoiceItem struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	InvoiceID uint `json:"invoice_id"`

	// Base name of the work-order group this line bills, when built from
	// a project; free-form lines leave it empty.
	GroupName string `gorm:"size:150" json:"group_name"`

	Description string          `gorm:"size:255;not null" json:"description"`
	Quantity    decimal.Decimal `gorm:"type:decimal(10,2)" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2)" json:"unit_price"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2)" json:"amount"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
