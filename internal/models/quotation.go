package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Quotation struct {
	ID           uint  `gorm:"primaryKey" json:"id"`
	ContractorID uint  `json:"contractor_id"`
	BranchID     uint  `json:"branch_id"`
	ProjectID    *uint `json:"project_id"`

	Number string `gorm:"size:40;uniqueIndex;not null" json:"number"`
	Status string `gorm:"size:20;default:'draft'" json:"status"`

	ValidUntil *time.Time `json:"valid_until"`

	TaxRate   decimal.Decimal `gorm:"type:decimal(5,2)" json:"tax_rate"`
	Subtotal  decimal.Decimal `gorm:"type:decimal(12,2)" json:"subtotal"`
	TaxAmount decimal.Decimal `gorm:"type:decimal(12,2)" json:"tax_amount"`
	Total     decimal.Decimal `gorm:"type:decimal(12,2)" json:"total"`

	Items []QuotationItem `gorm:"foreignKey:QuotationID" json:"items"`

	RejectNote string     `gorm:"size:500" json:"reject_note"`
	SentAt     *time.Time `json:"sent_at"`
	DecidedAt  *time.Time `json:"decided_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type QuotationItem struct {
	ID          uint `gorm:"primaryKey" json:"id"`
	QuotationID uint `json:"quotation_id"`

	Description string          `gorm:"size:255;not null" json:"description"`
	Quantity    decimal.Decimal `gorm:"type:decimal(10,2)" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2)" json:"unit_price"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2)" json:"amount"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
