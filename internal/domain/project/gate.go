package project

import (
	"github.com/shopspring/decimal"

	"github.com/AtlasFacilities/service-desk-api/internal/httperr"
	"github.com/AtlasFacilities/service-desk-api/internal/models"
)

// ===============================
// Project Status
// ===============================

type Status string

const (
	StatusPending Status = "pending"
	StatusActive  Status = "active"
)

// There is no stored "done" status: a project is implicitly done when all
// its work orders reach their terminal stage.

// ===============================
// Approval Gate
// ===============================

// CanApprove opens only while the project is pending and every work order
// carries a price. A client may request extra work, but never authorize
// spend the contractor has not priced.
func CanApprove(p *models.Project, workOrders []models.WorkOrder) error {
	if Status(p.Status) != StatusPending {
		return httperr.ErrStateConflict("not_pending")
	}

	for _, wo := range workOrders {
		if !wo.Price.Valid {
			return httperr.ErrStateConflict("pending_prices")
		}
	}

	return nil
}

// TotalValue recomputes Σ price over the present work orders, nulls as
// zero. Always derived, never read from a stored aggregate.
func TotalValue(workOrders []models.WorkOrder) decimal.Decimal {
	total := decimal.Zero
	for _, wo := range workOrders {
		if wo.Price.Valid {
			total = total.Add(wo.Price.Decimal)
		}
	}
	return total
}

// IsDone reports whether every work order reached a terminal stage, with
// at least one actually completed.
func IsDone(workOrders []models.WorkOrder) bool {
	completed := 0
	for _, wo := range workOrders {
		switch wo.Stage {
		case "completed":
			completed++
		case "cancelled":
		default:
			return false
		}
	}
	return completed > 0
}
