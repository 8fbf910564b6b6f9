package project

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/AtlasFacilities/service-desk-api/internal/httperr"
	"github.com/AtlasFacilities/service-desk-api/internal/models"
)

func priced(v int64) models.WorkOrder {
	return models.WorkOrder{Price: decimal.NewNullDecimal(decimal.NewFromInt(v))}
}

func unpriced() models.WorkOrder {
	return models.WorkOrder{}
}

func TestCanApprove(t *testing.T) {
	t.Run("pending and fully priced", func(t *testing.T) {
		p := &models.Project{Status: string(StatusPending)}
		if err := CanApprove(p, []models.WorkOrder{priced(100), priced(50)}); err != nil {
			t.Fatalf("gate should open: %v", err)
		}
	})

	t.Run("one unpriced order blocks", func(t *testing.T) {
		p := &models.Project{Status: string(StatusPending)}
		err := CanApprove(p, []models.WorkOrder{priced(100), unpriced()})
		if !httperr.IsBusiness(err, "pending_prices") {
			t.Fatalf("expected pending_prices, got %v", err)
		}
	})

	t.Run("already active", func(t *testing.T) {
		p := &models.Project{Status: string(StatusActive)}
		err := CanApprove(p, []models.WorkOrder{priced(100)})
		if !httperr.IsBusiness(err, "not_pending") {
			t.Fatalf("expected not_pending, got %v", err)
		}
	})

	t.Run("zero price is a price", func(t *testing.T) {
		// A zero price is a deliberate decision; only null blocks.
		p := &models.Project{Status: string(StatusPending)}
		if err := CanApprove(p, []models.WorkOrder{priced(0)}); err != nil {
			t.Fatalf("zero-priced order should not block: %v", err)
		}
	})
}

func TestTotalValue(t *testing.T) {
	orders := []models.WorkOrder{priced(100), unpriced(), priced(50)}

	if got := TotalValue(orders); !got.Equal(decimal.NewFromInt(150)) {
		t.Fatalf("TotalValue = %s, want 150", got)
	}

	if got := TotalValue(nil); !got.Equal(decimal.Zero) {
		t.Fatalf("TotalValue(nil) = %s, want 0", got)
	}
}

func TestApprovalScenario(t *testing.T) {
	// Project with [100, null]: rejected. Price the second at 50: approved
	// with total 150.
	p := &models.Project{Status: string(StatusPending)}
	orders := []models.WorkOrder{priced(100), unpriced()}

	if err := CanApprove(p, orders); !httperr.IsBusiness(err, "pending_prices") {
		t.Fatalf("expected pending_prices, got %v", err)
	}

	orders[1].Price = decimal.NewNullDecimal(decimal.NewFromInt(50))

	if err := CanApprove(p, orders); err != nil {
		t.Fatalf("gate should open after pricing: %v", err)
	}
	if got := TotalValue(orders); !got.Equal(decimal.NewFromInt(150)) {
		t.Fatalf("total = %s, want 150", got)
	}
}

func TestIsDone(t *testing.T) {
	done := []models.WorkOrder{
		{Stage: "completed"},
		{Stage: "cancelled"},
		{Stage: "completed"},
	}
	if !IsDone(done) {
		t.Fatalf("all-terminal project should be done")
	}

	if IsDone([]models.WorkOrder{{Stage: "completed"}, {Stage: "in_progress"}}) {
		t.Fatalf("project with open work should not be done")
	}

	if IsDone([]models.WorkOrder{{Stage: "cancelled"}}) {
		t.Fatalf("fully cancelled project is not done")
	}
}
