package workorder

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/AtlasFacilities/service-desk-api/internal/audit"
	domain "github.com/AtlasFacilities/service-desk-api/internal/domain/workorder"
	"github.com/AtlasFacilities/service-desk-api/internal/httperr"
	"github.com/AtlasFacilities/service-desk-api/internal/models"
)

type SetPrice struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewSetPrice(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *SetPrice {
	return &SetPrice{
		repo:  repo,
		audit: audit,
	}
}

// Execute prices one occurrence. Siblings expanded from the same template
// are untouched; pricing is per-row by design.
func (uc *SetPrice) Execute(
	ctx context.Context,
	contractorID uint,
	userID uint,
	workOrderID uint,
	price decimal.Decimal,
	scheduledDate *time.Time,
) (*models.WorkOrder, error) {

	var updated *models.WorkOrder

	err := uc.repo.Transact(ctx, func(tx domain.Repository) error {
		wo, err := tx.GetForUpdate(ctx, workOrderID, contractorID)
		if err != nil {
			return httperr.ErrNotFound("work_order_not_found")
		}

		if err := domain.SetPrice(wo, price); err != nil {
			return err
		}
		if scheduledDate != nil {
			wo.ScheduledDate = scheduledDate
		}

		if err := tx.Update(ctx, wo); err != nil {
			return err
		}

		updated = wo
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ContractorID: contractorID,
		UserID:       &userID,
		Action:       "work_order_priced",
		Entity:       "work_order",
		EntityID:     &updated.ID,
		Metadata:     map[string]any{"price": price.String()},
	})

	return updated, nil
}
