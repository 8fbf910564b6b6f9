package workorder

import (
	"context"

	"github.com/AtlasFacilities/service-desk-api/internal/audit"
	domain "github.com/AtlasFacilities/service-desk-api/internal/domain/workorder"
	"github.com/AtlasFacilities/service-desk-api/internal/httperr"
	"github.com/AtlasFacilities/service-desk-api/internal/models"
	"github.com/AtlasFacilities/service-desk-api/internal/timezone"
)

type CancelWorkOrder struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCancelWorkOrder(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CancelWorkOrder {
	return &CancelWorkOrder{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CancelWorkOrder) Execute(
	ctx context.Context,
	contractorID uint,
	userID uint,
	workOrderID uint,
) (*models.WorkOrder, error) {

	var updated *models.WorkOrder

	err := uc.repo.Transact(ctx, func(tx domain.Repository) error {
		wo, err := tx.GetForUpdate(ctx, workOrderID, contractorID)
		if err != nil {
			return httperr.ErrNotFound("work_order_not_found")
		}

		if err := domain.Cancel(wo, timezone.Now()); err != nil {
			return err
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
		Action:       "work_order_cancelled",
		Entity:       "work_order",
		EntityID:     &updated.ID,
	})

	return updated, nil
}
