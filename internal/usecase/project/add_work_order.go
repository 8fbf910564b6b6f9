package project

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/AtlasFacilities/service-desk-api/internal/audit"
	domain "github.com/AtlasFacilities/service-desk-api/internal/domain/project"
	"github.com/AtlasFacilities/service-desk-api/internal/domain/workorder"
	"github.com/AtlasFacilities/service-desk-api/internal/httperr"
	"github.com/AtlasFacilities/service-desk-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type AddWorkOrderInput struct {
	ContractorID uint
	UserID       uint
	ProjectID    uint

	Title         string
	Description   string
	ScheduledDate *time.Time

	// Price is only honored when CanPrice is set; client additions always
	// land unpriced, re-closing the approval gate until the contractor
	// prices them.
	Price    *decimal.Decimal
	CanPrice bool
}

// ======================================================
// USE CASE
// ======================================================

type AddWorkOrder struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewAddWorkOrder(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *AddWorkOrder {
	return &AddWorkOrder{
		repo:  repo,
		audit: audit,
	}
}

func (uc *AddWorkOrder) Execute(
	ctx context.Context,
	in AddWorkOrderInput,
) (*models.WorkOrder, error) {

	if in.Title == "" {
		return nil, httperr.ErrValidation("missing_title")
	}

	p, err := uc.repo.Get(ctx, in.ProjectID, in.ContractorID)
	if err != nil {
		return nil, httperr.ErrNotFound("project_not_found")
	}

	wo := &models.WorkOrder{
		ContractorID:  in.ContractorID,
		ProjectID:     p.ID,
		Title:         in.Title,
		Description:   in.Description,
		Stage:         string(workorder.InitialStage()),
		ScheduledDate: in.ScheduledDate,
		PaymentStatus: string(workorder.PaymentUnpaid),
	}

	if in.CanPrice {
		wo.Type = "scheduled"
		if in.Price != nil {
			if in.Price.IsNegative() {
				return nil, httperr.ErrValidation("negative_price")
			}
			wo.Price = decimal.NewNullDecimal(*in.Price)
		}
	} else {
		wo.Type = "adhoc"
	}

	if err := uc.repo.AddWorkOrder(ctx, wo); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ContractorID: in.ContractorID,
		UserID:       &in.UserID,
		Action:       "work_order_added",
		Entity:       "work_order",
		EntityID:     &wo.ID,
	})

	return wo, nil
}
