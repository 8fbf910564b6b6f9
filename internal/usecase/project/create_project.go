package project

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/AtlasFacilities/service-desk-api/internal/audit"
	domain "github.com/AtlasFacilities/service-desk-api/internal/domain/project"
	"github.com/AtlasFacilities/service-desk-api/internal/domain/workorder"
	"github.com/AtlasFacilities/service-desk-api/internal/httperr"
	"github.com/AtlasFacilities/service-desk-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateProjectInput struct {
	ContractorID uint
	UserID       uint

	BranchID    uint
	Title       string
	Description string

	StartDate time.Time
	EndDate   *time.Time

	Templates []workorder.Template
}

// ======================================================
// USE CASE
// ======================================================

type CreateProject struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateProject(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateProject {
	return &CreateProject{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute expands every template into its dated occurrences and persists
// the project plus all occurrence rows as one all-or-nothing unit. A
// partially expanded project is never observable.
func (uc *CreateProject) Execute(
	ctx context.Context,
	in CreateProjectInput,
) (*models.Project, error) {

	if in.Title == "" {
		return nil, httperr.ErrValidation("missing_title")
	}
	if len(in.Templates) == 0 {
		return nil, httperr.ErrValidation("no_work_orders")
	}
	for _, tpl := range in.Templates {
		if tpl.Name == "" {
			return nil, httperr.ErrValidation("missing_work_order_name")
		}
	}
	if in.EndDate != nil && in.EndDate.Before(in.StartDate) {
		return nil, httperr.ErrValidation("end_before_start")
	}

	branch, err := uc.repo.GetBranch(ctx, in.BranchID, in.ContractorID)
	if err != nil {
		return nil, httperr.ErrNotFound("branch_not_found")
	}
	if !branch.IsActive {
		return nil, httperr.ErrStateConflict("branch_inactive")
	}

	p := &models.Project{
		ContractorID: in.ContractorID,
		BranchID:     branch.ID,
		Title:        in.Title,
		Description:  in.Description,
		Status:       string(domain.StatusPending),
		StartDate:    in.StartDate,
		EndDate:      in.EndDate,
	}

	err = uc.repo.Transact(ctx, func(tx domain.Repository) error {
		if err := tx.Create(ctx, p); err != nil {
			return errors.Wrap(err, "create project")
		}

		for _, tpl := range in.Templates {
			for _, occ := range workorder.Expand(tpl, in.StartDate, in.EndDate) {
				wo := &models.WorkOrder{
					ContractorID:  in.ContractorID,
					ProjectID:     p.ID,
					Title:         occ.Name,
					Description:   occ.Description,
					Type:          occ.Type,
					Stage:         string(workorder.InitialStage()),
					Price:         occ.Price,
					ScheduledDate: occ.ScheduledDate,
					PaymentStatus: string(workorder.PaymentUnpaid),
				}
				if wo.Type == "" {
					wo.Type = "scheduled"
				}
				if err := tx.AddWorkOrder(ctx, wo); err != nil {
					return errors.Wrap(err, "create work order")
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ContractorID: in.ContractorID,
		UserID:       &in.UserID,
		Action:       "project_created",
		Entity:       "project",
		EntityID:     &p.ID,
	})

	return uc.repo.Get(ctx, p.ID, in.ContractorID)
}
