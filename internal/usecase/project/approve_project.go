package project

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/AtlasFacilities/service-desk-api/internal/audit"
	domain "github.com/AtlasFacilities/service-desk-api/internal/domain/project"
	"github.com/AtlasFacilities/service-desk-api/internal/httperr"
	"github.com/AtlasFacilities/service-desk-api/internal/infra/notify"
	"github.com/AtlasFacilities/service-desk-api/internal/models"
	"github.com/AtlasFacilities/service-desk-api/internal/timezone"
)

type ApproveProject struct {
	repo   domain.Repository
	events notify.Publisher
	audit  *audit.Dispatcher
}

func NewApproveProject(
	repo domain.Repository,
	events notify.Publisher,
	audit *audit.Dispatcher,
) *ApproveProject {
	return &ApproveProject{
		repo:   repo,
		events: events,
		audit:  audit,
	}
}

// Execute runs the client approval gate. The gate check and the status
// write live in the same transaction behind a row lock, so two concurrent
// approvals cannot both observe a stale pending state. On success the
// project activates and its contract is spawned.
func (uc *ApproveProject) Execute(
	ctx context.Context,
	contractorID uint,
	userID uint,
	projectID uint,
) (*models.Project, error) {

	var approved *models.Project

	err := uc.repo.Transact(ctx, func(tx domain.Repository) error {
		p, err := tx.GetForUpdate(ctx, projectID, contractorID)
		if err != nil {
			return httperr.ErrNotFound("project_not_found")
		}

		orders, err := tx.ListWorkOrders(ctx, p.ID)
		if err != nil {
			return err
		}

		if err := domain.CanApprove(p, orders); err != nil {
			return err
		}

		now := timezone.Now()
		p.Status = string(domain.StatusActive)
		p.ApprovedAt = &now

		if err := tx.Update(ctx, p); err != nil {
			return err
		}

		contract := &models.Contract{
			ContractorID: contractorID,
			ProjectID:    p.ID,
			Number:       fmt.Sprintf("CT-%s", uuid.NewString()[:8]),
			Status:       "draft",
			StartDate:    p.StartDate,
			EndDate:      p.EndDate,
		}
		if err := tx.CreateContract(ctx, contract); err != nil {
			return err
		}

		approved = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := uc.events.Publish(ctx, notify.EventProjectApproved, map[string]any{
		"project_id":  approved.ID,
		"branch_id":   approved.BranchID,
		"approved_at": approved.ApprovedAt.Format(time.RFC3339),
	}); err != nil {
		log.Printf("publish %s failed: %v", notify.EventProjectApproved, err)
	}

	uc.audit.Dispatch(audit.Event{
		ContractorID: contractorID,
		UserID:       &userID,
		Action:       "project_approved",
		Entity:       "project",
		EntityID:     &approved.ID,
	})

	return approved, nil
}
