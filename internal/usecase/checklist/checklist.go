package checklist

import (
	"context"

	"github.com/AtlasFacilities/service-desk-api/internal/audit"
	domain "github.com/AtlasFacilities/service-desk-api/internal/domain/checklist"
	"github.com/AtlasFacilities/service-desk-api/internal/httperr"
	"github.com/AtlasFacilities/service-desk-api/internal/models"
	"github.com/AtlasFacilities/service-desk-api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateInput struct {
	BranchID  uint
	ProjectID *uint
	Name      string
	Items     []string
}

// ======================================================
// USE CASE
// ======================================================

type UseCase struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUseCase(repo domain.Repository, audit *audit.Dispatcher) *UseCase {
	return &UseCase{repo: repo, audit: audit}
}

func (uc *UseCase) Create(
	ctx context.Context,
	contractorID uint,
	userID uint,
	in CreateInput,
) (*models.Checklist, error) {

	if in.Name == "" {
		return nil, httperr.ErrValidation("missing_name")
	}
	if len(in.Items) == 0 {
		return nil, httperr.ErrValidation("no_items")
	}

	cl := &models.Checklist{
		ContractorID: contractorID,
		BranchID:     in.BranchID,
		ProjectID:    in.ProjectID,
		Name:         in.Name,
		Status:       string(domain.Draft),
	}
	for i, label := range in.Items {
		if label == "" {
			return nil, httperr.ErrValidation("missing_item_label")
		}
		cl.Items = append(cl.Items, models.ChecklistItem{
			Position: i + 1,
			Label:    label,
		})
	}

	if err := uc.repo.Create(ctx, cl); err != nil {
		return nil, err
	}

	uc.auditAction(contractorID, userID, "checklist_created", cl.ID)
	return cl, nil
}

func (uc *UseCase) Start(
	ctx context.Context,
	contractorID uint,
	userID uint,
	checklistID uint,
) (*models.Checklist, error) {

	cl, err := uc.transition(ctx, contractorID, checklistID, func(cl *models.Checklist) error {
		return domain.Start(cl, timezone.Now())
	})
	if err != nil {
		return nil, err
	}

	uc.auditAction(contractorID, userID, "checklist_started", cl.ID)
	return cl, nil
}

func (uc *UseCase) TickItem(
	ctx context.Context,
	contractorID uint,
	userID uint,
	checklistID uint,
	itemID uint,
	done bool,
) (*models.Checklist, error) {

	var updated *models.Checklist

	err := uc.repo.Transact(ctx, func(tx domain.Repository) error {
		cl, err := tx.GetForUpdate(ctx, checklistID, contractorID)
		if err != nil {
			return httperr.ErrNotFound("checklist_not_found")
		}

		if err := domain.TickItem(cl, itemID, done, timezone.Now()); err != nil {
			return err
		}

		for i := range cl.Items {
			if cl.Items[i].ID == itemID {
				if err := tx.UpdateItem(ctx, &cl.Items[i]); err != nil {
					return err
				}
				break
			}
		}

		updated = cl
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.auditAction(contractorID, userID, "checklist_item_ticked", updated.ID)
	return updated, nil
}

func (uc *UseCase) Complete(
	ctx context.Context,
	contractorID uint,
	userID uint,
	checklistID uint,
) (*models.Checklist, error) {

	cl, err := uc.transition(ctx, contractorID, checklistID, func(cl *models.Checklist) error {
		return domain.Complete(cl, timezone.Now())
	})
	if err != nil {
		return nil, err
	}

	uc.auditAction(contractorID, userID, "checklist_completed", cl.ID)
	return cl, nil
}

func (uc *UseCase) transition(
	ctx context.Context,
	contractorID uint,
	checklistID uint,
	action func(*models.Checklist) error,
) (*models.Checklist, error) {

	var updated *models.Checklist

	err := uc.repo.Transact(ctx, func(tx domain.Repository) error {
		cl, err := tx.GetForUpdate(ctx, checklistID, contractorID)
		if err != nil {
			return httperr.ErrNotFound("checklist_not_found")
		}

		if err := action(cl); err != nil {
			return err
		}

		if err := tx.Update(ctx, cl); err != nil {
			return err
		}

		updated = cl
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (uc *UseCase) auditAction(contractorID, userID uint, action string, id uint) {
	uc.audit.Dispatch(audit.Event{
		ContractorID: contractorID,
		UserID:       &userID,
		Action:       action,
		Entity:       "checklist",
		EntityID:     &id,
	})
}
