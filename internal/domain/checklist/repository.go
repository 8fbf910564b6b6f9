package checklist

import (
	"context"

	"github.com/AtlasFacilities/service-desk-api/internal/models"
)

type Repository interface {
	// Transact runs fn against a repository bound to one DB transaction.
	Transact(
		ctx context.Context,
		fn func(Repository) error,
	) error

	Create(
		ctx context.Context,
		cl *models.Checklist,
	) error

	Get(
		ctx context.Context,
		id uint,
		contractorID uint,
	) (*models.Checklist, error)

	GetForUpdate(
		ctx context.Context,
		id uint,
		contractorID uint,
	) (*models.Checklist, error)

	Update(
		ctx context.Context,
		cl *models.Checklist,
	) error

	UpdateItem(
		ctx context.Context,
		item *models.ChecklistItem,
	) error

	ListByBranch(
		ctx context.Context,
		branchID uint,
		contractorID uint,
	) ([]models.Checklist, error)
}
