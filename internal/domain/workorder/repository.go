package workorder

import (
	"context"

	"github.com/AtlasFacilities/service-desk-api/internal/models"
)

type Repository interface {
	// Transact runs fn against a repository bound to one DB transaction.
	// Every read-check-then-write transition goes through it.
	Transact(
		ctx context.Context,
		fn func(Repository) error,
	) error

	// Transition reads take a row lock so the state checked is the state
	// written against.
	GetForUpdate(
		ctx context.Context,
		id uint,
		contractorID uint,
	) (*models.WorkOrder, error)

	Get(
		ctx context.Context,
		id uint,
		contractorID uint,
	) (*models.WorkOrder, error)

	Update(
		ctx context.Context,
		wo *models.WorkOrder,
	) error

	ListByProject(
		ctx context.Context,
		projectID uint,
	) ([]models.WorkOrder, error)
}
