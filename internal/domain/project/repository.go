package project

import (
	"context"

	"github.com/AtlasFacilities/service-desk-api/internal/models"
)

type Repository interface {
	// Transact runs fn against a repository bound to one DB transaction.
	// Approval is checked and written inside the same transaction.
	Transact(
		ctx context.Context,
		fn func(Repository) error,
	) error

	GetBranch(
		ctx context.Context,
		branchID uint,
		contractorID uint,
	) (*models.Branch, error)

	Create(
		ctx context.Context,
		p *models.Project,
	) error

	Get(
		ctx context.Context,
		id uint,
		contractorID uint,
	) (*models.Project, error)

	GetForUpdate(
		ctx context.Context,
		id uint,
		contractorID uint,
	) (*models.Project, error)

	Update(
		ctx context.Context,
		p *models.Project,
	) error

	ListWorkOrders(
		ctx context.Context,
		projectID uint,
	) ([]models.WorkOrder, error)

	AddWorkOrder(
		ctx context.Context,
		wo *models.WorkOrder,
	) error

	CreateContract(
		ctx context.Context,
		contract *models.Contract,
	) error
}
