package billing

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

	// -------- Quotation --------
	CreateQuotation(
		ctx context.Context,
		q *models.Quotation,
	) error

	GetQuotation(
		ctx context.Context,
		id uint,
		contractorID uint,
	) (*models.Quotation, error)

	GetQuotationForUpdate(
		ctx context.Context,
		id uint,
		contractorID uint,
	) (*models.Quotation, error)

	UpdateQuotation(
		ctx context.Context,
		q *models.Quotation,
	) error

	ReplaceQuotationItems(
		ctx context.Context,
		q *models.Quotation,
		items []models.QuotationItem,
	) error

	DeleteQuotation(
		ctx context.Context,
		q *models.Quotation,
	) error

	// -------- Invoice --------
	CreateInvoice(
		ctx context.Context,
		inv *models.Invoice,
	) error

	GetInvoice(
		ctx context.Context,
		id uint,
		contractorID uint,
	) (*models.Invoice, error)

	GetInvoiceForUpdate(
		ctx context.Context,
		id uint,
		contractorID uint,
	) (*models.Invoice, error)

	UpdateInvoice(
		ctx context.Context,
		inv *models.Invoice,
	) error

	ReplaceInvoiceItems(
		ctx context.Context,
		inv *models.Invoice,
		items []models.InvoiceItem,
	) error

	DeleteInvoice(
		ctx context.Context,
		inv *models.Invoice,
	) error

	// -------- Sources --------
	ListCompletedWorkOrders(
		ctx context.Context,
		projectID uint,
	) ([]models.WorkOrder, error)
}
