package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/AtlasFacilities/service-desk-api/internal/domain/billing"
	"github.com/AtlasFacilities/service-desk-api/internal/models"
)

type BillingGormRepository struct {
	db *gorm.DB
}

func NewBillingGormRepository(db *gorm.DB) *BillingGormRepository {
	return &BillingGormRepository{db: db}
}

func (r *BillingGormRepository) Transact(
	ctx context.Context,
	fn func(domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&BillingGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Quotation
// --------------------------------------------------

func (r *BillingGormRepository) CreateQuotation(
	ctx context.Context,
	q *models.Quotation,
) error {
	return r.db.WithContext(ctx).Create(q).Error
}

func (r *BillingGormRepository) GetQuotation(
	ctx context.Context,
	id uint,
	contractorID uint,
) (*models.Quotation, error) {

	var q models.Quotation
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("id = ? AND contractor_id = ?", id, contractorID).
		First(&q).Error; err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *BillingGormRepository) GetQuotationForUpdate(
	ctx context.Context,
	id uint,
	contractorID uint,
) (*models.Quotation, error) {

	var q models.Quotation
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND contractor_id = ?", id, contractorID).
		First(&q).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).
		Where("quotation_id = ?", q.ID).
		Order("id ASC").
		Find(&q.Items).Error; err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *BillingGormRepository) UpdateQuotation(
	ctx context.Context,
	q *models.Quotation,
) error {
	return r.db.WithContext(ctx).Omit("Items").Save(q).Error
}

func (r *BillingGormRepository) ReplaceQuotationItems(
	ctx context.Context,
	q *models.Quotation,
	items []models.QuotationItem,
) error {

	if err := r.db.WithContext(ctx).
		Where("quotation_id = ?", q.ID).
		Delete(&models.QuotationItem{}).Error; err != nil {
		return err
	}

	for i := range items {
		items[i].ID = 0
		items[i].QuotationID = q.ID
	}
	q.Items = items

	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *BillingGormRepository) DeleteQuotation(
	ctx context.Context,
	q *models.Quotation,
) error {

	if err := r.db.WithContext(ctx).
		Where("quotation_id = ?", q.ID).
		Delete(&models.QuotationItem{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(q).Error
}

// --------------------------------------------------
// Invoice
// --------------------------------------------------

func (r *BillingGormRepository) CreateInvoice(
	ctx context.Context,
	inv *models.Invoice,
) error {
	return r.db.WithContext(ctx).Create(inv).Error
}

func (r *BillingGormRepository) GetInvoice(
	ctx context.Context,
	id uint,
	contractorID uint,
) (*models.Invoice, error) {

	var inv models.Invoice
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("id = ? AND contractor_id = ?", id, contractorID).
		First(&inv).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *BillingGormRepository) GetInvoiceForUpdate(
	ctx context.Context,
	id uint,
	contractorID uint,
) (*models.Invoice, error) {

	var inv models.Invoice
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND contractor_id = ?", id, contractorID).
		First(&inv).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).
		Where("invoice_id = ?", inv.ID).
		Order("id ASC").
		Find(&inv.Items).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *BillingGormRepository) UpdateInvoice(
	ctx context.Context,
	inv *models.Invoice,
) error {
	return r.db.WithContext(ctx).Omit("Items").Save(inv).Error
}

func (r *BillingGormRepository) ReplaceInvoiceItems(
	ctx context.Context,
	inv *models.Invoice,
	items []models.InvoiceItem,
) error {

	if err := r.db.WithContext(ctx).
		Where("invoice_id = ?", inv.ID).
		Delete(&models.InvoiceItem{}).Error; err != nil {
		return err
	}

	for i := range items {
		items[i].ID = 0
		items[i].InvoiceID = inv.ID
	}
	inv.Items = items

	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *BillingGormRepository) DeleteInvoice(
	ctx context.Context,
	inv *models.Invoice,
) error {

	if err := r.db.WithContext(ctx).
		Where("invoice_id = ?", inv.ID).
		Delete(&models.InvoiceItem{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(inv).Error
}

// --------------------------------------------------
// Sources
// --------------------------------------------------

func (r *BillingGormRepository) ListCompletedWorkOrders(
	ctx context.Context,
	projectID uint,
) ([]models.WorkOrder, error) {

	var orders []models.WorkOrder
	if err := r.db.WithContext(ctx).
		Where("project_id = ? AND stage = 'completed'", projectID).
		Order("id ASC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Compile-time check
var _ domain.Repository = (*BillingGormRepository)(nil)
