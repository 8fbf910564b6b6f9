package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/AtlasFacilities/service-desk-api/internal/domain/workorder"
	"github.com/AtlasFacilities/service-desk-api/internal/models"
)

type WorkOrderGormRepository struct {
	db *gorm.DB
}

func NewWorkOrderGormRepository(db *gorm.DB) *WorkOrderGormRepository {
	return &WorkOrderGormRepository{db: db}
}

func (r *WorkOrderGormRepository) Transact(
	ctx context.Context,
	fn func(domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&WorkOrderGormRepository{db: tx})
	})
}

func (r *WorkOrderGormRepository) Get(
	ctx context.Context,
	id uint,
	contractorID uint,
) (*models.WorkOrder, error) {

	var wo models.WorkOrder
	if err := r.db.WithContext(ctx).
		Where("id = ? AND contractor_id = ?", id, contractorID).
		First(&wo).Error; err != nil {
		return nil, err
	}
	return &wo, nil
}

func (r *WorkOrderGormRepository) GetForUpdate(
	ctx context.Context,
	id uint,
	contractorID uint,
) (*models.WorkOrder, error) {

	var wo models.WorkOrder
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND contractor_id = ?", id, contractorID).
		First(&wo).Error; err != nil {
		return nil, err
	}
	return &wo, nil
}

func (r *WorkOrderGormRepository) Update(
	ctx context.Context,
	wo *models.WorkOrder,
) error {
	return r.db.WithContext(ctx).Save(wo).Error
}

func (r *WorkOrderGormRepository) ListByProject(
	ctx context.Context,
	projectID uint,
) ([]models.WorkOrder, error) {

	var orders []models.WorkOrder
	if err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("id ASC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Compile-time check
var _ domain.Repository = (*WorkOrderGormRepository)(nil)
