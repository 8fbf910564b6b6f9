package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/AtlasFacilities/service-desk-api/internal/domain/checklist"
	"github.com/AtlasFacilities/service-desk-api/internal/models"
)

type ChecklistGormRepository struct {
	db *gorm.DB
}

func NewChecklistGormRepository(db *gorm.DB) *ChecklistGormRepository {
	return &ChecklistGormRepository{db: db}
}

func (r *ChecklistGormRepository) Transact(
	ctx context.Context,
	fn func(domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ChecklistGormRepository{db: tx})
	})
}

func (r *ChecklistGormRepository) Create(
	ctx context.Context,
	cl *models.Checklist,
) error {
	return r.db.WithContext(ctx).Create(cl).Error
}

func (r *ChecklistGormRepository) Get(
	ctx context.Context,
	id uint,
	contractorID uint,
) (*models.Checklist, error) {

	var cl models.Checklist
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("id = ? AND contractor_id = ?", id, contractorID).
		First(&cl).Error; err != nil {
		return nil, err
	}
	return &cl, nil
}

func (r *ChecklistGormRepository) GetForUpdate(
	ctx context.Context,
	id uint,
	contractorID uint,
) (*models.Checklist, error) {

	var cl models.Checklist
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND contractor_id = ?", id, contractorID).
		First(&cl).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).
		Where("checklist_id = ?", cl.ID).
		Order("position ASC").
		Find(&cl.Items).Error; err != nil {
		return nil, err
	}
	return &cl, nil
}

func (r *ChecklistGormRepository) Update(
	ctx context.Context,
	cl *models.Checklist,
) error {
	return r.db.WithContext(ctx).Omit("Items").Save(cl).Error
}

func (r *ChecklistGormRepository) UpdateItem(
	ctx context.Context,
	item *models.ChecklistItem,
) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *ChecklistGormRepository) ListByBranch(
	ctx context.Context,
	branchID uint,
	contractorID uint,
) ([]models.Checklist, error) {

	var lists []models.Checklist
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("branch_id = ? AND contractor_id = ?", branchID, contractorID).
		Order("id DESC").
		Find(&lists).Error; err != nil {
		return nil, err
	}
	return lists, nil
}

// Compile-time check
var _ domain.Repository = (*ChecklistGormRepository)(nil)
