package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/AtlasFacilities/service-desk-api/internal/domain/project"
	"github.com/AtlasFacilities/service-desk-api/internal/models"
)

type ProjectGormRepository struct {
	db *gorm.DB
}

func NewProjectGormRepository(db *gorm.DB) *ProjectGormRepository {
	return &ProjectGormRepository{db: db}
}

// Transact binds a repository to one transaction; work-order expansion and
// the approval gate both run through it.
func (r *ProjectGormRepository) Transact(
	ctx context.Context,
	fn func(domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ProjectGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Branch
// --------------------------------------------------

func (r *ProjectGormRepository) GetBranch(
	ctx context.Context,
	branchID uint,
	contractorID uint,
) (*models.Branch, error) {

	var branch models.Branch
	if err := r.db.WithContext(ctx).
		Where("id = ? AND contractor_id = ?", branchID, contractorID).
		First(&branch).Error; err != nil {
		return nil, err
	}
	return &branch, nil
}

// --------------------------------------------------
// Project
// --------------------------------------------------

func (r *ProjectGormRepository) Create(
	ctx context.Context,
	p *models.Project,
) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProjectGormRepository) Get(
	ctx context.Context,
	id uint,
	contractorID uint,
) (*models.Project, error) {

	var p models.Project
	if err := r.db.WithContext(ctx).
		Preload("WorkOrders").
		Where("id = ? AND contractor_id = ?", id, contractorID).
		First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProjectGormRepository) GetForUpdate(
	ctx context.Context,
	id uint,
	contractorID uint,
) (*models.Project, error) {

	var p models.Project
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND contractor_id = ?", id, contractorID).
		First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProjectGormRepository) Update(
	ctx context.Context,
	p *models.Project,
) error {
	return r.db.WithContext(ctx).Omit("WorkOrders").Save(p).Error
}

// --------------------------------------------------
// Work Orders
// --------------------------------------------------

func (r *ProjectGormRepository) ListWorkOrders(
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

func (r *ProjectGormRepository) AddWorkOrder(
	ctx context.Context,
	wo *models.WorkOrder,
) error {
	return r.db.WithContext(ctx).Create(wo).Error
}

// --------------------------------------------------
// Contract
// --------------------------------------------------

func (r *ProjectGormRepository) CreateContract(
	ctx context.Context,
	contract *models.Contract,
) error {
	return r.db.WithContext(ctx).Create(contract).Error
}

// Compile-time check
var _ domain.Repository = (*ProjectGormRepository)(nil)
