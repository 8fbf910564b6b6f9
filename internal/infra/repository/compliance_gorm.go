package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/AtlasFacilities/service-desk-api/internal/domain/contract"
	"github.com/AtlasFacilities/service-desk-api/internal/models"
	"github.com/AtlasFacilities/service-desk-api/internal/usecase/alerts"
)

// ComplianceGormRepository feeds the action center. Read-only by design
// of its interface, so no Transact here.
type ComplianceGormRepository struct {
	db *gorm.DB
}

func NewComplianceGormRepository(db *gorm.DB) *ComplianceGormRepository {
	return &ComplianceGormRepository{db: db}
}

func (r *ComplianceGormRepository) ListBranches(
	ctx context.Context,
	contractorID uint,
) ([]models.Branch, error) {

	var branches []models.Branch
	if err := r.db.WithContext(ctx).
		Where("contractor_id = ? AND is_active = ?", contractorID, true).
		Find(&branches).Error; err != nil {
		return nil, err
	}
	return branches, nil
}

func (r *ComplianceGormRepository) ListEquipment(
	ctx context.Context,
	contractorID uint,
) ([]models.Equipment, error) {

	var equipment []models.Equipment
	if err := r.db.WithContext(ctx).
		Where("contractor_id = ?", contractorID).
		Find(&equipment).Error; err != nil {
		return nil, err
	}
	return equipment, nil
}

func (r *ComplianceGormRepository) ListCertificates(
	ctx context.Context,
	contractorID uint,
) ([]models.Certificate, error) {

	var certs []models.Certificate
	if err := r.db.WithContext(ctx).
		Where("contractor_id = ?", contractorID).
		Find(&certs).Error; err != nil {
		return nil, err
	}
	return certs, nil
}

func (r *ComplianceGormRepository) ListActiveContracts(
	ctx context.Context,
	contractorID uint,
) ([]models.Contract, error) {

	var contracts []models.Contract
	if err := r.db.WithContext(ctx).
		Where("contractor_id = ? AND status = ?", contractorID, string(contract.StatusActive)).
		Find(&contracts).Error; err != nil {
		return nil, err
	}
	return contracts, nil
}

// Compile-time check
var _ alerts.Repository = (*ComplianceGormRepository)(nil)
