package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AtlasFacilities/service-desk-api/internal/domain/expiry"
	"github.com/AtlasFacilities/service-desk-api/internal/httperr"
	"github.com/AtlasFacilities/service-desk-api/internal/httpresp"
	"github.com/AtlasFacilities/service-desk-api/internal/middleware"
	"github.com/AtlasFacilities/service-desk-api/internal/models"
	"github.com/AtlasFacilities/service-desk-api/internal/timezone"
)

type BranchHandler struct {
	db *gorm.DB
}

func NewBranchHandler(db *gorm.DB) *BranchHandler {
	return &BranchHandler{db: db}
}

type BranchRequest struct {
	ClientCompanyID   uint       `json:"client_company_id" binding:"required"`
	Name              string     `json:"name" binding:"required"`
	Address           string     `json:"address"`
	City              string     `json:"city"`
	CertificateNumber string     `json:"certificate_number"`
	CertificateExpiry *time.Time `json:"certificate_expiry"`
}

// BranchResponse decorates the row with the read-time certificate band.
type BranchResponse struct {
	models.Branch
	CertificateBand expiry.Band `json:"certificate_band"`
}

func toBranchResponse(b models.Branch, now time.Time) BranchResponse {
	return BranchResponse{
		Branch:          b,
		CertificateBand: expiry.Classify(b.CertificateExpiry, now),
	}
}

func (h *BranchHandler) List(c *gin.Context) {
	contractorID := c.MustGet(middleware.ContextContractorID).(uint)

	q := h.db.Where("contractor_id = ?", contractorID)
	if companyID := c.Query("client_company_id"); companyID != "" {
		q = q.Where("client_company_id = ?", companyID)
	}

	var branches []models.Branch
	if err := q.Preload("ClientCompany").Order("name ASC").Find(&branches).Error; err != nil {
		httperr.Internal(c, "failed_to_list_branches", "Could not list branches.")
		return
	}

	now := timezone.Now()
	out := make([]BranchResponse, 0, len(branches))
	for _, b := range branches {
		out = append(out, toBranchResponse(b, now))
	}

	httpresp.List(c, out)
}

func (h *BranchHandler) Get(c *gin.Context) {
	contractorID := c.MustGet(middleware.ContextContractorID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return
	}

	var branch models.Branch
	if err := h.db.
		Preload("ClientCompany").
		Where("id = ? AND contractor_id = ?", id, contractorID).
		First(&branch).Error; err != nil {
		httperr.NotFound(c, "branch_not_found", "Branch not found.")
		return
	}

	httpresp.OK(c, toBranchResponse(branch, timezone.Now()))
}

func (h *BranchHandler) Create(c *gin.Context) {
	contractorID := c.MustGet(middleware.ContextContractorID).(uint)

	var req BranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request.")
		return
	}

	var count int64
	h.db.Model(&models.ClientCompany{}).
		Where("id = ? AND contractor_id = ?", req.ClientCompanyID, contractorID).
		Count(&count)
	if count == 0 {
		httperr.NotFound(c, "company_not_found", "Client company not found.")
		return
	}

	branch := models.Branch{
		ContractorID:      contractorID,
		ClientCompanyID:   req.ClientCompanyID,
		Name:              req.Name,
		Address:           req.Address,
		City:              req.City,
		CertificateNumber: req.CertificateNumber,
		CertificateExpiry: req.CertificateExpiry,
		IsActive:          true,
	}

	if err := h.db.Create(&branch).Error; err != nil {
		httperr.Internal(c, "failed_to_create_branch", "Could not create branch.")
		return
	}

	httpresp.Created(c, toBranchResponse(branch, timezone.Now()))
}

func (h *BranchHandler) Update(c *gin.Context) {
	contractorID := c.MustGet(middleware.ContextContractorID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return
	}

	var branch models.Branch
	if err := h.db.
		Where("id = ? AND contractor_id = ?", id, contractorID).
		First(&branch).Error; err != nil {
		httperr.NotFound(c, "branch_not_found", "Branch not found.")
		return
	}

	var req BranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request.")
		return
	}

	branch.Name = req.Name
	branch.Address = req.Address
	branch.City = req.City
	branch.CertificateNumber = req.CertificateNumber
	branch.CertificateExpiry = req.CertificateExpiry

	if err := h.db.Save(&branch).Error; err != nil {
		httperr.Internal(c, "failed_to_update_branch", "Could not update branch.")
		return
	}

	httpresp.OK(c, toBranchResponse(branch, timezone.Now()))
}

// Deactivate retires a branch. History stays queryable; new projects
// against it are refused at creation.
func (h *BranchHandler) Deactivate(c *gin.Context) {
	contractorID := c.MustGet(middleware.ContextContractorID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return
	}

	result := h.db.Model(&models.Branch{}).
		Where("id = ? AND contractor_id = ?", id, contractorID).
		Update("is_active", false)
	if result.Error != nil {
		httperr.Internal(c, "failed_to_deactivate_branch", "Could not deactivate branch.")
		return
	}
	if result.RowsAffected == 0 {
		httperr.NotFound(c, "branch_not_found", "Branch not found.")
		return
	}

	httpresp.OK(c, gin.H{"status": "deactivated"})
}
