package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AtlasFacilities/service-desk-api/internal/capability"
	"github.com/AtlasFacilities/service-desk-api/internal/domain/expiry"
	"github.com/AtlasFacilities/service-desk-api/internal/httperr"
	"github.com/AtlasFacilities/service-desk-api/internal/httpresp"
	"github.com/AtlasFacilities/service-desk-api/internal/middleware"
	"github.com/AtlasFacilities/service-desk-api/internal/models"
	"github.com/AtlasFacilities/service-desk-api/internal/timezone"
)

// ComplianceHandler covers the expiry-carrying branch assets: equipment
// and standalone certificates. Bands are always computed at read time.
type ComplianceHandler struct {
	db *gorm.DB
}

func NewComplianceHandler(db *gorm.DB) *ComplianceHandler {
	return &ComplianceHandler{db: db}
}

// ======================================================
// REQUESTS
// ======================================================

type EquipmentRequest struct {
	BranchID       uint       `json:"branch_id" binding:"required"`
	Name           string     `json:"name" binding:"required"`
	SerialNumber   string     `json:"serial_number"`
	Location       string     `json:"location"`
	ExpectedExpiry *time.Time `json:"expected_expiry"`
}

type CertificateRequest struct {
	BranchID   uint       `json:"branch_id" binding:"required"`
	Name       string     `json:"name" binding:"required"`
	Number     string     `json:"number"`
	ExpiryDate *time.Time `json:"expiry_date"`
}

// ======================================================
// RESPONSES
// ======================================================

type EquipmentResponse struct {
	models.Equipment
	Band expiry.Band `json:"band"`
}

type CertificateResponse struct {
	models.Certificate
	Band expiry.Band `json:"band"`
}

// ======================================================
// EQUIPMENT
// ======================================================

func (h *ComplianceHandler) ListEquipment(c *gin.Context) {
	contractorID := c.MustGet(middleware.ContextContractorID).(uint)

	q := h.db.Where("contractor_id = ?", contractorID)
	if branchID := c.Query("branch_id"); branchID != "" {
		q = q.Where("branch_id = ?", branchID)
	}

	var equipment []models.Equipment
	if err := q.Order("name ASC").Find(&equipment).Error; err != nil {
		httperr.Internal(c, "failed_to_list_equipment", "Could not list equipment.")
		return
	}

	now := timezone.Now()
	out := make([]EquipmentResponse, 0, len(equipment))
	for _, e := range equipment {
		out = append(out, EquipmentResponse{
			Equipment: e,
			Band:      expiry.Classify(e.ExpectedExpiry, now),
		})
	}

	httpresp.List(c, out)
}

func (h *ComplianceHandler) CreateEquipment(c *gin.Context) {
	contractorID := c.MustGet(middleware.ContextContractorID).(uint)

	if err := capability.Require(actingRole(c), capability.ActionManageCompliance); err != nil {
		httperr.Forbidden(c, "not_allowed", "Not allowed for this role.")
		return
	}

	var req EquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request.")
		return
	}

	e := models.Equipment{
		ContractorID:   contractorID,
		BranchID:       req.BranchID,
		Name:           req.Name,
		SerialNumber:   req.SerialNumber,
		Location:       req.Location,
		ExpectedExpiry: req.ExpectedExpiry,
	}

	if err := h.db.Create(&e).Error; err != nil {
		httperr.Internal(c, "failed_to_create_equipment", "Could not create equipment.")
		return
	}

	httpresp.Created(c, EquipmentResponse{
		Equipment: e,
		Band:      expiry.Classify(e.ExpectedExpiry, timezone.Now()),
	})
}

func (h *ComplianceHandler) UpdateEquipment(c *gin.Context) {
	contractorID := c.MustGet(middleware.ContextContractorID).(uint)

	if err := capability.Require(actingRole(c), capability.ActionManageCompliance); err != nil {
		httperr.Forbidden(c, "not_allowed", "Not allowed for this role.")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return
	}

	var e models.Equipment
	if err := h.db.
		Where("id = ? AND contractor_id = ?", id, contractorID).
		First(&e).Error; err != nil {
		httperr.NotFound(c, "equipment_not_found", "Equipment not found.")
		return
	}

	var req EquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request.")
		return
	}

	e.Name = req.Name
	e.SerialNumber = req.SerialNumber
	e.Location = req.Location
	e.ExpectedExpiry = req.ExpectedExpiry

	if err := h.db.Save(&e).Error; err != nil {
		httperr.Internal(c, "failed_to_update_equipment", "Could not update equipment.")
		return
	}

	httpresp.OK(c, EquipmentResponse{
		Equipment: e,
		Band:      expiry.Classify(e.ExpectedExpiry, timezone.Now()),
	})
}

// ======================================================
// CERTIFICATES
// ======================================================

func (h *ComplianceHandler) ListCertificates(c *gin.Context) {
	contractorID := c.MustGet(middleware.ContextContractorID).(uint)

	q := h.db.Where("contractor_id = ?", contractorID)
	if branchID := c.Query("branch_id"); branchID != "" {
		q = q.Where("branch_id = ?", branchID)
	}

	var certs []models.Certificate
	if err := q.Order("name ASC").Find(&certs).Error; err != nil {
		httperr.Internal(c, "failed_to_list_certificates", "Could not list certificates.")
		return
	}

	now := timezone.Now()
	out := make([]CertificateResponse, 0, len(certs))
	for _, cert := range certs {
		out = append(out, CertificateResponse{
			Certificate: cert,
			Band:        expiry.Classify(cert.ExpiryDate, now),
		})
	}

	httpresp.List(c, out)
}

func (h *ComplianceHandler) CreateCertificate(c *gin.Context) {
	contractorID := c.MustGet(middleware.ContextContractorID).(uint)

	if err := capability.Require(actingRole(c), capability.ActionManageCompliance); err != nil {
		httperr.Forbidden(c, "not_allowed", "Not allowed for this role.")
		return
	}

	var req CertificateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request.")
		return
	}

	cert := models.Certificate{
		ContractorID: contractorID,
		BranchID:     req.BranchID,
		Name:         req.Name,
		Number:       req.Number,
		ExpiryDate:   req.ExpiryDate,
	}

	if err := h.db.Create(&cert).Error; err != nil {
		httperr.Internal(c, "failed_to_create_certificate", "Could not create certificate.")
		return
	}

	httpresp.Created(c, CertificateResponse{
		Certificate: cert,
		Band:        expiry.Classify(cert.ExpiryDate, timezone.Now()),
	})
}

func (h *ComplianceHandler) UpdateCertificate(c *gin.Context) {
	contractorID := c.MustGet(middleware.ContextContractorID).(uint)

	if err := capability.Require(actingRole(c), capability.ActionManageCompliance); err != nil {
		httperr.Forbidden(c, "not_allowed", "Not allowed for this role.")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return
	}

	var cert models.Certificate
	if err := h.db.
		Where("id = ? AND contractor_id = ?", id, contractorID).
		First(&cert).Error; err != nil {
		httperr.NotFound(c, "certificate_not_found", "Certificate not found.")
		return
	}

	var req CertificateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request.")
		return
	}

	cert.Name = req.Name
	cert.Number = req.Number
	cert.ExpiryDate = req.ExpiryDate

	if err := h.db.Save(&cert).Error; err != nil {
		httperr.Internal(c, "failed_to_update_certificate", "Could not update certificate.")
		return
	}

	httpresp.OK(c, CertificateResponse{
		Certificate: cert,
		Band:        expiry.Classify(cert.ExpiryDate, timezone.Now()),
	})
}
