package handlers

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/AtlasFacilities/service-desk-api/internal/capability"
	domainbilling "github.com/AtlasFacilities/service-desk-api/internal/domain/billing"
	"github.com/AtlasFacilities/service-desk-api/internal/httperr"
	"github.com/AtlasFacilities/service-desk-api/internal/httpresp"
	"github.com/AtlasFacilities/service-desk-api/internal/infra/storage"
	"github.com/AtlasFacilities/service-desk-api/internal/middleware"
	"github.com/AtlasFacilities/service-desk-api/internal/models"
	"github.com/AtlasFacilities/service-desk-api/internal/timezone"
	ucBilling "github.com/AtlasFacilities/service-desk-api/internal/usecase/billing"
)

// ======================================================
// HANDLER
// ======================================================

type InvoiceHandler struct {
	db    *gorm.DB
	store storage.ObjectStore
	uc    *ucBilling.InvoiceUseCase
}

func NewInvoiceHandler(db *gorm.DB, store storage.ObjectStore, uc *ucBilling.InvoiceUseCase) *InvoiceHandler {
	return &InvoiceHandler{db: db, store: store, uc: uc}
}

// ======================================================
// REQUESTS
// ======================================================

type InvoiceRequest struct {
	BranchID  uint              `json:"branch_id" binding:"required"`
	ProjectID *uint             `json:"project_id"`
	DueDate   *time.Time        `json:"due_date"`
	TaxRate   string            `json:"tax_rate"`
	Items     []LineItemRequest `json:"items" binding:"required"`
}

type InvoiceFromProjectRequest struct {
	BranchID  uint       `json:"branch_id" binding:"required"`
	ProjectID uint       `json:"project_id" binding:"required"`
	DueDate   *time.Time `json:"due_date"`
	TaxRate   string     `json:"tax_rate"`
}

type RecordPaymentRequest struct {
	Amount string `json:"amount" binding:"required"`
}

// ======================================================
// RESPONSES
// ======================================================

// InvoiceResponse reports the read-time status: a sent invoice shows
// PARTIAL once money lands and OVERDUE past its due date, without
// rewriting the stored column.
type InvoiceResponse struct {
	models.Invoice
	EffectiveStatus string `json:"effective_status"`
}

func toInvoiceResponse(inv models.Invoice, now time.Time) InvoiceResponse {
	return InvoiceResponse{
		Invoice:         inv,
		EffectiveStatus: string(domainbilling.EffectiveInvoiceStatus(&inv, now)),
	}
}

// ======================================================
// CRUD
// ======================================================

func (h *InvoiceHandler) List(c *gin.Context) {
	contractorID := c.MustGet(middleware.ContextContractorID).(uint)

	q := h.db.Where("contractor_id = ?", contractorID)
	if branchID := c.Query("branch_id"); branchID != "" {
		q = q.Where("branch_id = ?", branchID)
	}
	if projectID := c.Query("project_id"); projectID != "" {
		q = q.Where("project_id = ?", projectID)
	}

	var invoices []models.Invoice
	if err := q.Preload("Items").Order("created_at DESC").Find(&invoices).Error; err != nil {
		httperr.Internal(c, "failed_to_list_invoices", "Could not list invoices.")
		return
	}

	now := timezone.Now()
	out := make([]InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, toInvoiceResponse(inv, now))
	}

	httpresp.List(c, out)
}

func (h *InvoiceHandler) Get(c *gin.Context) {
	contractorID := c.MustGet(middleware.ContextContractorID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return
	}

	var inv models.Invoice
	if err := h.db.
		Preload("Items").
		Where("id = ? AND contractor_id = ?", id, contractorID).
		First(&inv).Error; err != nil {
		httperr.NotFound(c, "invoice_not_found", "Invoice not found.")
		return
	}

	httpresp.OK(c, toInvoiceResponse(inv, timezone.Now()))
}

func (h *InvoiceHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	contractorID := c.MustGet(middleware.ContextContractorID).(uint)

	if err := capability.Require(actingRole(c), capability.ActionManageBilling); err != nil {
		httperr.Forbidden(c, "not_allowed", "Not allowed for this role.")
		return
	}

	in, ok := h.bindInput(c)
	if !ok {
		return
	}

	inv, err := h.uc.Create(c.Request.Context(), contractorID, userID, in)
	if err != nil {
		httperr.FromBusiness(c, err)
		return
	}

	httpresp.Created(c, toInvoiceResponse(*inv, timezone.Now()))
}

// CreateFromProject bills the completed work of a project in one shot,
// one line per recurring group.
func (h *InvoiceHandler) CreateFromProject(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	contractorID := c.MustGet(middleware.ContextContractorID).(uint)

	if err := capability.Require(actingRole(c), capability.ActionManageBilling); err != nil {
		httperr.Forbidden(c, "not_allowed", "Not allowed for this role.")
		return
	}

	var req InvoiceFromProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request.")
		return
	}

	taxRate, err := parseTaxRate(req.TaxRate)
	if err != nil {
		httperr.BadRequest(c, "invalid_tax_rate", "Invalid tax rate.")
		return
	}

	inv, err := h.uc.CreateFromProject(c.Request.Context(), contractorID, userID, ucBilling.FromProjectInput{
		BranchID:  req.BranchID,
		ProjectID: req.ProjectID,
		DueDate:   req.DueDate,
		TaxRate:   taxRate,
	})
	if err != nil {
		httperr.FromBusiness(c, err)
		return
	}

	httpresp.Created(c, toInvoiceResponse(*inv, timezone.Now()))
}

func (h *InvoiceHandler) Update(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	contractorID := c.MustGet(middleware.ContextContractorID).(uint)

	if err := capability.Require(actingRole(c), capability.ActionManageBilling); err != nil {
		httperr.Forbidden(c, "not_allowed", "Not allowed for this role.")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return
	}

	in, ok := h.bindInput(c)
	if !ok {
		return
	}

	inv, err := h.uc.Update(c.Request.Context(), contractorID, userID, uint(id), in)
	if err != nil {
		httperr.FromBusiness(c, err)
		return
	}

	httpresp.OK(c, toInvoiceResponse(*inv, timezone.Now()))
}

func (h *InvoiceHandler) Delete(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	contractorID := c.MustGet(middleware.ContextContractorID).(uint)

	if err := capability.Require(actingRole(c), capability.ActionManageBilling); err != nil {
		httperr.Forbidden(c, "not_allowed", "Not allowed for this role.")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return
	}

	if err := h.uc.Delete(c.Request.Context(), contractorID, userID, uint(id)); err != nil {
		httperr.FromBusiness(c, err)
		return
	}

	httpresp.OK(c, gin.H{"status": "deleted"})
}

// ======================================================
// LIFECYCLE
// ======================================================

func (h *InvoiceHandler) Send(c *gin.Context) {
	h.transition(c, capability.ActionManageBilling, h.uc.Send)
}

func (h *InvoiceHandler) Cancel(c *gin.Context) {
	h.transition(c, capability.ActionManageBilling, h.uc.Cancel)
}

func (h *InvoiceHandler) ConfirmPayment(c *gin.Context) {
	h.transition(c, capability.ActionConfirmPayment, h.uc.ConfirmPayment)
}

func (h *InvoiceHandler) SubmitProof(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	contractorID := c.MustGet(middleware.ContextContractorID).(uint)

	if err := capability.Require(actingRole(c), capability.ActionSubmitProof); err != nil {
		httperr.Forbidden(c, "not_allowed", "Only the client submits payment proof.")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return
	}

	url, proofType, fileName, ok := resolveProofUpload(
		c, h.store, fmt.Sprintf("invoices/%d/proofs", id),
	)
	if !ok {
		return
	}

	inv, err := h.uc.SubmitProof(c.Request.Context(), contractorID, userID, uint(id), domainbilling.Proof{
		URL:      url,
		Type:     proofType,
		FileName: fileName,
	})
	if err != nil {
		httperr.FromBusiness(c, err)
		return
	}

	httpresp.OK(c, toInvoiceResponse(*inv, timezone.Now()))
}

func (h *InvoiceHandler) RejectProof(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	contractorID := c.MustGet(middleware.ContextContractorID).(uint)

	if err := capability.Require(actingRole(c), capability.ActionConfirmPayment); err != nil {
		httperr.Forbidden(c, "not_allowed", "Only the contractor reviews payment proof.")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return
	}

	var req RejectProofRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "A rejection note is required.")
		return
	}

	inv, err := h.uc.RejectProof(c.Request.Context(), contractorID, userID, uint(id), req.Note)
	if err != nil {
		httperr.FromBusiness(c, err)
		return
	}

	httpresp.OK(c, toInvoiceResponse(*inv, timezone.Now()))
}

func (h *InvoiceHandler) RecordPayment(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	contractorID := c.MustGet(middleware.ContextContractorID).(uint)

	if err := capability.Require(actingRole(c), capability.ActionConfirmPayment); err != nil {
		httperr.Forbidden(c, "not_allowed", "Only the contractor records payments.")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return
	}

	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request.")
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		httperr.BadRequest(c, "invalid_amount", "Invalid amount.")
		return
	}

	inv, err := h.uc.RecordPayment(c.Request.Context(), contractorID, userID, uint(id), amount)
	if err != nil {
		httperr.FromBusiness(c, err)
		return
	}

	httpresp.OK(c, toInvoiceResponse(*inv, timezone.Now()))
}

// ======================================================
// HELPERS
// ======================================================

func (h *InvoiceHandler) transition(
	c *gin.Context,
	action capability.Action,
	run func(ctx context.Context, contractorID, userID, invoiceID uint) (*models.Invoice, error),
) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	contractorID := c.MustGet(middleware.ContextContractorID).(uint)

	if err := capability.Require(actingRole(c), action); err != nil {
		httperr.Forbidden(c, "not_allowed", "Not allowed for this role.")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return
	}

	inv, err := run(c.Request.Context(), contractorID, userID, uint(id))
	if err != nil {
		httperr.FromBusiness(c, err)
		return
	}

	httpresp.OK(c, toInvoiceResponse(*inv, timezone.Now()))
}

func (h *InvoiceHandler) bindInput(c *gin.Context) (ucBilling.InvoiceInput, bool) {
	var req InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request.")
		return ucBilling.InvoiceInput{}, false
	}

	items, err := parseLineItems(req.Items)
	if err != nil {
		httperr.BadRequest(c, "invalid_line_item", "Invalid line item amount.")
		return ucBilling.InvoiceInput{}, false
	}

	taxRate, err := parseTaxRate(req.TaxRate)
	if err != nil {
		httperr.BadRequest(c, "invalid_tax_rate", "Invalid tax rate.")
		return ucBilling.InvoiceInput{}, false
	}

	return ucBilling.InvoiceInput{
		BranchID:  req.BranchID,
		ProjectID: req.ProjectID,
		DueDate:   req.DueDate,
		TaxRate:   taxRate,
		Items:     items,
	}, true
}
