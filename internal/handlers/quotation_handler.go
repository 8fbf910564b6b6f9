package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/AtlasFacilities/service-desk-api/internal/capability"
	domainbilling "github.com/AtlasFacilities/service-desk-api/internal/domain/billing"
	"github.com/AtlasFacilities/service-desk-api/internal/httperr"
	"github.com/AtlasFacilities/service-desk-api/internal/httpresp"
	"github.com/AtlasFacilities/service-desk-api/internal/middleware"
	"github.com/AtlasFacilities/service-desk-api/internal/models"
	"github.com/AtlasFacilities/service-desk-api/internal/timezone"
	ucBilling "github.com/AtlasFacilities/service-desk-api/internal/usecase/billing"
)

// ======================================================
// HANDLER
// ======================================================

type QuotationHandler struct {
	db *gorm.DB
	uc *ucBilling.QuotationUseCase
}

func NewQuotationHandler(db *gorm.DB, uc *ucBilling.QuotationUseCase) *QuotationHandler {
	return &QuotationHandler{db: db, uc: uc}
}

// ======================================================
// REQUESTS
// ======================================================

type LineItemRequest struct {
	Description string `json:"description" binding:"required"`
	Quantity    string `json:"quantity" binding:"required"`
	UnitPrice   string `json:"unit_price" binding:"required"`
}

type QuotationRequest struct {
	BranchID   uint              `json:"branch_id" binding:"required"`
	ProjectID  *uint             `json:"project_id"`
	ValidUntil *time.Time        `json:"valid_until"`
	TaxRate    string            `json:"tax_rate"`
	Items      []LineItemRequest `json:"items" binding:"required"`
}

type RejectQuotationRequest struct {
	Note string `json:"note" binding:"required"`
}

func parseLineItems(in []LineItemRequest) ([]ucBilling.LineItemInput, error) {
	items := make([]ucBilling.LineItemInput, 0, len(in))
	for _, it := range in {
		qty, err := decimal.NewFromString(it.Quantity)
		if err != nil {
			return nil, err
		}
		price, err := decimal.NewFromString(it.UnitPrice)
		if err != nil {
			return nil, err
		}
		items = append(items, ucBilling.LineItemInput{
			Description: it.Description,
			Quantity:    qty,
			UnitPrice:   price,
		})
	}
	return items, nil
}

func parseTaxRate(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(raw)
}

// ======================================================
// RESPONSES
// ======================================================

// QuotationResponse reports the read-time status: SENT ages into EXPIRED
// past its validity date without a stored write.
type QuotationResponse struct {
	models.Quotation
	EffectiveStatus string `json:"effective_status"`
}

func toQuotationResponse(q models.Quotation, now time.Time) QuotationResponse {
	return QuotationResponse{
		Quotation: q,
		EffectiveStatus: string(domainbilling.EffectiveQuotationStatus(
			domainbilling.QuotationStatus(q.Status), q.ValidUntil, now,
		)),
	}
}

// ======================================================
// CRUD
// ======================================================

func (h *QuotationHandler) List(c *gin.Context) {
	contractorID := c.MustGet(middleware.ContextContractorID).(uint)

	q := h.db.Where("contractor_id = ?", contractorID)
	if branchID := c.Query("branch_id"); branchID != "" {
		q = q.Where("branch_id = ?", branchID)
	}

	var quotations []models.Quotation
	if err := q.Preload("Items").Order("created_at DESC").Find(&quotations).Error; err != nil {
		httperr.Internal(c, "failed_to_list_quotations", "Could not list quotations.")
		return
	}

	now := timezone.Now()
	out := make([]QuotationResponse, 0, len(quotations))
	for _, item := range quotations {
		out = append(out, toQuotationResponse(item, now))
	}

	httpresp.List(c, out)
}

func (h *QuotationHandler) Get(c *gin.Context) {
	contractorID := c.MustGet(middleware.ContextContractorID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return
	}

	var q models.Quotation
	if err := h.db.
		Preload("Items").
		Where("id = ? AND contractor_id = ?", id, contractorID).
		First(&q).Error; err != nil {
		httperr.NotFound(c, "quotation_not_found", "Quotation not found.")
		return
	}

	httpresp.OK(c, toQuotationResponse(q, timezone.Now()))
}

func (h *QuotationHandler) Create(c *gin.Context) {
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

	q, err := h.uc.Create(c.Request.Context(), contractorID, userID, in)
	if err != nil {
		httperr.FromBusiness(c, err)
		return
	}

	httpresp.Created(c, toQuotationResponse(*q, timezone.Now()))
}

func (h *QuotationHandler) Update(c *gin.Context) {
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

	q, err := h.uc.Update(c.Request.Context(), contractorID, userID, uint(id), in)
	if err != nil {
		httperr.FromBusiness(c, err)
		return
	}

	httpresp.OK(c, toQuotationResponse(*q, timezone.Now()))
}

func (h *QuotationHandler) Delete(c *gin.Context) {
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

func (h *QuotationHandler) Send(c *gin.Context) {
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

	q, err := h.uc.Send(c.Request.Context(), contractorID, userID, uint(id))
	if err != nil {
		httperr.FromBusiness(c, err)
		return
	}

	httpresp.OK(c, toQuotationResponse(*q, timezone.Now()))
}

func (h *QuotationHandler) Approve(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	contractorID := c.MustGet(middleware.ContextContractorID).(uint)

	if err := capability.Require(actingRole(c), capability.ActionDecideQuotation); err != nil {
		httperr.Forbidden(c, "not_allowed", "Only the client decides a quotation.")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return
	}

	q, err := h.uc.Approve(c.Request.Context(), contractorID, userID, uint(id))
	if err != nil {
		httperr.FromBusiness(c, err)
		return
	}

	httpresp.OK(c, toQuotationResponse(*q, timezone.Now()))
}

func (h *QuotationHandler) Reject(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	contractorID := c.MustGet(middleware.ContextContractorID).(uint)

	if err := capability.Require(actingRole(c), capability.ActionDecideQuotation); err != nil {
		httperr.Forbidden(c, "not_allowed", "Only the client decides a quotation.")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return
	}

	var req RejectQuotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "A rejection note is required.")
		return
	}

	q, err := h.uc.Reject(c.Request.Context(), contractorID, userID, uint(id), req.Note)
	if err != nil {
		httperr.FromBusiness(c, err)
		return
	}

	httpresp.OK(c, toQuotationResponse(*q, timezone.Now()))
}

func (h *QuotationHandler) bindInput(c *gin.Context) (ucBilling.QuotationInput, bool) {
	var req QuotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request.")
		return ucBilling.QuotationInput{}, false
	}

	items, err := parseLineItems(req.Items)
	if err != nil {
		httperr.BadRequest(c, "invalid_line_item", "Invalid line item amount.")
		return ucBilling.QuotationInput{}, false
	}

	taxRate, err := parseTaxRate(req.TaxRate)
	if err != nil {
		httperr.BadRequest(c, "invalid_tax_rate", "Invalid tax rate.")
		return ucBilling.QuotationInput{}, false
	}

	return ucBilling.QuotationInput{
		BranchID:   req.BranchID,
		ProjectID:  req.ProjectID,
		ValidUntil: req.ValidUntil,
		TaxRate:    taxRate,
		Items:      items,
	}, true
}
