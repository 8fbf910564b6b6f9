package handlers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/AtlasFacilities/service-desk-api/internal/capability"
	domain "github.com/AtlasFacilities/service-desk-api/internal/domain/workorder"
	"github.com/AtlasFacilities/service-desk-api/internal/httperr"
	"github.com/AtlasFacilities/service-desk-api/internal/httpresp"
	"github.com/AtlasFacilities/service-desk-api/internal/infra/storage"
	"github.com/AtlasFacilities/service-desk-api/internal/middleware"
	"github.com/AtlasFacilities/service-desk-api/internal/models"
	ucWorkorder "github.com/AtlasFacilities/service-desk-api/internal/usecase/workorder"
)

// maxProofSize caps uploaded receipts at 10 MB.
const maxProofSize = 10 << 20

// ======================================================
// HANDLER
// ======================================================

type WorkOrderHandler struct {
	db        *gorm.DB
	store     storage.ObjectStore
	advanceUC *ucWorkorder.AdvanceStage
	cancelUC  *ucWorkorder.CancelWorkOrder
	priceUC   *ucWorkorder.SetPrice
	submitUC  *ucWorkorder.SubmitPaymentProof
	confirmUC *ucWorkorder.ConfirmPayment
	rejectUC  *ucWorkorder.RejectPaymentProof
}

func NewWorkOrderHandler(
	db *gorm.DB,
	store storage.ObjectStore,
	advanceUC *ucWorkorder.AdvanceStage,
	cancelUC *ucWorkorder.CancelWorkOrder,
	priceUC *ucWorkorder.SetPrice,
	submitUC *ucWorkorder.SubmitPaymentProof,
	confirmUC *ucWorkorder.ConfirmPayment,
	rejectUC *ucWorkorder.RejectPaymentProof,
) *WorkOrderHandler {
	return &WorkOrderHandler{
		db:        db,
		store:     store,
		advanceUC: advanceUC,
		cancelUC:  cancelUC,
		priceUC:   priceUC,
		submitUC:  submitUC,
		confirmUC: confirmUC,
		rejectUC:  rejectUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type AdvanceStageRequest struct {
	Stage string `json:"stage" binding:"required"`
}

type SetPriceRequest struct {
	Price         string     `json:"price" binding:"required"`
	ScheduledDate *time.Time `json:"scheduled_date"`
}

type ProofLinkRequest struct {
	Link string `json:"link" binding:"required"`
}

type RejectProofRequest struct {
	Note string `json:"note" binding:"required"`
}

// ======================================================
// READ
// ======================================================

func (h *WorkOrderHandler) ListByProject(c *gin.Context) {
	contractorID := c.MustGet(middleware.ContextContractorID).(uint)

	projectID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return
	}

	var orders []models.WorkOrder
	if err := h.db.
		Where("project_id = ? AND contractor_id = ?", projectID, contractorID).
		Order("scheduled_date ASC NULLS LAST, id ASC").
		Find(&orders).Error; err != nil {
		httperr.Internal(c, "failed_to_list_work_orders", "Could not list work orders.")
		return
	}

	httpresp.List(c, orders)
}

// ======================================================
// STAGE
// ======================================================

func (h *WorkOrderHandler) Advance(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	contractorID := c.MustGet(middleware.ContextContractorID).(uint)

	if err := capability.Require(actingRole(c), capability.ActionAdvanceStage); err != nil {
		httperr.Forbidden(c, "not_allowed", "Not allowed for this role.")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return
	}

	var req AdvanceStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request.")
		return
	}

	wo, err := h.advanceUC.Execute(
		c.Request.Context(), contractorID, userID, uint(id), domain.Stage(req.Stage),
	)
	if err != nil {
		httperr.FromBusiness(c, err)
		return
	}

	httpresp.OK(c, wo)
}

func (h *WorkOrderHandler) Cancel(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	contractorID := c.MustGet(middleware.ContextContractorID).(uint)

	if err := capability.Require(actingRole(c), capability.ActionCancelWorkOrder); err != nil {
		httperr.Forbidden(c, "not_allowed", "Not allowed for this role.")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return
	}

	wo, err := h.cancelUC.Execute(c.Request.Context(), contractorID, userID, uint(id))
	if err != nil {
		httperr.FromBusiness(c, err)
		return
	}

	httpresp.OK(c, wo)
}

// ======================================================
// PRICE
// ======================================================

func (h *WorkOrderHandler) SetPrice(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	contractorID := c.MustGet(middleware.ContextContractorID).(uint)

	if err := capability.Require(actingRole(c), capability.ActionPriceWorkOrder); err != nil {
		httperr.Forbidden(c, "not_allowed", "Only the contractor prices work.")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return
	}

	var req SetPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request.")
		return
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		httperr.BadRequest(c, "invalid_price", "Invalid price.")
		return
	}

	wo, err := h.priceUC.Execute(
		c.Request.Context(), contractorID, userID, uint(id), price, req.ScheduledDate,
	)
	if err != nil {
		httperr.FromBusiness(c, err)
		return
	}

	httpresp.OK(c, wo)
}

// ======================================================
// PAYMENT HANDSHAKE
// ======================================================

// SubmitProof accepts either a multipart "file" upload, stored in the
// object store, or a JSON body carrying an external link.
func (h *WorkOrderHandler) SubmitProof(c *gin.Context) {
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

	proof, ok := h.resolveProof(c, fmt.Sprintf("work-orders/%d/proofs", id))
	if !ok {
		return
	}

	wo, err := h.submitUC.Execute(c.Request.Context(), contractorID, userID, uint(id), proof)
	if err != nil {
		httperr.FromBusiness(c, err)
		return
	}

	httpresp.OK(c, wo)
}

func (h *WorkOrderHandler) ConfirmPayment(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	contractorID := c.MustGet(middleware.ContextContractorID).(uint)

	if err := capability.Require(actingRole(c), capability.ActionConfirmPayment); err != nil {
		httperr.Forbidden(c, "not_allowed", "Only the contractor confirms payment.")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return
	}

	wo, err := h.confirmUC.Execute(c.Request.Context(), contractorID, userID, uint(id))
	if err != nil {
		httperr.FromBusiness(c, err)
		return
	}

	httpresp.OK(c, wo)
}

func (h *WorkOrderHandler) RejectProof(c *gin.Context) {
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

	wo, err := h.rejectUC.Execute(c.Request.Context(), contractorID, userID, uint(id), req.Note)
	if err != nil {
		httperr.FromBusiness(c, err)
		return
	}

	httpresp.OK(c, wo)
}

func (h *WorkOrderHandler) resolveProof(c *gin.Context, prefix string) (domain.Proof, bool) {
	url, proofType, fileName, ok := resolveProofUpload(c, h.store, prefix)
	if !ok {
		return domain.Proof{}, false
	}
	return domain.Proof{URL: url, Type: proofType, FileName: fileName}, true
}
