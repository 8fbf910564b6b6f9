package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AtlasFacilities/service-desk-api/internal/capability"
	"github.com/AtlasFacilities/service-desk-api/internal/httperr"
	"github.com/AtlasFacilities/service-desk-api/internal/httpresp"
	"github.com/AtlasFacilities/service-desk-api/internal/middleware"
	"github.com/AtlasFacilities/service-desk-api/internal/models"
	ucChecklist "github.com/AtlasFacilities/service-desk-api/internal/usecase/checklist"
)

type ChecklistHandler struct {
	db *gorm.DB
	uc *ucChecklist.UseCase
}

func NewChecklistHandler(db *gorm.DB, uc *ucChecklist.UseCase) *ChecklistHandler {
	return &ChecklistHandler{db: db, uc: uc}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateChecklistRequest struct {
	BranchID  uint     `json:"branch_id" binding:"required"`
	ProjectID *uint    `json:"project_id"`
	Name      string   `json:"name" binding:"required"`
	Items     []string `json:"items" binding:"required"`
}

type TickItemRequest struct {
	Done *bool `json:"done" binding:"required"`
}

// ======================================================
// HANDLERS
// ======================================================

func (h *ChecklistHandler) List(c *gin.Context) {
	contractorID := c.MustGet(middleware.ContextContractorID).(uint)

	q := h.db.Where("contractor_id = ?", contractorID)
	if branchID := c.Query("branch_id"); branchID != "" {
		q = q.Where("branch_id = ?", branchID)
	}

	var checklists []models.Checklist
	if err := q.Preload("Items").Order("created_at DESC").Find(&checklists).Error; err != nil {
		httperr.Internal(c, "failed_to_list_checklists", "Could not list checklists.")
		return
	}

	httpresp.List(c, checklists)
}

func (h *ChecklistHandler) Get(c *gin.Context) {
	contractorID := c.MustGet(middleware.ContextContractorID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return
	}

	var cl models.Checklist
	if err := h.db.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("id = ? AND contractor_id = ?", id, contractorID).
		First(&cl).Error; err != nil {
		httperr.NotFound(c, "checklist_not_found", "Checklist not found.")
		return
	}

	httpresp.OK(c, cl)
}

func (h *ChecklistHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	contractorID := c.MustGet(middleware.ContextContractorID).(uint)

	if err := capability.Require(actingRole(c), capability.ActionRunChecklists); err != nil {
		httperr.Forbidden(c, "not_allowed", "Not allowed for this role.")
		return
	}

	var req CreateChecklistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request.")
		return
	}

	cl, err := h.uc.Create(c.Request.Context(), contractorID, userID, ucChecklist.CreateInput{
		BranchID:  req.BranchID,
		ProjectID: req.ProjectID,
		Name:      req.Name,
		Items:     req.Items,
	})
	if err != nil {
		httperr.FromBusiness(c, err)
		return
	}

	httpresp.Created(c, cl)
}

func (h *ChecklistHandler) Start(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	contractorID := c.MustGet(middleware.ContextContractorID).(uint)

	if err := capability.Require(actingRole(c), capability.ActionRunChecklists); err != nil {
		httperr.Forbidden(c, "not_allowed", "Not allowed for this role.")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return
	}

	cl, err := h.uc.Start(c.Request.Context(), contractorID, userID, uint(id))
	if err != nil {
		httperr.FromBusiness(c, err)
		return
	}

	httpresp.OK(c, cl)
}

func (h *ChecklistHandler) TickItem(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	contractorID := c.MustGet(middleware.ContextContractorID).(uint)

	if err := capability.Require(actingRole(c), capability.ActionRunChecklists); err != nil {
		httperr.Forbidden(c, "not_allowed", "Not allowed for this role.")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return
	}
	itemID, err := strconv.ParseUint(c.Param("itemId"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_item_id", "Invalid item id.")
		return
	}

	var req TickItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request.")
		return
	}

	cl, err := h.uc.TickItem(
		c.Request.Context(), contractorID, userID, uint(id), uint(itemID), *req.Done,
	)
	if err != nil {
		httperr.FromBusiness(c, err)
		return
	}

	httpresp.OK(c, cl)
}

func (h *ChecklistHandler) Complete(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	contractorID := c.MustGet(middleware.ContextContractorID).(uint)

	if err := capability.Require(actingRole(c), capability.ActionRunChecklists); err != nil {
		httperr.Forbidden(c, "not_allowed", "Not allowed for this role.")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return
	}

	cl, err := h.uc.Complete(c.Request.Context(), contractorID, userID, uint(id))
	if err != nil {
		httperr.FromBusiness(c, err)
		return
	}

	httpresp.OK(c, cl)
}
