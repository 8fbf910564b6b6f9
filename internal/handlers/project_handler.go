package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/AtlasFacilities/service-desk-api/internal/capability"
	domainproject "github.com/AtlasFacilities/service-desk-api/internal/domain/project"
	"github.com/AtlasFacilities/service-desk-api/internal/domain/workorder"
	"github.com/AtlasFacilities/service-desk-api/internal/httperr"
	"github.com/AtlasFacilities/service-desk-api/internal/httpresp"
	"github.com/AtlasFacilities/service-desk-api/internal/middleware"
	"github.com/AtlasFacilities/service-desk-api/internal/models"
	ucProject "github.com/AtlasFacilities/service-desk-api/internal/usecase/project"
)

// ======================================================
// HANDLER
// ======================================================

type ProjectHandler struct {
	db           *gorm.DB
	createUC     *ucProject.CreateProject
	approveUC    *ucProject.ApproveProject
	addWorkOrder *ucProject.AddWorkOrder
}

func NewProjectHandler(
	db *gorm.DB,
	createUC *ucProject.CreateProject,
	approveUC *ucProject.ApproveProject,
	addWorkOrder *ucProject.AddWorkOrder,
) *ProjectHandler {
	return &ProjectHandler{
		db:           db,
		createUC:     createUC,
		approveUC:    approveUC,
		addWorkOrder: addWorkOrder,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type WorkOrderTemplateRequest struct {
	Name          string     `json:"name" binding:"required"`
	Description   string     `json:"description"`
	Price         *string    `json:"price"`
	ScheduledDate *time.Time `json:"scheduled_date"`
	RecurringType string     `json:"recurring_type"`
}

type CreateProjectRequest struct {
	BranchID    uint       `json:"branch_id" binding:"required"`
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	StartDate   time.Time  `json:"start_date" binding:"required"`
	EndDate     *time.Time `json:"end_date"`

	WorkOrders []WorkOrderTemplateRequest `json:"work_orders" binding:"required"`
}

type AddWorkOrderRequest struct {
	Title         string     `json:"title" binding:"required"`
	Description   string     `json:"description"`
	Price         *string    `json:"price"`
	ScheduledDate *time.Time `json:"scheduled_date"`
}

// ======================================================
// RESPONSES
// ======================================================

// ProjectResponse adds the derived aggregates the client dashboard needs.
type ProjectResponse struct {
	models.Project
	TotalValue decimal.Decimal `json:"total_value"`
	IsDone     bool            `json:"is_done"`
}

func toProjectResponse(p models.Project) ProjectResponse {
	return ProjectResponse{
		Project:    p,
		TotalValue: domainproject.TotalValue(p.WorkOrders),
		IsDone:     domainproject.IsDone(p.WorkOrders),
	}
}

// ======================================================
// HELPERS
// ======================================================

func actingRole(c *gin.Context) capability.Role {
	role, _ := c.MustGet(middleware.ContextUserRole).(string)
	return capability.Role(role)
}

func parsePrice(raw *string) (*decimal.Decimal, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(*raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// ======================================================
// CREATE
// ======================================================

func (h *ProjectHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	contractorID := c.MustGet(middleware.ContextContractorID).(uint)

	if err := capability.Require(actingRole(c), capability.ActionCreateProject); err != nil {
		httperr.Forbidden(c, "not_allowed", "Not allowed for this role.")
		return
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request.")
		return
	}

	templates := make([]workorder.Template, 0, len(req.WorkOrders))
	for _, t := range req.WorkOrders {
		tpl := workorder.Template{
			Name:          t.Name,
			Description:   t.Description,
			Type:          "scheduled",
			ScheduledDate: t.ScheduledDate,
			RecurringType: workorder.RecurringType(t.RecurringType),
		}
		if tpl.RecurringType == "" {
			tpl.RecurringType = workorder.RecurringOnce
		}
		price, err := parsePrice(t.Price)
		if err != nil {
			httperr.BadRequest(c, "invalid_price", "Invalid price.")
			return
		}
		if price != nil {
			if price.IsNegative() {
				httperr.BadRequest(c, "negative_price", "Price cannot be negative.")
				return
			}
			tpl.Price = decimal.NewNullDecimal(*price)
		}
		templates = append(templates, tpl)
	}

	p, err := h.createUC.Execute(c.Request.Context(), ucProject.CreateProjectInput{
		ContractorID: contractorID,
		UserID:       userID,
		BranchID:     req.BranchID,
		Title:        req.Title,
		Description:  req.Description,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Templates:    templates,
	})
	if err != nil {
		httperr.FromBusiness(c, err)
		return
	}

	httpresp.Created(c, toProjectResponse(*p))
}

// ======================================================
// READ
// ======================================================

func (h *ProjectHandler) List(c *gin.Context) {
	contractorID := c.MustGet(middleware.ContextContractorID).(uint)

	q := h.db.Where("contractor_id = ?", contractorID)
	if branchID := c.Query("branch_id"); branchID != "" {
		q = q.Where("branch_id = ?", branchID)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var projects []models.Project
	if err := q.
		Preload("Branch").
		Preload("WorkOrders").
		Order("created_at DESC").
		Find(&projects).Error; err != nil {
		httperr.Internal(c, "failed_to_list_projects", "Could not list projects.")
		return
	}

	out := make([]ProjectResponse, 0, len(projects))
	for _, p := range projects {
		out = append(out, toProjectResponse(p))
	}

	httpresp.List(c, out)
}

func (h *ProjectHandler) Get(c *gin.Context) {
	contractorID := c.MustGet(middleware.ContextContractorID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return
	}

	var p models.Project
	if err := h.db.
		Preload("Branch").
		Preload("WorkOrders").
		Where("id = ? AND contractor_id = ?", id, contractorID).
		First(&p).Error; err != nil {
		httperr.NotFound(c, "project_not_found", "Project not found.")
		return
	}

	httpresp.OK(c, toProjectResponse(p))
}

// ======================================================
// APPROVE
// ======================================================

func (h *ProjectHandler) Approve(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	contractorID := c.MustGet(middleware.ContextContractorID).(uint)

	if err := capability.Require(actingRole(c), capability.ActionApproveProject); err != nil {
		httperr.Forbidden(c, "not_allowed", "Only the client approves a project.")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return
	}

	p, err := h.approveUC.Execute(c.Request.Context(), contractorID, userID, uint(id))
	if err != nil {
		httperr.FromBusiness(c, err)
		return
	}

	httpresp.OK(c, p)
}

// ======================================================
// ADD WORK ORDER
// ======================================================

func (h *ProjectHandler) AddWorkOrder(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	contractorID := c.MustGet(middleware.ContextContractorID).(uint)

	role := actingRole(c)
	if err := capability.Require(role, capability.ActionAddWorkOrder); err != nil {
		httperr.Forbidden(c, "not_allowed", "Not allowed for this role.")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return
	}

	var req AddWorkOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request.")
		return
	}

	price, err := parsePrice(req.Price)
	if err != nil {
		httperr.BadRequest(c, "invalid_price", "Invalid price.")
		return
	}

	wo, err := h.addWorkOrder.Execute(c.Request.Context(), ucProject.AddWorkOrderInput{
		ContractorID:  contractorID,
		UserID:        userID,
		ProjectID:     uint(id),
		Title:         req.Title,
		Description:   req.Description,
		ScheduledDate: req.ScheduledDate,
		Price:         price,
		CanPrice:      capability.Can(role, capability.ActionPriceWorkOrder),
	})
	if err != nil {
		httperr.FromBusiness(c, err)
		return
	}

	httpresp.Created(c, wo)
}
