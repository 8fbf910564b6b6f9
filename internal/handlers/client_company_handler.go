package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/AtlasFacilities/service-desk-api/internal/capability"
	"github.com/AtlasFacilities/service-desk-api/internal/httperr"
	"github.com/AtlasFacilities/service-desk-api/internal/httpresp"
	"github.com/AtlasFacilities/service-desk-api/internal/middleware"
	"github.com/AtlasFacilities/service-desk-api/internal/models"
)

type ClientCompanyHandler struct {
	db *gorm.DB
}

func NewClientCompanyHandler(db *gorm.DB) *ClientCompanyHandler {
	return &ClientCompanyHandler{db: db}
}

type ClientCompanyRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

func (h *ClientCompanyHandler) List(c *gin.Context) {
	contractorID := c.MustGet(middleware.ContextContractorID).(uint)

	var companies []models.ClientCompany
	if err := h.db.
		Where("contractor_id = ?", contractorID).
		Order("name ASC").
		Find(&companies).Error; err != nil {
		httperr.Internal(c, "failed_to_list_companies", "Could not list client companies.")
		return
	}

	httpresp.List(c, companies)
}

func (h *ClientCompanyHandler) Create(c *gin.Context) {
	contractorID := c.MustGet(middleware.ContextContractorID).(uint)

	var req ClientCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request.")
		return
	}

	company := models.ClientCompany{
		ContractorID: contractorID,
		Name:         req.Name,
		Phone:        req.Phone,
		Email:        req.Email,
		Address:      req.Address,
	}

	if err := h.db.Create(&company).Error; err != nil {
		httperr.Internal(c, "failed_to_create_company", "Could not create client company.")
		return
	}

	httpresp.Created(c, company)
}

func (h *ClientCompanyHandler) Update(c *gin.Context) {
	contractorID := c.MustGet(middleware.ContextContractorID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return
	}

	var company models.ClientCompany
	if err := h.db.
		Where("id = ? AND contractor_id = ?", id, contractorID).
		First(&company).Error; err != nil {
		httperr.NotFound(c, "company_not_found", "Client company not found.")
		return
	}

	var req ClientCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request.")
		return
	}

	company.Name = req.Name
	company.Phone = req.Phone
	company.Email = req.Email
	company.Address = req.Address

	if err := h.db.Save(&company).Error; err != nil {
		httperr.Internal(c, "failed_to_update_company", "Could not update client company.")
		return
	}

	httpresp.OK(c, company)
}

type ClientUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
}

// CreateUser provisions a client-side login tied to the company. Client
// accounts are never self-serve; the contractor creates them.
func (h *ClientCompanyHandler) CreateUser(c *gin.Context) {
	contractorID := c.MustGet(middleware.ContextContractorID).(uint)

	if err := capability.Require(actingRole(c), capability.ActionManageUsers); err != nil {
		httperr.Forbidden(c, "not_allowed", "Not allowed for this role.")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return
	}

	var company models.ClientCompany
	if err := h.db.
		Where("id = ? AND contractor_id = ?", id, contractorID).
		First(&company).Error; err != nil {
		httperr.NotFound(c, "company_not_found", "Client company not found.")
		return
	}

	var req ClientUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request.")
		return
	}

	var existing models.User
	if err := h.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		httperr.Conflict(c, "email_in_use", "Email already registered.")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Could not create user.")
		return
	}

	companyID := company.ID
	user := models.User{
		ContractorID:    contractorID,
		ClientCompanyID: &companyID,
		Name:            req.Name,
		Email:           req.Email,
		PasswordHash:    string(hash),
		Phone:           req.Phone,
		Role:            "client",
	}

	if err := h.db.Create(&user).Error; err != nil {
		httperr.Internal(c, "failed_to_create_user", "Could not create user.")
		return
	}

	httpresp.Created(c, user)
}
