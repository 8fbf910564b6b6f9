package handlers

import (
	"fmt"
	"io"
	"log"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/AtlasFacilities/service-desk-api/internal/audit"
	"github.com/AtlasFacilities/service-desk-api/internal/capability"
	domain "github.com/AtlasFacilities/service-desk-api/internal/domain/contract"
	"github.com/AtlasFacilities/service-desk-api/internal/httperr"
	"github.com/AtlasFacilities/service-desk-api/internal/httpresp"
	"github.com/AtlasFacilities/service-desk-api/internal/infra/notify"
	"github.com/AtlasFacilities/service-desk-api/internal/infra/storage"
	"github.com/AtlasFacilities/service-desk-api/internal/middleware"
	"github.com/AtlasFacilities/service-desk-api/internal/models"
	"github.com/AtlasFacilities/service-desk-api/internal/signature"
	"github.com/AtlasFacilities/service-desk-api/internal/timezone"
)

// maxSignatureSize caps the raw uploaded signature capture at 5 MB.
const maxSignatureSize = 5 << 20

// ======================================================
// HANDLER
// ======================================================

type ContractHandler struct {
	db     *gorm.DB
	store  storage.ObjectStore
	events notify.Publisher
	audit  *audit.Dispatcher
}

func NewContractHandler(
	db *gorm.DB,
	store storage.ObjectStore,
	events notify.Publisher,
	audit *audit.Dispatcher,
) *ContractHandler {
	return &ContractHandler{
		db:     db,
		store:  store,
		events: events,
		audit:  audit,
	}
}

// ======================================================
// RESPONSES
// ======================================================

// ContractResponse carries the read-time status: ACTIVE ages into EXPIRED
// past the end date without a stored write.
type ContractResponse struct {
	models.Contract
	EffectiveStatus string `json:"effective_status"`
}

func toContractResponse(ct models.Contract, now time.Time) ContractResponse {
	return ContractResponse{
		Contract:        ct,
		EffectiveStatus: string(domain.EffectiveStatus(&ct, now)),
	}
}

// ======================================================
// READ
// ======================================================

func (h *ContractHandler) List(c *gin.Context) {
	contractorID := c.MustGet(middleware.ContextContractorID).(uint)

	var contracts []models.Contract
	if err := h.db.
		Where("contractor_id = ?", contractorID).
		Order("created_at DESC").
		Find(&contracts).Error; err != nil {
		httperr.Internal(c, "failed_to_list_contracts", "Could not list contracts.")
		return
	}

	now := timezone.Now()
	out := make([]ContractResponse, 0, len(contracts))
	for _, ct := range contracts {
		out = append(out, toContractResponse(ct, now))
	}

	httpresp.List(c, out)
}

func (h *ContractHandler) GetByProject(c *gin.Context) {
	contractorID := c.MustGet(middleware.ContextContractorID).(uint)

	projectID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return
	}

	var ct models.Contract
	if err := h.db.
		Where("project_id = ? AND contractor_id = ?", projectID, contractorID).
		First(&ct).Error; err != nil {
		httperr.NotFound(c, "contract_not_found", "Contract not found.")
		return
	}

	httpresp.OK(c, toContractResponse(ct, timezone.Now()))
}

// ======================================================
// LIFECYCLE
// ======================================================

func (h *ContractHandler) SendForSignature(c *gin.Context) {
	h.runTransition(c, capability.ActionManageContracts, "contract_sent_for_signature",
		func(ct *models.Contract, _ uint) error {
			return domain.SendForSignature(ct)
		})
}

func (h *ContractHandler) Activate(c *gin.Context) {
	h.runTransition(c, capability.ActionManageContracts, "contract_activated",
		func(ct *models.Contract, _ uint) error {
			return domain.Activate(ct)
		})
}

func (h *ContractHandler) Terminate(c *gin.Context) {
	h.runTransition(c, capability.ActionManageContracts, "contract_terminated",
		func(ct *models.Contract, _ uint) error {
			return domain.Terminate(ct, timezone.Now())
		})
}

// Sign captures the client's drawn signature: the uploaded image is
// re-encoded to a bounded webp before it ever reaches the object store.
func (h *ContractHandler) Sign(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	contractorID := c.MustGet(middleware.ContextContractorID).(uint)

	if err := capability.Require(actingRole(c), capability.ActionSignContract); err != nil {
		httperr.Forbidden(c, "not_allowed", "Only the client signs a contract.")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return
	}

	file, header, err := c.Request.FormFile("signature")
	if err != nil {
		httperr.BadRequest(c, "missing_signature", "A signature image is required.")
		return
	}
	defer file.Close()

	if header.Size > maxSignatureSize {
		httperr.BadRequest(c, "file_too_large", "Signature image exceeds the size limit.")
		return
	}

	raw, err := io.ReadAll(io.LimitReader(file, maxSignatureSize))
	if err != nil {
		httperr.Internal(c, "failed_to_read_file", "Could not read the uploaded image.")
		return
	}

	normalized, err := signature.Normalize(raw)
	if err != nil {
		httperr.FromBusiness(c, err)
		return
	}

	key := fmt.Sprintf("contracts/%d/signature-%d.webp", id, time.Now().UnixNano())
	storedURL, err := h.store.Put(c.Request.Context(), key, "image/webp", normalized)
	if err != nil {
		httperr.Internal(c, "failed_to_store_file", "Could not store the signature.")
		return
	}

	var signed *models.Contract

	err = h.db.Transaction(func(tx *gorm.DB) error {
		var ct models.Contract
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND contractor_id = ?", id, contractorID).
			First(&ct).Error; err != nil {
			return httperr.ErrNotFound("contract_not_found")
		}

		if err := domain.Sign(&ct, storedURL, userID, timezone.Now()); err != nil {
			return err
		}

		if err := tx.Save(&ct).Error; err != nil {
			return err
		}

		signed = &ct
		return nil
	})
	if err != nil {
		httperr.FromBusiness(c, err)
		return
	}

	if err := h.events.Publish(c.Request.Context(), notify.EventContractSigned, map[string]any{
		"contract_id": signed.ID,
		"project_id":  signed.ProjectID,
	}); err != nil {
		log.Printf("publish %s failed: %v", notify.EventContractSigned, err)
	}

	h.audit.Dispatch(audit.Event{
		ContractorID: contractorID,
		UserID:       &userID,
		Action:       "contract_signed",
		Entity:       "contract",
		EntityID:     &signed.ID,
	})

	httpresp.OK(c, toContractResponse(*signed, timezone.Now()))
}

// ======================================================
// HELPERS
// ======================================================

func (h *ContractHandler) runTransition(
	c *gin.Context,
	action capability.Action,
	auditAction string,
	apply func(ct *models.Contract, userID uint) error,
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

	var updated *models.Contract

	err = h.db.Transaction(func(tx *gorm.DB) error {
		var ct models.Contract
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND contractor_id = ?", id, contractorID).
			First(&ct).Error; err != nil {
			return httperr.ErrNotFound("contract_not_found")
		}

		if err := apply(&ct, userID); err != nil {
			return err
		}

		if err := tx.Save(&ct).Error; err != nil {
			return err
		}

		updated = &ct
		return nil
	})
	if err != nil {
		httperr.FromBusiness(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		ContractorID: contractorID,
		UserID:       &userID,
		Action:       auditAction,
		Entity:       "contract",
		EntityID:     &updated.ID,
	})

	httpresp.OK(c, toContractResponse(*updated, timezone.Now()))
}
