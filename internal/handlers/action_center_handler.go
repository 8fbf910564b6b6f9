package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/AtlasFacilities/service-desk-api/internal/capability"
	"github.com/AtlasFacilities/service-desk-api/internal/httperr"
	"github.com/AtlasFacilities/service-desk-api/internal/httpresp"
	"github.com/AtlasFacilities/service-desk-api/internal/middleware"
	"github.com/AtlasFacilities/service-desk-api/internal/usecase/alerts"
)

type ActionCenterHandler struct {
	uc *alerts.ActionCenter
}

func NewActionCenterHandler(uc *alerts.ActionCenter) *ActionCenterHandler {
	return &ActionCenterHandler{uc: uc}
}

func (h *ActionCenterHandler) List(c *gin.Context) {
	contractorID := c.MustGet(middleware.ContextContractorID).(uint)

	if err := capability.Require(actingRole(c), capability.ActionViewActionCenter); err != nil {
		httperr.Forbidden(c, "not_allowed", "Not allowed for this role.")
		return
	}

	alerts, err := h.uc.Execute(c.Request.Context(), contractorID)
	if err != nil {
		httperr.Internal(c, "action_center_failed", "Could not load the action center.")
		return
	}

	httpresp.List(c, alerts)
}
