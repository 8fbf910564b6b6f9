package capability

import "github.com/AtlasFacilities/service-desk-api/internal/httperr"

// Role gating is resolved once here, at the boundary. Handlers resolve the
// acting user's capability set and usecases receive plain booleans/actions;
// the domain stays role-agnostic.

type Role string

const (
	RoleContractor Role = "contractor"
	RoleTechnician Role = "technician"
	RoleClient     Role = "client"
)

type Action string

const (
	ActionManageBranches    Action = "manage_branches"
	ActionManageUsers       Action = "manage_users"
	ActionCreateProject     Action = "create_project"
	ActionApproveProject    Action = "approve_project"
	ActionAddWorkOrder      Action = "add_work_order"
	ActionPriceWorkOrder    Action = "price_work_order"
	ActionAdvanceStage      Action = "advance_stage"
	ActionCancelWorkOrder   Action = "cancel_work_order"
	ActionSubmitProof       Action = "submit_proof"
	ActionConfirmPayment    Action = "confirm_payment"
	ActionManageBilling     Action = "manage_billing"
	ActionDecideQuotation   Action = "decide_quotation"
	ActionManageCompliance  Action = "manage_compliance"
	ActionRunChecklists     Action = "run_checklists"
	ActionSignContract      Action = "sign_contract"
	ActionManageContracts   Action = "manage_contracts"
	ActionViewActionCenter  Action = "view_action_center"
)

var grants = map[Role]map[Action]bool{
	RoleContractor: {
		ActionManageBranches:   true,
		ActionManageUsers:      true,
		ActionCreateProject:    true,
		ActionAddWorkOrder:     true,
		ActionPriceWorkOrder:   true,
		ActionAdvanceStage:     true,
		ActionCancelWorkOrder:  true,
		ActionConfirmPayment:   true,
		ActionManageBilling:    true,
		ActionManageCompliance: true,
		ActionRunChecklists:    true,
		ActionManageContracts:  true,
		ActionViewActionCenter: true,
	},
	RoleTechnician: {
		ActionAdvanceStage:  true,
		ActionRunChecklists: true,
	},
	RoleClient: {
		ActionApproveProject:  true,
		ActionAddWorkOrder:    true,
		ActionSubmitProof:     true,
		ActionDecideQuotation: true,
		ActionSignContract:    true,
	},
}

func Can(role Role, action Action) bool {
	return grants[role][action]
}

// Require returns a not-found error rather than a dedicated "forbidden"
// code for entity-scoped actions resolved by id, so existence never leaks;
// callers that gate before resolution map it to 403 themselves.
func Require(role Role, action Action) error {
	if !Can(role, action) {
		return httperr.ErrNotFound("not_available")
	}
	return nil
}
