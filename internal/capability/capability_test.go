package capability

import "testing"

func TestGrants(t *testing.T) {
	cases := []struct {
		role   Role
		action Action
		want   bool
	}{
		{RoleClient, ActionApproveProject, true},
		{RoleContractor, ActionApproveProject, false},
		{RoleClient, ActionConfirmPayment, false},
		{RoleContractor, ActionConfirmPayment, true},
		{RoleClient, ActionSubmitProof, true},
		{RoleClient, ActionPriceWorkOrder, false},
		{RoleTechnician, ActionAdvanceStage, true},
		{RoleTechnician, ActionManageBilling, false},
		{RoleClient, ActionAddWorkOrder, true},
		{Role("unknown"), ActionAdvanceStage, false},
	}

	for _, tc := range cases {
		if got := Can(tc.role, tc.action); got != tc.want {
			t.Fatalf("Can(%s, %s) = %v, want %v", tc.role, tc.action, got, tc.want)
		}
	}
}

func TestRequireHidesExistence(t *testing.T) {
	err := Require(RoleClient, ActionConfirmPayment)
	if err == nil {
		t.Fatalf("expected error")
	}
	if err.Error() != "not_available" {
		t.Fatalf("got %q, want not_available", err.Error())
	}
}
