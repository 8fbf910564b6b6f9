package expiry

import (
	"sort"
	"time"
)

// Alert is one Action Center row: a compliance artifact classified against
// "now". Derived on every read, never persisted.
type Alert struct {
	Kind       string     `json:"kind"` // branch_certificate | equipment | certificate | contract
	EntityID   uint       `json:"entity_id"`
	BranchID   uint       `json:"branch_id"`
	BranchName string     `json:"branch_name"`
	Label      string     `json:"label"`
	ExpiryDate *time.Time `json:"expiry_date"`
	Band       Band       `json:"band"`
	DaysLeft   int        `json:"days_left"`
}

// SortByUrgency orders alerts most-urgent first: expired items lead,
// then ascending days-until-expiry.
func SortByUrgency(alerts []Alert) {
	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].DaysLeft < alerts[j].DaysLeft
	})
}

// BuildAlert classifies one artifact and drops it unless it needs
// attention (expired or expiring soon).
func BuildAlert(kind string, entityID, branchID uint, branchName, label string, expiryDate *time.Time, now time.Time) (Alert, bool) {
	band := Classify(expiryDate, now)
	if band != BandExpired && band != BandExpiringSoon {
		return Alert{}, false
	}

	return Alert{
		Kind:       kind,
		EntityID:   entityID,
		BranchID:   branchID,
		BranchName: branchName,
		Label:      label,
		ExpiryDate: expiryDate,
		Band:       band,
		DaysLeft:   DaysUntil(expiryDate, now),
	}, true
}
