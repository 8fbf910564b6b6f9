package expiry

import (
	"time"

	"github.com/AtlasFacilities/service-desk-api/internal/timezone"
)

// ===============================
// Expiring bands
// ===============================

type Band string

const (
	BandNone         Band = "none"
	BandExpired      Band = "expired"
	BandExpiringSoon Band = "expiring_soon"
	BandActive       Band = "active"
)

// Artifacts within this many days of expiry show up as expiring soon.
const SoonWindowDays = 30

// Classify derives the expiring band of a dated compliance artifact.
// Comparison is calendar-day based so the band never flips within a day
// depending on the hour a request lands.
func Classify(expiry *time.Time, now time.Time) Band {
	if expiry == nil {
		return BandNone
	}

	days := DaysUntil(expiry, now)
	switch {
	case days < 0:
		return BandExpired
	case days <= SoonWindowDays:
		return BandExpiringSoon
	default:
		return BandActive
	}
}

// DaysUntil returns whole calendar days from now until expiry; negative
// once the expiry day has passed, zero on the expiry day itself.
func DaysUntil(expiry *time.Time, now time.Time) int {
	if expiry == nil {
		return 0
	}

	expDay := timezone.StartOfDay(expiry.In(now.Location()))
	nowDay := timezone.StartOfDay(now)
	return int(expDay.Sub(nowDay).Hours() / 24)
}
