package workorder

import "github.com/AtlasFacilities/service-desk-api/internal/httperr"

// ===============================
// Work Order stage
// ===============================

type Stage string

const (
	StageRequested  Stage = "requested"
	StageScheduled  Stage = "scheduled"
	StageInProgress Stage = "in_progress"
	StageForReview  Stage = "for_review"
	StageCompleted  Stage = "completed"
	StageCancelled  Stage = "cancelled"
)

// Linear single-step progression. No skip-ahead, no backward moves.
var nextStage = map[Stage]Stage{
	StageRequested:  StageScheduled,
	StageScheduled:  StageInProgress,
	StageInProgress: StageForReview,
	StageForReview:  StageCompleted,
}

func InitialStage() Stage {
	return StageRequested
}

// CanAdvance validates a single-step advance from current to next.
func CanAdvance(current, next Stage) error {
	want, ok := nextStage[current]
	if !ok {
		return httperr.ErrStateConflict("stage_terminal")
	}
	if next != want {
		return httperr.ErrStateConflict("stage_skip_not_allowed")
	}
	return nil
}

// CanCancel allows cancellation from any non-terminal stage.
func CanCancel(current Stage) error {
	switch current {
	case StageCompleted:
		return httperr.ErrStateConflict("already_completed")
	case StageCancelled:
		return httperr.ErrStateConflict("already_cancelled")
	}
	return nil
}

// ===============================
// Payment status (orthogonal)
// ===============================
//
// The stage and payment machines evolve independently. Every stage/payment
// combination is legal except payment actions on a cancelled work order.

type PaymentStatus string

const (
	PaymentUnpaid              PaymentStatus = "unpaid"
	PaymentPendingVerification PaymentStatus = "pending_verification"
	PaymentPaid                PaymentStatus = "paid"
)

func CanSubmitProof(stage Stage, current PaymentStatus) error {
	if stage == StageCancelled {
		return httperr.ErrStateConflict("work_order_cancelled")
	}
	switch current {
	case PaymentUnpaid:
		return nil
	case PaymentPendingVerification:
		// Resubmission replaces the previous proof.
		return nil
	default:
		return httperr.ErrStateConflict("already_paid")
	}
}

// CanConfirmPayment gates the contractor-side confirmation. Confirming an
// already paid work order reports alreadyPaid=true so the caller can treat
// the retry as a no-op instead of a double credit.
func CanConfirmPayment(stage Stage, current PaymentStatus) (alreadyPaid bool, err error) {
	if stage == StageCancelled {
		return false, httperr.ErrStateConflict("work_order_cancelled")
	}
	switch current {
	case PaymentPaid:
		return true, nil
	case PaymentPendingVerification:
		return false, nil
	default:
		return false, httperr.ErrStateConflict("no_proof_submitted")
	}
}

func CanRejectProof(current PaymentStatus) error {
	if current != PaymentPendingVerification {
		return httperr.ErrStateConflict("no_proof_submitted")
	}
	return nil
}
