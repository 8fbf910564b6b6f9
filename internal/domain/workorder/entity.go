package workorder

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/AtlasFacilities/service-desk-api/internal/httperr"
	"github.com/AtlasFacilities/service-desk-api/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Advance(wo *models.WorkOrder, next Stage, now time.Time) error {
	if err := CanAdvance(Stage(wo.Stage), next); err != nil {
		return err
	}

	wo.Stage = string(next)
	if next == StageCompleted {
		wo.CompletedAt = &now
	}
	return nil
}

func Cancel(wo *models.WorkOrder, now time.Time) error {
	if err := CanCancel(Stage(wo.Stage)); err != nil {
		return err
	}

	wo.Stage = string(StageCancelled)
	wo.CancelledAt = &now
	return nil
}

func SetPrice(wo *models.WorkOrder, price decimal.Decimal) error {
	if Stage(wo.Stage) == StageCancelled {
		return httperr.ErrStateConflict("work_order_cancelled")
	}
	if price.IsNegative() {
		return httperr.ErrValidation("negative_price")
	}

	wo.Price = decimal.NewNullDecimal(price)
	return nil
}

// Proof is the client-submitted evidence of payment: an uploaded file or
// an external link.
type Proof struct {
	URL      string
	Type     string // file | link
	FileName string
}

func (p Proof) validate() error {
	if p.URL == "" {
		return httperr.ErrValidation("missing_proof_url")
	}
	if p.Type != "file" && p.Type != "link" {
		return httperr.ErrValidation("invalid_proof_type")
	}
	return nil
}

func SubmitProof(wo *models.WorkOrder, proof Proof, now time.Time) error {
	if err := proof.validate(); err != nil {
		return err
	}
	if err := CanSubmitProof(Stage(wo.Stage), PaymentStatus(wo.PaymentStatus)); err != nil {
		return err
	}

	wo.PaymentStatus = string(PaymentPendingVerification)
	wo.ProofURL = proof.URL
	wo.ProofType = proof.Type
	wo.ProofFileName = proof.FileName
	wo.ProofSubmittedAt = &now
	return nil
}

// ConfirmPayment flips pending verification to paid. A repeated confirm on
// an already paid work order returns changed=false with no error, so flaky
// client retries never double-credit.
func ConfirmPayment(wo *models.WorkOrder, now time.Time) (changed bool, err error) {
	alreadyPaid, err := CanConfirmPayment(Stage(wo.Stage), PaymentStatus(wo.PaymentStatus))
	if err != nil {
		return false, err
	}
	if alreadyPaid {
		return false, nil
	}

	wo.PaymentStatus = string(PaymentPaid)
	wo.PaidAt = &now
	return true, nil
}

func RejectProof(wo *models.WorkOrder, note string) error {
	if note == "" {
		return httperr.ErrValidation("missing_rejection_note")
	}
	if err := CanRejectProof(PaymentStatus(wo.PaymentStatus)); err != nil {
		return err
	}

	wo.PaymentStatus = string(PaymentUnpaid)
	wo.ProofSubmittedAt = nil
	return nil
}
