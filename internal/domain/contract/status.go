package contract

import (
	"time"

	"github.com/AtlasFacilities/service-desk-api/internal/httperr"
	"github.com/AtlasFacilities/service-desk-api/internal/models"
)

// ===============================
// Contract status
// ===============================

type Status string

const (
	StatusDraft            Status = "draft"
	StatusPendingSignature Status = "pending_signature"
	StatusSigned           Status = "signed"
	StatusActive           Status = "active"
	StatusExpired          Status = "expired"
	StatusTerminated       Status = "terminated"
)

func CanSendForSignature(current Status) error {
	if current != StatusDraft {
		return httperr.ErrStateConflict("not_draft")
	}
	return nil
}

func CanSign(current Status) error {
	if current != StatusPendingSignature {
		return httperr.ErrStateConflict("not_pending_signature")
	}
	return nil
}

func CanActivate(current Status) error {
	if current != StatusSigned {
		return httperr.ErrStateConflict("not_signed")
	}
	return nil
}

func CanTerminate(current Status) error {
	switch current {
	case StatusExpired:
		return httperr.ErrStateConflict("already_expired")
	case StatusTerminated:
		return httperr.ErrStateConflict("already_terminated")
	}
	return nil
}

// ===============================
// Domain Actions
// ===============================

func SendForSignature(ct *models.Contract) error {
	if err := CanSendForSignature(Status(ct.Status)); err != nil {
		return err
	}
	ct.Status = string(StatusPendingSignature)
	return nil
}

// Sign records the captured signature image key and who signed.
func Sign(ct *models.Contract, signatureURL string, signedBy uint, now time.Time) error {
	if signatureURL == "" {
		return httperr.ErrValidation("missing_signature")
	}
	if err := CanSign(Status(ct.Status)); err != nil {
		return err
	}

	ct.Status = string(StatusSigned)
	ct.SignatureURL = signatureURL
	ct.SignedAt = &now
	ct.SignedBy = &signedBy
	return nil
}

func Activate(ct *models.Contract) error {
	if err := CanActivate(Status(ct.Status)); err != nil {
		return err
	}
	ct.Status = string(StatusActive)
	return nil
}

func Terminate(ct *models.Contract, now time.Time) error {
	if err := CanTerminate(Status(ct.Status)); err != nil {
		return err
	}

	ct.Status = string(StatusTerminated)
	ct.TerminatedAt = &now
	return nil
}

// EffectiveStatus derives EXPIRED for active contracts past their end
// date; the stored column is left alone.
func EffectiveStatus(ct *models.Contract, now time.Time) Status {
	stored := Status(ct.Status)
	if stored != StatusActive || ct.EndDate == nil {
		return stored
	}
	if now.After(*ct.EndDate) {
		return StatusExpired
	}
	return stored
}
