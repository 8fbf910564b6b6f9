package contract

import (
	"testing"
	"time"

	"github.com/AtlasFacilities/service-desk-api/internal/httperr"
	"github.com/AtlasFacilities/service-desk-api/internal/models"
)

func TestSignatureFlow(t *testing.T) {
	now := time.Now()
	ct := &models.Contract{Status: string(StatusDraft)}

	if err := Sign(ct, "sig.webp", 7, now); !httperr.IsBusiness(err, "not_pending_signature") {
		t.Fatalf("expected not_pending_signature, got %v", err)
	}

	if err := SendForSignature(ct); err != nil {
		t.Fatalf("send for signature: %v", err)
	}

	if err := Sign(ct, "", 7, now); !httperr.IsBusiness(err, "missing_signature") {
		t.Fatalf("expected missing_signature, got %v", err)
	}

	if err := Sign(ct, "contracts/1/sig.webp", 7, now); err != nil {
		t.Fatalf("sign: %v", err)
	}
	if ct.Status != string(StatusSigned) || ct.SignedAt == nil || ct.SignedBy == nil || *ct.SignedBy != 7 {
		t.Fatalf("sign did not apply: %+v", ct)
	}

	if err := Activate(ct); err != nil {
		t.Fatalf("activate: %v", err)
	}
	if ct.Status != string(StatusActive) {
		t.Fatalf("activate did not apply")
	}
}

func TestTerminate(t *testing.T) {
	now := time.Now()

	for _, status := range []Status{StatusDraft, StatusPendingSignature, StatusSigned, StatusActive} {
		ct := &models.Contract{Status: string(status)}
		if err := Terminate(ct, now); err != nil {
			t.Fatalf("terminate from %s: %v", status, err)
		}
		if ct.Status != string(StatusTerminated) || ct.TerminatedAt == nil {
			t.Fatalf("terminate from %s did not apply", status)
		}
	}

	done := &models.Contract{Status: string(StatusTerminated)}
	if err := Terminate(done, now); !httperr.IsBusiness(err, "already_terminated") {
		t.Fatalf("expected already_terminated, got %v", err)
	}
}

func TestEffectiveStatus(t *testing.T) {
	now := time.Now()
	past := now.AddDate(0, -1, 0)
	future := now.AddDate(0, 1, 0)

	expired := &models.Contract{Status: string(StatusActive), EndDate: &past}
	if got := EffectiveStatus(expired, now); got != StatusExpired {
		t.Fatalf("got %s, want expired", got)
	}
	if expired.Status != string(StatusActive) {
		t.Fatalf("stored status mutated by a read")
	}

	running := &models.Contract{Status: string(StatusActive), EndDate: &future}
	if got := EffectiveStatus(running, now); got != StatusActive {
		t.Fatalf("got %s, want active", got)
	}

	openEnded := &models.Contract{Status: string(StatusActive)}
	if got := EffectiveStatus(openEnded, now); got != StatusActive {
		t.Fatalf("open-ended contract should stay active, got %s", got)
	}
}
