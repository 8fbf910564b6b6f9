package billing

import (
	"testing"
	"time"

	"github.com/AtlasFacilities/service-desk-api/internal/httperr"
	"github.com/AtlasFacilities/service-desk-api/internal/models"
)

func oneItemQuotation(status QuotationStatus) *models.Quotation {
	return &models.Quotation{
		Status:  string(status),
		TaxRate: d("5"),
		Items: []models.QuotationItem{
			{Description: "Service", Quantity: d("1"), UnitPrice: d("100")},
		},
	}
}

func TestQuotationLifecycle(t *testing.T) {
	now := time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC)

	t.Run("send then approve", func(t *testing.T) {
		q := oneItemQuotation(QuotationDraft)
		if err := SendQuotation(q, now); err != nil {
			t.Fatalf("send: %v", err)
		}
		if q.Status != string(QuotationSent) || q.SentAt == nil {
			t.Fatalf("send did not apply: %+v", q)
		}

		if err := ApproveQuotation(q, now); err != nil {
			t.Fatalf("approve: %v", err)
		}
		if q.Status != string(QuotationApproved) || q.DecidedAt == nil {
			t.Fatalf("approve did not apply: %+v", q)
		}
	})

	t.Run("send requires items", func(t *testing.T) {
		q := &models.Quotation{Status: string(QuotationDraft)}
		if err := SendQuotation(q, now); !httperr.IsBusiness(err, "no_line_items") {
			t.Fatalf("expected no_line_items, got %v", err)
		}
	})

	t.Run("send only from draft", func(t *testing.T) {
		q := oneItemQuotation(QuotationSent)
		if err := SendQuotation(q, now); !httperr.IsBusiness(err, "not_draft") {
			t.Fatalf("expected not_draft, got %v", err)
		}
	})

	t.Run("reject requires note", func(t *testing.T) {
		q := oneItemQuotation(QuotationSent)
		if err := RejectQuotation(q, "", now); !httperr.IsBusiness(err, "missing_rejection_note") {
			t.Fatalf("expected missing_rejection_note, got %v", err)
		}

		if err := RejectQuotation(q, "price too high", now); err != nil {
			t.Fatalf("reject: %v", err)
		}
		if q.Status != string(QuotationRejected) || q.RejectNote != "price too high" {
			t.Fatalf("reject did not apply: %+v", q)
		}
	})

	t.Run("decisions blocked after validity lapses", func(t *testing.T) {
		q := oneItemQuotation(QuotationSent)
		lapsed := now.AddDate(0, 0, -10)
		q.ValidUntil = &lapsed

		if err := ApproveQuotation(q, now); !httperr.IsBusiness(err, "quotation_expired") {
			t.Fatalf("expected quotation_expired, got %v", err)
		}
		if got := EffectiveQuotationStatus(QuotationStatus(q.Status), q.ValidUntil, now); got != QuotationExpired {
			t.Fatalf("effective status = %s, want expired", got)
		}
	})

	t.Run("expiry is derived not stored", func(t *testing.T) {
		q := oneItemQuotation(QuotationSent)
		lapsed := now.AddDate(0, 0, -10)
		q.ValidUntil = &lapsed

		_ = EffectiveQuotationStatus(QuotationStatus(q.Status), q.ValidUntil, now)
		if q.Status != string(QuotationSent) {
			t.Fatalf("stored status mutated by a read")
		}
	})
}

func TestInvoiceProofHandshake(t *testing.T) {
	now := time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC)

	inv := &models.Invoice{
		Status:  string(InvoiceDraft),
		TaxRate: d("15"),
		Items:   []models.InvoiceItem{{Quantity: d("1"), UnitPrice: d("100")}},
	}
	RecomputeInvoice(inv)

	if err := SendInvoice(inv, now); err != nil {
		t.Fatalf("send: %v", err)
	}

	proof := Proof{URL: "s3://proofs/tx-1.pdf", Type: "file", FileName: "tx-1.pdf"}
	if err := SubmitInvoiceProof(inv, proof, now); err != nil {
		t.Fatalf("submit proof: %v", err)
	}
	if inv.Status != string(InvoicePaymentPending) || inv.ProofSubmittedAt == nil {
		t.Fatalf("proof submission did not apply: %+v", inv)
	}

	if err := ConfirmInvoicePayment(inv, now); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if inv.Status != string(InvoicePaid) || !inv.AmountPaid.Equal(inv.Total) {
		t.Fatalf("confirmation did not settle: %+v", inv)
	}

	// Confirming a paid invoice is rejected without a state change.
	if err := ConfirmInvoicePayment(inv, now); !httperr.IsBusiness(err, "already_paid") {
		t.Fatalf("expected already_paid, got %v", err)
	}
}

func TestConfirmRequiresPaymentPending(t *testing.T) {
	now := time.Now()

	for _, status := range []InvoiceStatus{InvoiceDraft, InvoiceSent, InvoiceCancelled} {
		inv := &models.Invoice{Status: string(status)}
		if err := ConfirmInvoicePayment(inv, now); err == nil {
			t.Fatalf("confirm from %s should fail", status)
		}
		if inv.Status != string(status) {
			t.Fatalf("confirm from %s mutated status", status)
		}
	}
}

func TestInvoiceProofValidation(t *testing.T) {
	now := time.Now()
	inv := &models.Invoice{Status: string(InvoiceSent)}

	if err := SubmitInvoiceProof(inv, Proof{Type: "file"}, now); !httperr.IsBusiness(err, "missing_proof_url") {
		t.Fatalf("expected missing_proof_url, got %v", err)
	}
	if err := SubmitInvoiceProof(inv, Proof{URL: "x", Type: "fax"}, now); !httperr.IsBusiness(err, "invalid_proof_type") {
		t.Fatalf("expected invalid_proof_type, got %v", err)
	}
}

func TestRejectInvoiceProof(t *testing.T) {
	now := time.Now()
	inv := &models.Invoice{Status: string(InvoicePaymentPending), ProofSubmittedAt: &now}

	if err := RejectInvoiceProof(inv, "wrong account"); err != nil {
		t.Fatalf("reject: %v", err)
	}
	if inv.Status != string(InvoiceSent) || inv.ProofSubmittedAt != nil {
		t.Fatalf("rejection did not reset: %+v", inv)
	}
}

func TestCancelInvoice(t *testing.T) {
	now := time.Now()

	for _, status := range []InvoiceStatus{InvoiceDraft, InvoiceSent, InvoicePaymentPending} {
		inv := &models.Invoice{Status: string(status)}
		if err := CancelInvoice(inv, now); err != nil {
			t.Fatalf("cancel from %s: %v", status, err)
		}
		if inv.Status != string(InvoiceCancelled) || inv.CancelledAt == nil {
			t.Fatalf("cancel from %s did not apply", status)
		}
	}

	paid := &models.Invoice{Status: string(InvoicePaid)}
	if err := CancelInvoice(paid, now); !httperr.IsBusiness(err, "already_paid") {
		t.Fatalf("expected already_paid, got %v", err)
	}
}

func TestRecordPayment(t *testing.T) {
	now := time.Now()

	newInvoice := func() *models.Invoice {
		inv := &models.Invoice{
			Status:  string(InvoiceSent),
			TaxRate: d("0"),
			Items:   []models.InvoiceItem{{Quantity: d("1"), UnitPrice: d("100")}},
		}
		RecomputeInvoice(inv)
		return inv
	}

	t.Run("partial then settle", func(t *testing.T) {
		inv := newInvoice()
		if err := RecordPayment(inv, d("40"), now); err != nil {
			t.Fatalf("partial: %v", err)
		}
		if got := EffectiveInvoiceStatus(inv, now); got != InvoicePartial {
			t.Fatalf("effective = %s, want partial", got)
		}

		if err := RecordPayment(inv, d("60"), now); err != nil {
			t.Fatalf("settle: %v", err)
		}
		if inv.Status != string(InvoicePaid) || inv.PaidAt == nil {
			t.Fatalf("full payment did not settle: %+v", inv)
		}
	})

	t.Run("overshoot rejected", func(t *testing.T) {
		inv := newInvoice()
		if err := RecordPayment(inv, d("150"), now); !httperr.IsBusiness(err, "amount_exceeds_total") {
			t.Fatalf("expected amount_exceeds_total, got %v", err)
		}
	})

	t.Run("still recordable while overdue", func(t *testing.T) {
		inv := newInvoice()
		past := now.AddDate(0, 0, -5)
		inv.DueDate = &past

		if got := EffectiveInvoiceStatus(inv, now); got != InvoiceOverdue {
			t.Fatalf("effective = %s, want overdue", got)
		}
		if err := RecordPayment(inv, d("100"), now); err != nil {
			t.Fatalf("payment on overdue invoice: %v", err)
		}
	})

	t.Run("non-positive amount", func(t *testing.T) {
		inv := newInvoice()
		if err := RecordPayment(inv, d("0"), now); !httperr.IsBusiness(err, "invalid_amount") {
			t.Fatalf("expected invalid_amount, got %v", err)
		}
	})
}
