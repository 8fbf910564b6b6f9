package billing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/AtlasFacilities/service-desk-api/internal/httperr"
	"github.com/AtlasFacilities/service-desk-api/internal/models"
)

// ===============================
// Quotation actions
// ===============================

func SendQuotation(q *models.Quotation, now time.Time) error {
	if err := CanSendQuotation(QuotationStatus(q.Status)); err != nil {
		return err
	}
	if len(q.Items) == 0 {
		return httperr.ErrValidation("no_line_items")
	}

	q.Status = string(QuotationSent)
	q.SentAt = &now
	return nil
}

func ApproveQuotation(q *models.Quotation, now time.Time) error {
	if err := CanDecideQuotation(QuotationStatus(q.Status), q.ValidUntil, now); err != nil {
		return err
	}

	q.Status = string(QuotationApproved)
	q.DecidedAt = &now
	return nil
}

// RejectQuotation requires a note explaining the rejection.
func RejectQuotation(q *models.Quotation, note string, now time.Time) error {
	if note == "" {
		return httperr.ErrValidation("missing_rejection_note")
	}
	if err := CanDecideQuotation(QuotationStatus(q.Status), q.ValidUntil, now); err != nil {
		return err
	}

	q.Status = string(QuotationRejected)
	q.RejectNote = note
	q.DecidedAt = &now
	return nil
}

// ===============================
// Invoice actions
// ===============================

func SendInvoice(inv *models.Invoice, now time.Time) error {
	if err := CanSendInvoice(InvoiceStatus(inv.Status)); err != nil {
		return err
	}
	if len(inv.Items) == 0 {
		return httperr.ErrValidation("no_line_items")
	}

	inv.Status = string(InvoiceSent)
	inv.SentAt = &now
	return nil
}

// Proof mirrors the work-order payment proof: a file upload or a link.
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

func SubmitInvoiceProof(inv *models.Invoice, proof Proof, now time.Time) error {
	if err := proof.validate(); err != nil {
		return err
	}
	if err := CanSubmitInvoiceProof(InvoiceStatus(inv.Status)); err != nil {
		return err
	}

	inv.Status = string(InvoicePaymentPending)
	inv.ProofURL = proof.URL
	inv.ProofType = proof.Type
	inv.ProofFileName = proof.FileName
	inv.ProofSubmittedAt = &now
	return nil
}

// ConfirmInvoicePayment settles the invoice in full. Rejected unless the
// invoice sits in PAYMENT_PENDING; a confirm on a paid invoice reports
// already_paid and changes nothing, so a retry never credits twice.
func ConfirmInvoicePayment(inv *models.Invoice, now time.Time) error {
	if err := CanConfirmInvoicePayment(InvoiceStatus(inv.Status)); err != nil {
		return err
	}

	inv.Status = string(InvoicePaid)
	inv.AmountPaid = inv.Total
	inv.PaidAt = &now
	return nil
}

func RejectInvoiceProof(inv *models.Invoice, note string) error {
	if note == "" {
		return httperr.ErrValidation("missing_rejection_note")
	}
	if err := CanRejectInvoiceProof(InvoiceStatus(inv.Status)); err != nil {
		return err
	}

	inv.Status = string(InvoiceSent)
	inv.ProofSubmittedAt = nil
	return nil
}

func CancelInvoice(inv *models.Invoice, now time.Time) error {
	if err := CanCancelInvoice(InvoiceStatus(inv.Status)); err != nil {
		return err
	}

	inv.Status = string(InvoiceCancelled)
	inv.CancelledAt = &now
	return nil
}

// RecordPayment amends amountPaid with a received amount. Reaching the
// total settles the invoice; overshooting is rejected.
func RecordPayment(inv *models.Invoice, amount decimal.Decimal, now time.Time) error {
	if !amount.IsPositive() {
		return httperr.ErrValidation("invalid_amount")
	}
	if err := CanRecordPayment(InvoiceStatus(inv.Status)); err != nil {
		return err
	}

	newPaid := inv.AmountPaid.Add(amount)
	if newPaid.GreaterThan(inv.Total) {
		return httperr.ErrValidation("amount_exceeds_total")
	}

	inv.AmountPaid = newPaid
	if newPaid.Equal(inv.Total) {
		inv.Status = string(InvoicePaid)
		inv.PaidAt = &now
	}
	return nil
}
