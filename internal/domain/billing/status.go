package billing

import (
	"time"

	"github.com/AtlasFacilities/service-desk-api/internal/httperr"
	"github.com/AtlasFacilities/service-desk-api/internal/timezone"
)

// ===============================
// Quotation status
// ===============================

type QuotationStatus string

const (
	QuotationDraft    QuotationStatus = "draft"
	QuotationSent     QuotationStatus = "sent"
	QuotationApproved QuotationStatus = "approved"
	QuotationRejected QuotationStatus = "rejected"

	// Derived only: a sent quotation past validUntil. Never stored.
	QuotationExpired QuotationStatus = "expired"
)

func CanSendQuotation(current QuotationStatus) error {
	if current != QuotationDraft {
		return httperr.ErrStateConflict("not_draft")
	}
	return nil
}

// Client decisions apply to sent quotations only, and not after the
// validity window has lapsed.
func CanDecideQuotation(current QuotationStatus, validUntil *time.Time, now time.Time) error {
	if current != QuotationSent {
		return httperr.ErrStateConflict("not_sent")
	}
	if EffectiveQuotationStatus(current, validUntil, now) == QuotationExpired {
		return httperr.ErrStateConflict("quotation_expired")
	}
	return nil
}

// Only drafts may be edited or deleted; line items freeze on send.
func CanEditQuotation(current QuotationStatus) error {
	if current != QuotationDraft {
		return httperr.ErrStateConflict("not_draft")
	}
	return nil
}

// EffectiveQuotationStatus derives the read-time status: SENT ages into
// EXPIRED once validUntil passes. The stored column is never rewritten.
func EffectiveQuotationStatus(stored QuotationStatus, validUntil *time.Time, now time.Time) QuotationStatus {
	if stored != QuotationSent || validUntil == nil {
		return stored
	}
	if timezone.StartOfDay(now).After(timezone.StartOfDay(validUntil.In(now.Location()))) {
		return QuotationExpired
	}
	return stored
}

// ===============================
// Invoice status
// ===============================

type InvoiceStatus string

const (
	InvoiceDraft          InvoiceStatus = "draft"
	InvoiceSent           InvoiceStatus = "sent"
	InvoicePaymentPending InvoiceStatus = "payment_pending"
	InvoicePaid           InvoiceStatus = "paid"
	InvoiceCancelled      InvoiceStatus = "cancelled"

	// Derived only, never stored.
	InvoicePartial InvoiceStatus = "partial"
	InvoiceOverdue InvoiceStatus = "overdue"
)

func CanSendInvoice(current InvoiceStatus) error {
	if current != InvoiceDraft {
		return httperr.ErrStateConflict("not_draft")
	}
	return nil
}

func CanEditInvoice(current InvoiceStatus) error {
	if current != InvoiceDraft {
		return httperr.ErrStateConflict("not_draft")
	}
	return nil
}

func CanSubmitInvoiceProof(current InvoiceStatus) error {
	switch current {
	case InvoiceSent, InvoicePaymentPending:
		return nil
	case InvoicePaid:
		return httperr.ErrStateConflict("already_paid")
	case InvoiceCancelled:
		return httperr.ErrStateConflict("invoice_cancelled")
	default:
		return httperr.ErrStateConflict("not_sent")
	}
}

// CanConfirmInvoicePayment is strictly gated on PAYMENT_PENDING; a confirm
// on any other status is rejected without touching the invoice.
func CanConfirmInvoicePayment(current InvoiceStatus) error {
	if current == InvoicePaid {
		return httperr.ErrStateConflict("already_paid")
	}
	if current != InvoicePaymentPending {
		return httperr.ErrStateConflict("not_payment_pending")
	}
	return nil
}

func CanRejectInvoiceProof(current InvoiceStatus) error {
	if current != InvoicePaymentPending {
		return httperr.ErrStateConflict("not_payment_pending")
	}
	return nil
}

// CanCancelInvoice: terminal from any pre-paid state.
func CanCancelInvoice(current InvoiceStatus) error {
	switch current {
	case InvoicePaid:
		return httperr.ErrStateConflict("already_paid")
	case InvoiceCancelled:
		return httperr.ErrStateConflict("already_cancelled")
	}
	return nil
}

// Payments may still be recorded against sent (including overdue) and
// pending invoices.
func CanRecordPayment(current InvoiceStatus) error {
	switch current {
	case InvoiceSent, InvoicePaymentPending:
		return nil
	case InvoicePaid:
		return httperr.ErrStateConflict("already_paid")
	case InvoiceCancelled:
		return httperr.ErrStateConflict("invoice_cancelled")
	default:
		return httperr.ErrStateConflict("not_sent")
	}
}
