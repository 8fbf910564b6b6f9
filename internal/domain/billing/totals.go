package billing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/AtlasFacilities/service-desk-api/internal/models"
	"github.com/AtlasFacilities/service-desk-api/internal/timezone"
)

// ===============================
// Monetary arithmetic
// ===============================
//
// subtotal = Σ(quantity × unitPrice), taxAmount = subtotal × taxRate/100,
// total = subtotal + taxAmount. Recomputed whenever line items or the tax
// rate change; the stored columns are never edited independently.

var hundred = decimal.NewFromInt(100)

type Totals struct {
	Subtotal  decimal.Decimal
	TaxAmount decimal.Decimal
	Total     decimal.Decimal
}

func lineAmount(qty, unitPrice decimal.Decimal) decimal.Decimal {
	return qty.Mul(unitPrice).Round(2)
}

func computeTotals(subtotal, taxRate decimal.Decimal) Totals {
	tax := subtotal.Mul(taxRate).Div(hundred).Round(2)
	return Totals{
		Subtotal:  subtotal,
		TaxAmount: tax,
		Total:     subtotal.Add(tax),
	}
}

// RecomputeQuotation refreshes line amounts and document totals in place.
func RecomputeQuotation(q *models.Quotation) {
	subtotal := decimal.Zero
	for i := range q.Items {
		q.Items[i].Amount = lineAmount(q.Items[i].Quantity, q.Items[i].UnitPrice)
		subtotal = subtotal.Add(q.Items[i].Amount)
	}

	t := computeTotals(subtotal, q.TaxRate)
	q.Subtotal = t.Subtotal
	q.TaxAmount = t.TaxAmount
	q.Total = t.Total
}

// RecomputeInvoice refreshes line amounts and document totals in place.
func RecomputeInvoice(inv *models.Invoice) {
	subtotal := decimal.Zero
	for i := range inv.Items {
		inv.Items[i].Amount = lineAmount(inv.Items[i].Quantity, inv.Items[i].UnitPrice)
		subtotal = subtotal.Add(inv.Items[i].Amount)
	}

	t := computeTotals(subtotal, inv.TaxRate)
	inv.Subtotal = t.Subtotal
	inv.TaxAmount = t.TaxAmount
	inv.Total = t.Total
}

// ===============================
// Derived invoice classification
// ===============================

// EffectiveInvoiceStatus derives the read-time status of an invoice:
// PARTIAL while 0 < amountPaid < total, OVERDUE for sent invoices past
// their due date. Stored status wins for draft/paid/cancelled/pending.
func EffectiveInvoiceStatus(inv *models.Invoice, now time.Time) InvoiceStatus {
	stored := InvoiceStatus(inv.Status)

	if stored != InvoiceSent {
		return stored
	}

	if inv.AmountPaid.IsPositive() && inv.AmountPaid.LessThan(inv.Total) {
		return InvoicePartial
	}

	if inv.DueDate != nil &&
		timezone.StartOfDay(now).After(timezone.StartOfDay(inv.DueDate.In(now.Location()))) {
		return InvoiceOverdue
	}

	return stored
}
