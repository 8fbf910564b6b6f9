package billing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/AtlasFacilities/service-desk-api/internal/models"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestRecomputeQuotation(t *testing.T) {
	t.Run("two times hundred at five percent", func(t *testing.T) {
		q := &models.Quotation{
			TaxRate: d("5"),
			Items: []models.QuotationItem{
				{Description: "Monthly service", Quantity: d("2"), UnitPrice: d("100")},
			},
		}

		RecomputeQuotation(q)

		if !q.Subtotal.Equal(d("200")) {
			t.Fatalf("subtotal = %s, want 200", q.Subtotal)
		}
		if !q.TaxAmount.Equal(d("10")) {
			t.Fatalf("tax = %s, want 10", q.TaxAmount)
		}
		if !q.Total.Equal(d("210")) {
			t.Fatalf("total = %s, want 210", q.Total)
		}
		if !q.Items[0].Amount.Equal(d("200")) {
			t.Fatalf("line amount = %s, want 200", q.Items[0].Amount)
		}
	})

	t.Run("zero items", func(t *testing.T) {
		q := &models.Quotation{TaxRate: d("15")}
		RecomputeQuotation(q)

		if !q.Subtotal.Equal(decimal.Zero) || !q.TaxAmount.Equal(decimal.Zero) || !q.Total.Equal(decimal.Zero) {
			t.Fatalf("empty quotation totals: %s %s %s", q.Subtotal, q.TaxAmount, q.Total)
		}
	})

	t.Run("total identity holds", func(t *testing.T) {
		q := &models.Quotation{
			TaxRate: d("15"),
			Items: []models.QuotationItem{
				{Quantity: d("3"), UnitPrice: d("33.33")},
				{Quantity: d("1"), UnitPrice: d("0.01")},
				{Quantity: d("7"), UnitPrice: d("149.99")},
			},
		}

		RecomputeQuotation(q)

		if !q.Total.Equal(q.Subtotal.Add(q.TaxAmount)) {
			t.Fatalf("total %s != subtotal %s + tax %s", q.Total, q.Subtotal, q.TaxAmount)
		}
		want := q.Subtotal.Mul(d("15")).Div(d("100")).Round(2)
		if !q.TaxAmount.Equal(want) {
			t.Fatalf("tax = %s, want %s", q.TaxAmount, want)
		}
	})
}

func TestRecomputeInvoice(t *testing.T) {
	inv := &models.Invoice{
		TaxRate: d("15"),
		Items: []models.InvoiceItem{
			{Quantity: d("1"), UnitPrice: d("500")},
			{Quantity: d("2"), UnitPrice: d("250")},
		},
	}

	RecomputeInvoice(inv)

	if !inv.Subtotal.Equal(d("1000")) {
		t.Fatalf("subtotal = %s, want 1000", inv.Subtotal)
	}
	if !inv.TaxAmount.Equal(d("150")) {
		t.Fatalf("tax = %s, want 150", inv.TaxAmount)
	}
	if !inv.Total.Equal(d("1150")) {
		t.Fatalf("total = %s, want 1150", inv.Total)
	}
}

func TestEffectiveInvoiceStatus(t *testing.T) {
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	tomorrow := now.AddDate(0, 0, 1)

	t.Run("partial payment", func(t *testing.T) {
		inv := &models.Invoice{Status: string(InvoiceSent), Total: d("100"), AmountPaid: d("40")}
		if got := EffectiveInvoiceStatus(inv, now); got != InvoicePartial {
			t.Fatalf("got %s, want partial", got)
		}
	})

	t.Run("overdue past due date", func(t *testing.T) {
		inv := &models.Invoice{Status: string(InvoiceSent), Total: d("100"), DueDate: &yesterday}
		if got := EffectiveInvoiceStatus(inv, now); got != InvoiceOverdue {
			t.Fatalf("got %s, want overdue", got)
		}
	})

	t.Run("not overdue on the due day", func(t *testing.T) {
		dueToday := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)
		inv := &models.Invoice{Status: string(InvoiceSent), Total: d("100"), DueDate: &dueToday}
		if got := EffectiveInvoiceStatus(inv, now); got != InvoiceSent {
			t.Fatalf("got %s, want sent", got)
		}
	})

	t.Run("partial wins over overdue", func(t *testing.T) {
		inv := &models.Invoice{Status: string(InvoiceSent), Total: d("100"), AmountPaid: d("40"), DueDate: &yesterday}
		if got := EffectiveInvoiceStatus(inv, now); got != InvoicePartial {
			t.Fatalf("got %s, want partial", got)
		}
	})

	t.Run("stored status wins otherwise", func(t *testing.T) {
		inv := &models.Invoice{Status: string(InvoicePaid), Total: d("100"), AmountPaid: d("100"), DueDate: &yesterday}
		if got := EffectiveInvoiceStatus(inv, now); got != InvoicePaid {
			t.Fatalf("got %s, want paid", got)
		}
		draft := &models.Invoice{Status: string(InvoiceDraft), DueDate: &tomorrow}
		if got := EffectiveInvoiceStatus(draft, now); got != InvoiceDraft {
			t.Fatalf("got %s, want draft", got)
		}
	})
}
