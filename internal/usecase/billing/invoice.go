package billing

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AtlasFacilities/service-desk-api/internal/audit"
	domain "github.com/AtlasFacilities/service-desk-api/internal/domain/billing"
	"github.com/AtlasFacilities/service-desk-api/internal/domain/workorder"
	"github.com/AtlasFacilities/service-desk-api/internal/httperr"
	"github.com/AtlasFacilities/service-desk-api/internal/infra/notify"
	"github.com/AtlasFacilities/service-desk-api/internal/models"
	"github.com/AtlasFacilities/service-desk-api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type InvoiceInput struct {
	BranchID  uint
	ProjectID *uint
	DueDate   *time.Time
	TaxRate   decimal.Decimal
	Items     []LineItemInput
}

type FromProjectInput struct {
	BranchID  uint
	ProjectID uint
	DueDate   *time.Time
	TaxRate   decimal.Decimal
}

// ======================================================
// USE CASE
// ======================================================

type InvoiceUseCase struct {
	repo   domain.Repository
	events notify.Publisher
	audit  *audit.Dispatcher
}

func NewInvoiceUseCase(
	repo domain.Repository,
	events notify.Publisher,
	audit *audit.Dispatcher,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		repo:   repo,
		events: events,
		audit:  audit,
	}
}

func buildInvoiceItems(in []LineItemInput) ([]models.InvoiceItem, error) {
	items := make([]models.InvoiceItem, 0, len(in))
	for _, it := range in {
		if it.Description == "" {
			return nil, httperr.ErrValidation("missing_item_description")
		}
		if !it.Quantity.IsPositive() {
			return nil, httperr.ErrValidation("invalid_item_quantity")
		}
		if it.UnitPrice.IsNegative() {
			return nil, httperr.ErrValidation("invalid_item_price")
		}
		items = append(items, models.InvoiceItem{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
	}
	return items, nil
}

func (uc *InvoiceUseCase) Create(
	ctx context.Context,
	contractorID uint,
	userID uint,
	in InvoiceInput,
) (*models.Invoice, error) {

	if in.TaxRate.IsNegative() {
		return nil, httperr.ErrValidation("invalid_tax_rate")
	}
	items, err := buildInvoiceItems(in.Items)
	if err != nil {
		return nil, err
	}

	inv := &models.Invoice{
		ContractorID: contractorID,
		BranchID:     in.BranchID,
		ProjectID:    in.ProjectID,
		Number:       fmt.Sprintf("INV-%s", uuid.NewString()[:8]),
		Status:       string(domain.InvoiceDraft),
		DueDate:      in.DueDate,
		TaxRate:      in.TaxRate,
		Items:        items,
	}
	domain.RecomputeInvoice(inv)

	if err := uc.repo.CreateInvoice(ctx, inv); err != nil {
		return nil, err
	}

	uc.auditAction(contractorID, userID, "invoice_created", inv.ID)
	return inv, nil
}

// CreateFromProject bills a project's completed, priced work orders.
// Recurring occurrences of the same template collapse into one line per
// base name and unit price; unpriced orders are awaiting pricing and
// never billed.
func (uc *InvoiceUseCase) CreateFromProject(
	ctx context.Context,
	contractorID uint,
	userID uint,
	in FromProjectInput,
) (*models.Invoice, error) {

	if in.TaxRate.IsNegative() {
		return nil, httperr.ErrValidation("invalid_tax_rate")
	}

	orders, err := uc.repo.ListCompletedWorkOrders(ctx, in.ProjectID)
	if err != nil {
		return nil, err
	}

	items := groupOrdersIntoLines(orders)
	if len(items) == 0 {
		return nil, httperr.ErrValidation("no_billable_work")
	}

	inv := &models.Invoice{
		ContractorID: contractorID,
		BranchID:     in.BranchID,
		ProjectID:    &in.ProjectID,
		Number:       fmt.Sprintf("INV-%s", uuid.NewString()[:8]),
		Status:       string(domain.InvoiceDraft),
		DueDate:      in.DueDate,
		TaxRate:      in.TaxRate,
		Items:        items,
	}
	domain.RecomputeInvoice(inv)

	if err := uc.repo.CreateInvoice(ctx, inv); err != nil {
		return nil, err
	}

	uc.auditAction(contractorID, userID, "invoice_created_from_project", inv.ID)
	return inv, nil
}

// groupOrdersIntoLines folds occurrences of one recurring template into
// lines keyed by base name. Each occurrence bills at its own price, so a
// group whose occurrences were repriced independently splits into one
// line per distinct price and the subtotal stays the sum of occurrence
// prices. A null price means awaiting pricing; such orders are not
// billable and are left out entirely.
func groupOrdersIntoLines(orders []models.WorkOrder) []models.InvoiceItem {
	type line struct {
		name  string
		price decimal.Decimal
		count int64
	}

	lines := make([]*line, 0, len(orders))
	find := func(name string, price decimal.Decimal) *line {
		for _, l := range lines {
			if l.name == name && l.price.Equal(price) {
				return l
			}
		}
		l := &line{name: name, price: price}
		lines = append(lines, l)
		return l
	}

	for _, wo := range orders {
		if !wo.Price.Valid {
			continue
		}
		base := workorder.BaseName(wo.Title)
		find(base, wo.Price.Decimal).count++
	}

	items := make([]models.InvoiceItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, models.InvoiceItem{
			GroupName:   l.name,
			Description: l.name,
			Quantity:    decimal.NewFromInt(l.count),
			UnitPrice:   l.price,
		})
	}
	return items
}

func (uc *InvoiceUseCase) Update(
	ctx context.Context,
	contractorID uint,
	userID uint,
	invoiceID uint,
	in InvoiceInput,
) (*models.Invoice, error) {

	items, err := buildInvoiceItems(in.Items)
	if err != nil {
		return nil, err
	}

	var updated *models.Invoice

	err = uc.repo.Transact(ctx, func(tx domain.Repository) error {
		inv, err := tx.GetInvoiceForUpdate(ctx, invoiceID, contractorID)
		if err != nil {
			return httperr.ErrNotFound("invoice_not_found")
		}

		if err := domain.CanEditInvoice(domain.InvoiceStatus(inv.Status)); err != nil {
			return err
		}

		inv.DueDate = in.DueDate
		inv.TaxRate = in.TaxRate

		// Recompute before the items are persisted so the stored line
		// amounts match the document totals.
		inv.Items = items
		domain.RecomputeInvoice(inv)

		if err := tx.ReplaceInvoiceItems(ctx, inv, items); err != nil {
			return err
		}

		if err := tx.UpdateInvoice(ctx, inv); err != nil {
			return err
		}

		updated = inv
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.auditAction(contractorID, userID, "invoice_updated", updated.ID)
	return updated, nil
}

func (uc *InvoiceUseCase) Delete(
	ctx context.Context,
	contractorID uint,
	userID uint,
	invoiceID uint,
) error {

	err := uc.repo.Transact(ctx, func(tx domain.Repository) error {
		inv, err := tx.GetInvoiceForUpdate(ctx, invoiceID, contractorID)
		if err != nil {
			return httperr.ErrNotFound("invoice_not_found")
		}

		if err := domain.CanEditInvoice(domain.InvoiceStatus(inv.Status)); err != nil {
			return err
		}

		return tx.DeleteInvoice(ctx, inv)
	})
	if err != nil {
		return err
	}

	uc.auditAction(contractorID, userID, "invoice_deleted", invoiceID)
	return nil
}

func (uc *InvoiceUseCase) Send(
	ctx context.Context,
	contractorID uint,
	userID uint,
	invoiceID uint,
) (*models.Invoice, error) {

	inv, err := uc.transition(ctx, contractorID, invoiceID, func(inv *models.Invoice) error {
		return domain.SendInvoice(inv, timezone.Now())
	})
	if err != nil {
		return nil, err
	}

	uc.publish(ctx, notify.EventInvoiceSent, inv)
	uc.auditAction(contractorID, userID, "invoice_sent", inv.ID)
	return inv, nil
}

func (uc *InvoiceUseCase) Cancel(
	ctx context.Context,
	contractorID uint,
	userID uint,
	invoiceID uint,
) (*models.Invoice, error) {

	inv, err := uc.transition(ctx, contractorID, invoiceID, func(inv *models.Invoice) error {
		return domain.CancelInvoice(inv, timezone.Now())
	})
	if err != nil {
		return nil, err
	}

	uc.auditAction(contractorID, userID, "invoice_cancelled", inv.ID)
	return inv, nil
}

func (uc *InvoiceUseCase) SubmitProof(
	ctx context.Context,
	contractorID uint,
	userID uint,
	invoiceID uint,
	proof domain.Proof,
) (*models.Invoice, error) {

	inv, err := uc.transition(ctx, contractorID, invoiceID, func(inv *models.Invoice) error {
		return domain.SubmitInvoiceProof(inv, proof, timezone.Now())
	})
	if err != nil {
		return nil, err
	}

	uc.publish(ctx, notify.EventProofSubmitted, inv)
	uc.auditAction(contractorID, userID, "invoice_proof_submitted", inv.ID)
	return inv, nil
}

func (uc *InvoiceUseCase) ConfirmPayment(
	ctx context.Context,
	contractorID uint,
	userID uint,
	invoiceID uint,
) (*models.Invoice, error) {

	inv, err := uc.transition(ctx, contractorID, invoiceID, func(inv *models.Invoice) error {
		return domain.ConfirmInvoicePayment(inv, timezone.Now())
	})
	if err != nil {
		return nil, err
	}

	uc.publish(ctx, notify.EventPaymentConfirmed, inv)
	uc.auditAction(contractorID, userID, "invoice_payment_confirmed", inv.ID)
	return inv, nil
}

func (uc *InvoiceUseCase) RejectProof(
	ctx context.Context,
	contractorID uint,
	userID uint,
	invoiceID uint,
	note string,
) (*models.Invoice, error) {

	inv, err := uc.transition(ctx, contractorID, invoiceID, func(inv *models.Invoice) error {
		return domain.RejectInvoiceProof(inv, note)
	})
	if err != nil {
		return nil, err
	}

	uc.publish(ctx, notify.EventProofRejected, inv)
	uc.auditAction(contractorID, userID, "invoice_proof_rejected", inv.ID)
	return inv, nil
}

func (uc *InvoiceUseCase) RecordPayment(
	ctx context.Context,
	contractorID uint,
	userID uint,
	invoiceID uint,
	amount decimal.Decimal,
) (*models.Invoice, error) {

	inv, err := uc.transition(ctx, contractorID, invoiceID, func(inv *models.Invoice) error {
		return domain.RecordPayment(inv, amount, timezone.Now())
	})
	if err != nil {
		return nil, err
	}

	if inv.Status == string(domain.InvoicePaid) {
		uc.publish(ctx, notify.EventPaymentConfirmed, inv)
	}
	uc.auditAction(contractorID, userID, "invoice_payment_recorded", inv.ID)
	return inv, nil
}

func (uc *InvoiceUseCase) transition(
	ctx context.Context,
	contractorID uint,
	invoiceID uint,
	action func(*models.Invoice) error,
) (*models.Invoice, error) {

	var updated *models.Invoice

	err := uc.repo.Transact(ctx, func(tx domain.Repository) error {
		inv, err := tx.GetInvoiceForUpdate(ctx, invoiceID, contractorID)
		if err != nil {
			return httperr.ErrNotFound("invoice_not_found")
		}

		if err := action(inv); err != nil {
			return err
		}

		if err := tx.UpdateInvoice(ctx, inv); err != nil {
			return err
		}

		updated = inv
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (uc *InvoiceUseCase) publish(ctx context.Context, key string, inv *models.Invoice) {
	if err := uc.events.Publish(ctx, key, map[string]any{
		"invoice_id": inv.ID,
		"number":     inv.Number,
		"status":     inv.Status,
	}); err != nil {
		log.Printf("publish %s failed: %v", key, err)
	}
}

func (uc *InvoiceUseCase) auditAction(contractorID, userID uint, action string, id uint) {
	uc.audit.Dispatch(audit.Event{
		ContractorID: contractorID,
		UserID:       &userID,
		Action:       action,
		Entity:       "invoice",
		EntityID:     &id,
	})
}
