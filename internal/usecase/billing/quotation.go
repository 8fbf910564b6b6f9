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
	"github.com/AtlasFacilities/service-desk-api/internal/httperr"
	"github.com/AtlasFacilities/service-desk-api/internal/infra/notify"
	"github.com/AtlasFacilities/service-desk-api/internal/models"
	"github.com/AtlasFacilities/service-desk-api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type LineItemInput struct {
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
}

type QuotationInput struct {
	BranchID   uint
	ProjectID  *uint
	ValidUntil *time.Time
	TaxRate    decimal.Decimal
	Items      []LineItemInput
}

// ======================================================
// USE CASE
// ======================================================

type QuotationUseCase struct {
	repo   domain.Repository
	events notify.Publisher
	audit  *audit.Dispatcher
}

func NewQuotationUseCase(
	repo domain.Repository,
	events notify.Publisher,
	audit *audit.Dispatcher,
) *QuotationUseCase {
	return &QuotationUseCase{
		repo:   repo,
		events: events,
		audit:  audit,
	}
}

func buildQuotationItems(in []LineItemInput) ([]models.QuotationItem, error) {
	items := make([]models.QuotationItem, 0, len(in))
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
		items = append(items, models.QuotationItem{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
	}
	return items, nil
}

func (uc *QuotationUseCase) Create(
	ctx context.Context,
	contractorID uint,
	userID uint,
	in QuotationInput,
) (*models.Quotation, error) {

	if in.TaxRate.IsNegative() {
		return nil, httperr.ErrValidation("invalid_tax_rate")
	}
	items, err := buildQuotationItems(in.Items)
	if err != nil {
		return nil, err
	}

	q := &models.Quotation{
		ContractorID: contractorID,
		BranchID:     in.BranchID,
		ProjectID:    in.ProjectID,
		Number:       fmt.Sprintf("Q-%s", uuid.NewString()[:8]),
		Status:       string(domain.QuotationDraft),
		ValidUntil:   in.ValidUntil,
		TaxRate:      in.TaxRate,
		Items:        items,
	}
	domain.RecomputeQuotation(q)

	if err := uc.repo.CreateQuotation(ctx, q); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ContractorID: contractorID,
		UserID:       &userID,
		Action:       "quotation_created",
		Entity:       "quotation",
		EntityID:     &q.ID,
	})

	return q, nil
}

// Update rewrites a draft's line items, validity and tax rate, then
// recomputes totals. Sent documents are frozen.
func (uc *QuotationUseCase) Update(
	ctx context.Context,
	contractorID uint,
	userID uint,
	quotationID uint,
	in QuotationInput,
) (*models.Quotation, error) {

	items, err := buildQuotationItems(in.Items)
	if err != nil {
		return nil, err
	}

	var updated *models.Quotation

	err = uc.repo.Transact(ctx, func(tx domain.Repository) error {
		q, err := tx.GetQuotationForUpdate(ctx, quotationID, contractorID)
		if err != nil {
			return httperr.ErrNotFound("quotation_not_found")
		}

		if err := domain.CanEditQuotation(domain.QuotationStatus(q.Status)); err != nil {
			return err
		}

		q.ValidUntil = in.ValidUntil
		q.TaxRate = in.TaxRate

		// Recompute before the items are persisted so the stored line
		// amounts match the document totals.
		q.Items = items
		domain.RecomputeQuotation(q)

		if err := tx.ReplaceQuotationItems(ctx, q, items); err != nil {
			return err
		}

		if err := tx.UpdateQuotation(ctx, q); err != nil {
			return err
		}

		updated = q
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ContractorID: contractorID,
		UserID:       &userID,
		Action:       "quotation_updated",
		Entity:       "quotation",
		EntityID:     &updated.ID,
	})

	return updated, nil
}

func (uc *QuotationUseCase) Delete(
	ctx context.Context,
	contractorID uint,
	userID uint,
	quotationID uint,
) error {

	err := uc.repo.Transact(ctx, func(tx domain.Repository) error {
		q, err := tx.GetQuotationForUpdate(ctx, quotationID, contractorID)
		if err != nil {
			return httperr.ErrNotFound("quotation_not_found")
		}

		if err := domain.CanEditQuotation(domain.QuotationStatus(q.Status)); err != nil {
			return err
		}

		return tx.DeleteQuotation(ctx, q)
	})
	if err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		ContractorID: contractorID,
		UserID:       &userID,
		Action:       "quotation_deleted",
		Entity:       "quotation",
		EntityID:     &quotationID,
	})

	return nil
}

func (uc *QuotationUseCase) Send(
	ctx context.Context,
	contractorID uint,
	userID uint,
	quotationID uint,
) (*models.Quotation, error) {

	q, err := uc.transition(ctx, contractorID, quotationID, func(q *models.Quotation) error {
		return domain.SendQuotation(q, timezone.Now())
	})
	if err != nil {
		return nil, err
	}

	uc.publish(ctx, notify.EventQuotationSent, q)
	uc.auditAction(contractorID, userID, "quotation_sent", q.ID)
	return q, nil
}

func (uc *QuotationUseCase) Approve(
	ctx context.Context,
	contractorID uint,
	userID uint,
	quotationID uint,
) (*models.Quotation, error) {

	q, err := uc.transition(ctx, contractorID, quotationID, func(q *models.Quotation) error {
		return domain.ApproveQuotation(q, timezone.Now())
	})
	if err != nil {
		return nil, err
	}

	uc.publish(ctx, notify.EventQuotationDecided, q)
	uc.auditAction(contractorID, userID, "quotation_approved", q.ID)
	return q, nil
}

func (uc *QuotationUseCase) Reject(
	ctx context.Context,
	contractorID uint,
	userID uint,
	quotationID uint,
	note string,
) (*models.Quotation, error) {

	q, err := uc.transition(ctx, contractorID, quotationID, func(q *models.Quotation) error {
		return domain.RejectQuotation(q, note, timezone.Now())
	})
	if err != nil {
		return nil, err
	}

	uc.publish(ctx, notify.EventQuotationDecided, q)
	uc.auditAction(contractorID, userID, "quotation_rejected", q.ID)
	return q, nil
}

// transition runs a domain action against a row-locked quotation inside
// one transaction.
func (uc *QuotationUseCase) transition(
	ctx context.Context,
	contractorID uint,
	quotationID uint,
	action func(*models.Quotation) error,
) (*models.Quotation, error) {

	var updated *models.Quotation

	err := uc.repo.Transact(ctx, func(tx domain.Repository) error {
		q, err := tx.GetQuotationForUpdate(ctx, quotationID, contractorID)
		if err != nil {
			return httperr.ErrNotFound("quotation_not_found")
		}

		if err := action(q); err != nil {
			return err
		}

		if err := tx.UpdateQuotation(ctx, q); err != nil {
			return err
		}

		updated = q
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (uc *QuotationUseCase) publish(ctx context.Context, key string, q *models.Quotation) {
	if err := uc.events.Publish(ctx, key, map[string]any{
		"quotation_id": q.ID,
		"number":       q.Number,
		"status":       q.Status,
	}); err != nil {
		log.Printf("publish %s failed: %v", key, err)
	}
}

func (uc *QuotationUseCase) auditAction(contractorID, userID uint, action string, id uint) {
	uc.audit.Dispatch(audit.Event{
		ContractorID: contractorID,
		UserID:       &userID,
		Action:       action,
		Entity:       "quotation",
		EntityID:     &id,
	})
}
