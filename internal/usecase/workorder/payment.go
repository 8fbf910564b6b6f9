package workorder

import (
	"context"
	"log"

	"github.com/AtlasFacilities/service-desk-api/internal/audit"
	domain "github.com/AtlasFacilities/service-desk-api/internal/domain/workorder"
	"github.com/AtlasFacilities/service-desk-api/internal/httperr"
	"github.com/AtlasFacilities/service-desk-api/internal/infra/notify"
	"github.com/AtlasFacilities/service-desk-api/internal/models"
	"github.com/AtlasFacilities/service-desk-api/internal/timezone"
)

// ======================================================
// SUBMIT PAYMENT PROOF
// ======================================================

type SubmitPaymentProof struct {
	repo   domain.Repository
	events notify.Publisher
	audit  *audit.Dispatcher
}

func NewSubmitPaymentProof(
	repo domain.Repository,
	events notify.Publisher,
	audit *audit.Dispatcher,
) *SubmitPaymentProof {
	return &SubmitPaymentProof{
		repo:   repo,
		events: events,
		audit:  audit,
	}
}

func (uc *SubmitPaymentProof) Execute(
	ctx context.Context,
	contractorID uint,
	userID uint,
	workOrderID uint,
	proof domain.Proof,
) (*models.WorkOrder, error) {

	var updated *models.WorkOrder

	err := uc.repo.Transact(ctx, func(tx domain.Repository) error {
		wo, err := tx.GetForUpdate(ctx, workOrderID, contractorID)
		if err != nil {
			return httperr.ErrNotFound("work_order_not_found")
		}

		if err := domain.SubmitProof(wo, proof, timezone.Now()); err != nil {
			return err
		}

		if err := tx.Update(ctx, wo); err != nil {
			return err
		}

		updated = wo
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := uc.events.Publish(ctx, notify.EventProofSubmitted, map[string]any{
		"work_order_id": updated.ID,
		"proof_type":    updated.ProofType,
	}); err != nil {
		log.Printf("publish %s failed: %v", notify.EventProofSubmitted, err)
	}

	uc.audit.Dispatch(audit.Event{
		ContractorID: contractorID,
		UserID:       &userID,
		Action:       "payment_proof_submitted",
		Entity:       "work_order",
		EntityID:     &updated.ID,
	})

	return updated, nil
}

// ======================================================
// CONFIRM PAYMENT
// ======================================================

type ConfirmPayment struct {
	repo   domain.Repository
	events notify.Publisher
	audit  *audit.Dispatcher
}

func NewConfirmPayment(
	repo domain.Repository,
	events notify.Publisher,
	audit *audit.Dispatcher,
) *ConfirmPayment {
	return &ConfirmPayment{
		repo:   repo,
		events: events,
		audit:  audit,
	}
}

// Execute confirms a submitted proof. Confirmation is idempotent: a retry
// against an already paid order succeeds without writing, publishing or
// crediting anything twice.
func (uc *ConfirmPayment) Execute(
	ctx context.Context,
	contractorID uint,
	userID uint,
	workOrderID uint,
) (*models.WorkOrder, error) {

	var (
		updated *models.WorkOrder
		changed bool
	)

	err := uc.repo.Transact(ctx, func(tx domain.Repository) error {
		wo, err := tx.GetForUpdate(ctx, workOrderID, contractorID)
		if err != nil {
			return httperr.ErrNotFound("work_order_not_found")
		}

		changed, err = domain.ConfirmPayment(wo, timezone.Now())
		if err != nil {
			return err
		}
		if !changed {
			updated = wo
			return nil
		}

		if err := tx.Update(ctx, wo); err != nil {
			return err
		}

		updated = wo
		return nil
	})
	if err != nil {
		return nil, err
	}

	if changed {
		if err := uc.events.Publish(ctx, notify.EventPaymentConfirmed, map[string]any{
			"work_order_id": updated.ID,
		}); err != nil {
			log.Printf("publish %s failed: %v", notify.EventPaymentConfirmed, err)
		}

		uc.audit.Dispatch(audit.Event{
			ContractorID: contractorID,
			UserID:       &userID,
			Action:       "payment_confirmed",
			Entity:       "work_order",
			EntityID:     &updated.ID,
		})
	}

	return updated, nil
}

// ======================================================
// REJECT PAYMENT PROOF
// ======================================================

type RejectPaymentProof struct {
	repo   domain.Repository
	events notify.Publisher
	audit  *audit.Dispatcher
}

func NewRejectPaymentProof(
	repo domain.Repository,
	events notify.Publisher,
	audit *audit.Dispatcher,
) *RejectPaymentProof {
	return &RejectPaymentProof{
		repo:   repo,
		events: events,
		audit:  audit,
	}
}

func (uc *RejectPaymentProof) Execute(
	ctx context.Context,
	contractorID uint,
	userID uint,
	workOrderID uint,
	note string,
) (*models.WorkOrder, error) {

	var updated *models.WorkOrder

	err := uc.repo.Transact(ctx, func(tx domain.Repository) error {
		wo, err := tx.GetForUpdate(ctx, workOrderID, contractorID)
		if err != nil {
			return httperr.ErrNotFound("work_order_not_found")
		}

		if err := domain.RejectProof(wo, note); err != nil {
			return err
		}

		if err := tx.Update(ctx, wo); err != nil {
			return err
		}

		updated = wo
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := uc.events.Publish(ctx, notify.EventProofRejected, map[string]any{
		"work_order_id": updated.ID,
		"note":          note,
	}); err != nil {
		log.Printf("publish %s failed: %v", notify.EventProofRejected, err)
	}

	uc.audit.Dispatch(audit.Event{
		ContractorID: contractorID,
		UserID:       &userID,
		Action:       "payment_proof_rejected",
		Entity:       "work_order",
		EntityID:     &updated.ID,
	})

	return updated, nil
}
