package workorder

import (
	"context"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/AtlasFacilities/service-desk-api/internal/audit"
	domain "github.com/AtlasFacilities/service-desk-api/internal/domain/workorder"
	"github.com/AtlasFacilities/service-desk-api/internal/domain/workorder/mocks"
	"github.com/AtlasFacilities/service-desk-api/internal/httperr"
	"github.com/AtlasFacilities/service-desk-api/internal/infra/notify"
	"github.com/AtlasFacilities/service-desk-api/internal/models"
)

type recordingPublisher struct {
	keys []string
}

func (p *recordingPublisher) Publish(ctx context.Context, routingKey string, payload any) error {
	p.keys = append(p.keys, routingKey)
	return nil
}

func testDispatcher() *audit.Dispatcher {
	return audit.NewDispatcher(audit.New(nil))
}

func transactPassthrough(repo *mocks.MockRepository) {
	repo.EXPECT().
		Transact(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(domain.Repository) error) error {
			return fn(repo)
		})
}

func TestConfirmPaymentUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("confirms pending verification", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := mocks.NewMockRepository(ctrl)
		pub := &recordingPublisher{}
		uc := NewConfirmPayment(repo, pub, testDispatcher())

		transactPassthrough(repo)
		repo.EXPECT().
			GetForUpdate(gomock.Any(), uint(5), uint(1)).
			Return(&models.WorkOrder{
				ID:            5,
				Stage:         string(domain.StageCompleted),
				PaymentStatus: string(domain.PaymentPendingVerification),
			}, nil)
		repo.EXPECT().
			Update(gomock.Any(), gomock.Any()).
			Return(nil)

		wo, err := uc.Execute(ctx, 1, 10, 5)
		if err != nil {
			t.Fatal(err)
		}
		if wo.PaymentStatus != string(domain.PaymentPaid) || wo.PaidAt == nil {
			t.Fatalf("unexpected payment state %q", wo.PaymentStatus)
		}
		if len(pub.keys) != 1 || pub.keys[0] != notify.EventPaymentConfirmed {
			t.Fatalf("events = %v", pub.keys)
		}
	})

	t.Run("retry on paid order is a no-op", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := mocks.NewMockRepository(ctrl)
		pub := &recordingPublisher{}
		uc := NewConfirmPayment(repo, pub, testDispatcher())

		transactPassthrough(repo)
		// No Update expectation: an already paid order must not be written.
		repo.EXPECT().
			GetForUpdate(gomock.Any(), uint(5), uint(1)).
			Return(&models.WorkOrder{
				ID:            5,
				Stage:         string(domain.StageCompleted),
				PaymentStatus: string(domain.PaymentPaid),
			}, nil)

		wo, err := uc.Execute(ctx, 1, 10, 5)
		if err != nil {
			t.Fatal(err)
		}
		if wo.PaymentStatus != string(domain.PaymentPaid) {
			t.Fatalf("payment state mutated on retry: %q", wo.PaymentStatus)
		}
		if len(pub.keys) != 0 {
			t.Fatalf("retry must not re-publish, got %v", pub.keys)
		}
	})

	t.Run("rejects without submitted proof", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := mocks.NewMockRepository(ctrl)
		uc := NewConfirmPayment(repo, notify.NopPublisher{}, testDispatcher())

		transactPassthrough(repo)
		repo.EXPECT().
			GetForUpdate(gomock.Any(), uint(5), uint(1)).
			Return(&models.WorkOrder{
				ID:            5,
				Stage:         string(domain.StageCompleted),
				PaymentStatus: string(domain.PaymentUnpaid),
			}, nil)

		_, err := uc.Execute(ctx, 1, 10, 5)
		if !httperr.IsBusiness(err, "no_proof_submitted") {
			t.Fatalf("expected no_proof_submitted, got %v", err)
		}
	})
}

func TestSubmitPaymentProofUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("stores proof and flips to pending verification", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := mocks.NewMockRepository(ctrl)
		pub := &recordingPublisher{}
		uc := NewSubmitPaymentProof(repo, pub, testDispatcher())

		transactPassthrough(repo)
		repo.EXPECT().
			GetForUpdate(gomock.Any(), uint(5), uint(1)).
			Return(&models.WorkOrder{
				ID:            5,
				Stage:         string(domain.StageCompleted),
				PaymentStatus: string(domain.PaymentUnpaid),
			}, nil)
		repo.EXPECT().
			Update(gomock.Any(), gomock.Any()).
			Return(nil)

		wo, err := uc.Execute(ctx, 1, 10, 5, domain.Proof{
			URL:      "payments/5/receipt.pdf",
			Type:     "file",
			FileName: "receipt.pdf",
		})
		if err != nil {
			t.Fatal(err)
		}
		if wo.PaymentStatus != string(domain.PaymentPendingVerification) {
			t.Fatalf("payment status = %q", wo.PaymentStatus)
		}
		if len(pub.keys) != 1 || pub.keys[0] != notify.EventProofSubmitted {
			t.Fatalf("events = %v", pub.keys)
		}
	})

	t.Run("invalid proof rejected before any read", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := mocks.NewMockRepository(ctrl)
		uc := NewSubmitPaymentProof(repo, notify.NopPublisher{}, testDispatcher())

		transactPassthrough(repo)
		repo.EXPECT().
			GetForUpdate(gomock.Any(), uint(5), uint(1)).
			Return(&models.WorkOrder{
				ID:            5,
				Stage:         string(domain.StageCompleted),
				PaymentStatus: string(domain.PaymentUnpaid),
			}, nil)

		_, err := uc.Execute(ctx, 1, 10, 5, domain.Proof{Type: "file"})
		if !httperr.IsBusiness(err, "missing_proof_url") {
			t.Fatalf("expected missing_proof_url, got %v", err)
		}
	})
}
