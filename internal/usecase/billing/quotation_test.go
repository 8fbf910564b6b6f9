package billing

import (
	"context"
	"testing"

	"go.uber.org/mock/gomock"

	domain "github.com/AtlasFacilities/service-desk-api/internal/domain/billing"
	"github.com/AtlasFacilities/service-desk-api/internal/domain/billing/mocks"
	"github.com/AtlasFacilities/service-desk-api/internal/httperr"
	"github.com/AtlasFacilities/service-desk-api/internal/infra/notify"
	"github.com/AtlasFacilities/service-desk-api/internal/models"
)

func TestQuotationUseCaseUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("edit persists recomputed line amounts", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := mocks.NewMockRepository(ctrl)
		uc := NewQuotationUseCase(repo, notify.NopPublisher{}, testDispatcher())

		repo.EXPECT().
			Transact(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, fn func(domain.Repository) error) error {
				return fn(repo)
			})
		repo.EXPECT().
			GetQuotationForUpdate(gomock.Any(), uint(7), uint(1)).
			Return(&models.Quotation{ID: 7, Status: string(domain.QuotationDraft)}, nil)

		var persisted []models.QuotationItem
		repo.EXPECT().
			ReplaceQuotationItems(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, q *models.Quotation, items []models.QuotationItem) error {
				persisted = items
				return nil
			})
		repo.EXPECT().
			UpdateQuotation(gomock.Any(), gomock.Any()).
			Return(nil)

		q, err := uc.Update(ctx, 1, 10, 7, QuotationInput{
			TaxRate: d("10"),
			Items: []LineItemInput{
				{Description: "Quarterly pest control", Quantity: d("4"), UnitPrice: d("150")},
			},
		})
		if err != nil {
			t.Fatal(err)
		}

		if len(persisted) != 1 {
			t.Fatalf("persisted items = %d", len(persisted))
		}
		if !persisted[0].Amount.Equal(d("600")) {
			t.Fatalf("stored amount = %s, want quantity x unit price", persisted[0].Amount)
		}
		if !q.Subtotal.Equal(d("600")) || !q.Total.Equal(d("660")) {
			t.Fatalf("totals = %s / %s", q.Subtotal, q.Total)
		}
	})

	t.Run("sent quotation cannot be rewritten", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := mocks.NewMockRepository(ctrl)
		uc := NewQuotationUseCase(repo, notify.NopPublisher{}, testDispatcher())

		repo.EXPECT().
			Transact(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, fn func(domain.Repository) error) error {
				return fn(repo)
			})
		repo.EXPECT().
			GetQuotationForUpdate(gomock.Any(), uint(7), uint(1)).
			Return(&models.Quotation{ID: 7, Status: string(domain.QuotationSent)}, nil)

		_, err := uc.Update(ctx, 1, 10, 7, QuotationInput{
			Items: []LineItemInput{
				{Description: "Deep clean", Quantity: d("1"), UnitPrice: d("500")},
			},
		})
		if !httperr.IsBusiness(err, "not_draft") {
			t.Fatalf("expected not_draft, got %v", err)
		}
	})
}
