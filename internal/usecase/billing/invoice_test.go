package billing

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"github.com/AtlasFacilities/service-desk-api/internal/audit"
	domain "github.com/AtlasFacilities/service-desk-api/internal/domain/billing"
	"github.com/AtlasFacilities/service-desk-api/internal/domain/billing/mocks"
	"github.com/AtlasFacilities/service-desk-api/internal/httperr"
	"github.com/AtlasFacilities/service-desk-api/internal/infra/notify"
	"github.com/AtlasFacilities/service-desk-api/internal/models"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func testDispatcher() *audit.Dispatcher {
	return audit.NewDispatcher(audit.New(nil))
}

func completedOrder(title, price string) models.WorkOrder {
	wo := models.WorkOrder{
		Title: title,
		Stage: "completed",
	}
	if price != "" {
		wo.Price = decimal.NewNullDecimal(d(price))
	}
	return wo
}

func TestCreateInvoiceFromProject(t *testing.T) {
	ctx := context.Background()

	t.Run("groups recurring occurrences into one line", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := mocks.NewMockRepository(ctrl)
		uc := NewInvoiceUseCase(repo, notify.NopPublisher{}, testDispatcher())

		repo.EXPECT().
			ListCompletedWorkOrders(gomock.Any(), uint(3)).
			Return([]models.WorkOrder{
				completedOrder("AC maintenance (Month1)", "200"),
				completedOrder("AC maintenance (Month2)", "200"),
				completedOrder("AC maintenance (Month3)", "200"),
				completedOrder("Pest control", "150"),
			}, nil)

		var created *models.Invoice
		repo.EXPECT().
			CreateInvoice(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, inv *models.Invoice) error {
				created = inv
				return nil
			})

		inv, err := uc.CreateFromProject(ctx, 1, 10, FromProjectInput{
			BranchID:  2,
			ProjectID: 3,
			TaxRate:   d("15"),
		})
		if err != nil {
			t.Fatal(err)
		}
		if created == nil {
			t.Fatal("invoice not persisted")
		}

		if len(inv.Items) != 2 {
			t.Fatalf("items = %d, want 2 grouped lines", len(inv.Items))
		}

		ac := inv.Items[0]
		if ac.GroupName != "AC maintenance" {
			t.Fatalf("group = %q", ac.GroupName)
		}
		if !ac.Quantity.Equal(d("3")) || !ac.UnitPrice.Equal(d("200")) {
			t.Fatalf("line = qty %s x %s", ac.Quantity, ac.UnitPrice)
		}
		if !ac.Amount.Equal(d("600")) {
			t.Fatalf("amount = %s", ac.Amount)
		}

		// 600 + 150 = 750, 15% tax = 112.50
		if !inv.Subtotal.Equal(d("750")) || !inv.Total.Equal(d("862.50")) {
			t.Fatalf("totals = %s / %s", inv.Subtotal, inv.Total)
		}
		if !strings.HasPrefix(inv.Number, "INV-") {
			t.Fatalf("number = %q", inv.Number)
		}
		if inv.Status != string(domain.InvoiceDraft) {
			t.Fatalf("status = %q", inv.Status)
		}
	})

	t.Run("unpriced occurrence is not billed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := mocks.NewMockRepository(ctrl)
		uc := NewInvoiceUseCase(repo, notify.NopPublisher{}, testDispatcher())

		repo.EXPECT().
			ListCompletedWorkOrders(gomock.Any(), uint(3)).
			Return([]models.WorkOrder{
				completedOrder("AC maintenance (Month1)", "100"),
				completedOrder("AC maintenance (Month2)", ""),
			}, nil)
		repo.EXPECT().
			CreateInvoice(gomock.Any(), gomock.Any()).
			Return(nil)

		inv, err := uc.CreateFromProject(ctx, 1, 10, FromProjectInput{
			BranchID:  2,
			ProjectID: 3,
		})
		if err != nil {
			t.Fatal(err)
		}

		if len(inv.Items) != 1 {
			t.Fatalf("items = %d, want 1", len(inv.Items))
		}
		if !inv.Items[0].Quantity.Equal(d("1")) {
			t.Fatalf("quantity = %s, want 1 billed occurrence", inv.Items[0].Quantity)
		}
		if !inv.Subtotal.Equal(d("100")) {
			t.Fatalf("subtotal = %s, want 100", inv.Subtotal)
		}
	})

	t.Run("repriced occurrences bill at their own price", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := mocks.NewMockRepository(ctrl)
		uc := NewInvoiceUseCase(repo, notify.NopPublisher{}, testDispatcher())

		repo.EXPECT().
			ListCompletedWorkOrders(gomock.Any(), uint(3)).
			Return([]models.WorkOrder{
				completedOrder("AC maintenance (Month1)", "100"),
				completedOrder("AC maintenance (Month2)", "120"),
				completedOrder("AC maintenance (Month3)", "130"),
			}, nil)
		repo.EXPECT().
			CreateInvoice(gomock.Any(), gomock.Any()).
			Return(nil)

		inv, err := uc.CreateFromProject(ctx, 1, 10, FromProjectInput{
			BranchID:  2,
			ProjectID: 3,
		})
		if err != nil {
			t.Fatal(err)
		}

		if len(inv.Items) != 3 {
			t.Fatalf("items = %d, want one line per distinct price", len(inv.Items))
		}
		for _, it := range inv.Items {
			if it.GroupName != "AC maintenance" {
				t.Fatalf("group = %q", it.GroupName)
			}
			if !it.Quantity.Equal(d("1")) {
				t.Fatalf("quantity = %s", it.Quantity)
			}
		}
		if !inv.Subtotal.Equal(d("350")) {
			t.Fatalf("subtotal = %s, want sum of occurrence prices 350", inv.Subtotal)
		}
	})

	t.Run("all occurrences unpriced means nothing to bill", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := mocks.NewMockRepository(ctrl)
		uc := NewInvoiceUseCase(repo, notify.NopPublisher{}, testDispatcher())

		repo.EXPECT().
			ListCompletedWorkOrders(gomock.Any(), uint(3)).
			Return([]models.WorkOrder{
				completedOrder("AC maintenance (Month1)", ""),
				completedOrder("AC maintenance (Month2)", ""),
			}, nil)

		_, err := uc.CreateFromProject(ctx, 1, 10, FromProjectInput{ProjectID: 3})
		if !httperr.IsBusiness(err, "no_billable_work") {
			t.Fatalf("expected no_billable_work, got %v", err)
		}
	})

	t.Run("nothing completed means nothing to bill", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := mocks.NewMockRepository(ctrl)
		uc := NewInvoiceUseCase(repo, notify.NopPublisher{}, testDispatcher())

		repo.EXPECT().
			ListCompletedWorkOrders(gomock.Any(), uint(3)).
			Return(nil, nil)

		_, err := uc.CreateFromProject(ctx, 1, 10, FromProjectInput{ProjectID: 3})
		if !httperr.IsBusiness(err, "no_billable_work") {
			t.Fatalf("expected no_billable_work, got %v", err)
		}
	})
}

func TestInvoiceUseCaseEditGuards(t *testing.T) {
	ctx := context.Background()

	t.Run("sent invoice cannot be rewritten", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := mocks.NewMockRepository(ctrl)
		uc := NewInvoiceUseCase(repo, notify.NopPublisher{}, testDispatcher())

		repo.EXPECT().
			Transact(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, fn func(domain.Repository) error) error {
				return fn(repo)
			})
		repo.EXPECT().
			GetInvoiceForUpdate(gomock.Any(), uint(4), uint(1)).
			Return(&models.Invoice{ID: 4, Status: string(domain.InvoiceSent)}, nil)

		_, err := uc.Update(ctx, 1, 10, 4, InvoiceInput{
			TaxRate: d("15"),
			Items: []LineItemInput{
				{Description: "Deep clean", Quantity: d("1"), UnitPrice: d("500")},
			},
		})
		if !httperr.IsBusiness(err, "not_draft") {
			t.Fatalf("expected not_draft, got %v", err)
		}
	})

	t.Run("edit persists recomputed line amounts", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := mocks.NewMockRepository(ctrl)
		uc := NewInvoiceUseCase(repo, notify.NopPublisher{}, testDispatcher())

		repo.EXPECT().
			Transact(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, fn func(domain.Repository) error) error {
				return fn(repo)
			})
		repo.EXPECT().
			GetInvoiceForUpdate(gomock.Any(), uint(4), uint(1)).
			Return(&models.Invoice{ID: 4, Status: string(domain.InvoiceDraft)}, nil)

		var persisted []models.InvoiceItem
		repo.EXPECT().
			ReplaceInvoiceItems(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, inv *models.Invoice, items []models.InvoiceItem) error {
				persisted = items
				return nil
			})
		repo.EXPECT().
			UpdateInvoice(gomock.Any(), gomock.Any()).
			Return(nil)

		inv, err := uc.Update(ctx, 1, 10, 4, InvoiceInput{
			TaxRate: d("15"),
			Items: []LineItemInput{
				{Description: "Deep clean", Quantity: d("2"), UnitPrice: d("500")},
			},
		})
		if err != nil {
			t.Fatal(err)
		}

		if len(persisted) != 1 {
			t.Fatalf("persisted items = %d", len(persisted))
		}
		if !persisted[0].Amount.Equal(d("1000")) {
			t.Fatalf("stored amount = %s, want quantity x unit price", persisted[0].Amount)
		}
		if !inv.Subtotal.Equal(d("1000")) || !inv.Total.Equal(d("1150")) {
			t.Fatalf("totals = %s / %s", inv.Subtotal, inv.Total)
		}
	})

	t.Run("zero quantity line rejected", func(t *testing.T) {
		uc := NewInvoiceUseCase(nil, notify.NopPublisher{}, testDispatcher())

		_, err := uc.Create(ctx, 1, 10, InvoiceInput{
			Items: []LineItemInput{
				{Description: "Deep clean", Quantity: d("0"), UnitPrice: d("500")},
			},
		})
		if !httperr.IsBusiness(err, "invalid_item_quantity") {
			t.Fatalf("expected invalid_item_quantity, got %v", err)
		}
	})
}
