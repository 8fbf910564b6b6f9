package project

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"github.com/AtlasFacilities/service-desk-api/internal/audit"
	domain "github.com/AtlasFacilities/service-desk-api/internal/domain/project"
	"github.com/AtlasFacilities/service-desk-api/internal/domain/project/mocks"
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

func priced(title, amount string) models.WorkOrder {
	return models.WorkOrder{
		Title: title,
		Price: decimal.NewNullDecimal(mustDecimal(amount)),
	}
}

func mustDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// transactPassthrough wires the mock's Transact to run the callback
// against the same mock, standing in for a DB transaction.
func transactPassthrough(repo *mocks.MockRepository) {
	repo.EXPECT().
		Transact(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(domain.Repository) error) error {
			return fn(repo)
		})
}

func TestApproveProject(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects while any order is unpriced", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := mocks.NewMockRepository(ctrl)
		pub := &recordingPublisher{}
		uc := NewApproveProject(repo, pub, testDispatcher())

		transactPassthrough(repo)
		repo.EXPECT().
			GetForUpdate(gomock.Any(), uint(7), uint(1)).
			Return(&models.Project{ID: 7, Status: "pending"}, nil)
		repo.EXPECT().
			ListWorkOrders(gomock.Any(), uint(7)).
			Return([]models.WorkOrder{
				priced("AC maintenance", "100"),
				{Title: "Fire inspection"}, // no price yet
			}, nil)

		_, err := uc.Execute(ctx, 1, 10, 7)
		if !httperr.IsBusiness(err, "pending_prices") {
			t.Fatalf("expected pending_prices, got %v", err)
		}
		if len(pub.keys) != 0 {
			t.Fatalf("no event should fire on rejection, got %v", pub.keys)
		}
	})

	t.Run("rejects a non-pending project", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := mocks.NewMockRepository(ctrl)
		uc := NewApproveProject(repo, notify.NopPublisher{}, testDispatcher())

		transactPassthrough(repo)
		repo.EXPECT().
			GetForUpdate(gomock.Any(), uint(7), uint(1)).
			Return(&models.Project{ID: 7, Status: "active"}, nil)
		repo.EXPECT().
			ListWorkOrders(gomock.Any(), uint(7)).
			Return([]models.WorkOrder{priced("AC maintenance", "100")}, nil)

		_, err := uc.Execute(ctx, 1, 10, 7)
		if !httperr.IsBusiness(err, "not_pending") {
			t.Fatalf("expected not_pending, got %v", err)
		}
	})

	t.Run("activates, spawns contract and publishes", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := mocks.NewMockRepository(ctrl)
		pub := &recordingPublisher{}
		uc := NewApproveProject(repo, pub, testDispatcher())

		var spawned *models.Contract

		transactPassthrough(repo)
		repo.EXPECT().
			GetForUpdate(gomock.Any(), uint(7), uint(1)).
			Return(&models.Project{ID: 7, Status: "pending"}, nil)
		repo.EXPECT().
			ListWorkOrders(gomock.Any(), uint(7)).
			Return([]models.WorkOrder{
				priced("AC maintenance", "100"),
				priced("Fire inspection", "50"),
			}, nil)
		repo.EXPECT().
			Update(gomock.Any(), gomock.Any()).
			Return(nil)
		repo.EXPECT().
			CreateContract(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, c *models.Contract) error {
				spawned = c
				return nil
			})

		p, err := uc.Execute(ctx, 1, 10, 7)
		if err != nil {
			t.Fatal(err)
		}
		if p.Status != "active" || p.ApprovedAt == nil {
			t.Fatalf("unexpected project state %q", p.Status)
		}
		if spawned == nil || spawned.ProjectID != 7 {
			t.Fatalf("contract not spawned for project")
		}
		if !strings.HasPrefix(spawned.Number, "CT-") {
			t.Fatalf("contract number = %q", spawned.Number)
		}
		if len(pub.keys) != 1 || pub.keys[0] != notify.EventProjectApproved {
			t.Fatalf("events = %v", pub.keys)
		}
	})

	t.Run("unknown project reads as not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := mocks.NewMockRepository(ctrl)
		uc := NewApproveProject(repo, notify.NopPublisher{}, testDispatcher())

		transactPassthrough(repo)
		repo.EXPECT().
			GetForUpdate(gomock.Any(), uint(99), uint(1)).
			Return(nil, httperr.ErrNotFound("record_not_found"))

		_, err := uc.Execute(ctx, 1, 10, 99)
		if !httperr.IsBusiness(err, "project_not_found") {
			t.Fatalf("expected project_not_found, got %v", err)
		}
	})
}
