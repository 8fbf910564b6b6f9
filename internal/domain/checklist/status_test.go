package checklist

import (
	"testing"
	"time"

	"github.com/AtlasFacilities/service-desk-api/internal/httperr"
	"github.com/AtlasFacilities/service-desk-api/internal/models"
)

func run(items ...string) *models.Checklist {
	cl := &models.Checklist{Status: string(Draft)}
	for i, label := range items {
		cl.Items = append(cl.Items, models.ChecklistItem{
			ID:       uint(i + 1),
			Position: i + 1,
			Label:    label,
		})
	}
	return cl
}

func TestChecklistLifecycle(t *testing.T) {
	now := time.Now()
	cl := run("extinguishers", "exit signage")

	t.Run("tick before start rejected", func(t *testing.T) {
		err := TickItem(cl, 1, true, now)
		if !httperr.IsBusiness(err, "not_started") {
			t.Fatalf("expected not_started, got %v", err)
		}
	})

	t.Run("start", func(t *testing.T) {
		if err := Start(cl, now); err != nil {
			t.Fatal(err)
		}
		if cl.Status != string(InProgress) || cl.StartedAt == nil {
			t.Fatalf("unexpected state %q", cl.Status)
		}
	})

	t.Run("double start rejected", func(t *testing.T) {
		if err := Start(cl, now); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("tick and untick", func(t *testing.T) {
		if err := TickItem(cl, 2, true, now); err != nil {
			t.Fatal(err)
		}
		if !cl.Items[1].Done || cl.Items[1].DoneAt == nil {
			t.Fatal("item not ticked")
		}
		if err := TickItem(cl, 2, false, now); err != nil {
			t.Fatal(err)
		}
		if cl.Items[1].Done || cl.Items[1].DoneAt != nil {
			t.Fatal("item not unticked")
		}
	})

	t.Run("unknown item", func(t *testing.T) {
		err := TickItem(cl, 99, true, now)
		if !httperr.IsBusiness(err, "item_not_found") {
			t.Fatalf("expected item_not_found, got %v", err)
		}
	})

	t.Run("complete", func(t *testing.T) {
		if err := Complete(cl, now); err != nil {
			t.Fatal(err)
		}
		if cl.Status != string(Completed) || cl.CompletedAt == nil {
			t.Fatalf("unexpected state %q", cl.Status)
		}
	})

	t.Run("completed run is read-only", func(t *testing.T) {
		err := TickItem(cl, 1, true, now)
		if !httperr.IsBusiness(err, "checklist_completed") {
			t.Fatalf("expected checklist_completed, got %v", err)
		}
		if err := Complete(cl, now); err == nil {
			t.Fatal("expected error on double complete")
		}
	})
}
