package checklist

import (
	"time"

	"github.com/AtlasFacilities/service-desk-api/internal/httperr"
	"github.com/AtlasFacilities/service-desk-api/internal/models"
)

type Status string

const (
	Draft      Status = "draft"
	InProgress Status = "in_progress"
	Completed  Status = "completed"
)

func CanStart(current Status) error {
	if current != Draft {
		return httperr.ErrStateConflict("not_draft")
	}
	return nil
}

// CanTick allows item updates only on a running checklist. Completed
// checklists are read-only.
func CanTick(current Status) error {
	switch current {
	case InProgress:
		return nil
	case Completed:
		return httperr.ErrStateConflict("checklist_completed")
	default:
		return httperr.ErrStateConflict("not_started")
	}
}

func CanComplete(current Status) error {
	if current != InProgress {
		return httperr.ErrStateConflict("not_in_progress")
	}
	return nil
}

func Start(cl *models.Checklist, now time.Time) error {
	if err := CanStart(Status(cl.Status)); err != nil {
		return err
	}
	cl.Status = string(InProgress)
	cl.StartedAt = &now
	return nil
}

func Complete(cl *models.Checklist, now time.Time) error {
	if err := CanComplete(Status(cl.Status)); err != nil {
		return err
	}
	cl.Status = string(Completed)
	cl.CompletedAt = &now
	return nil
}

// TickItem toggles one item by its position in the run.
func TickItem(cl *models.Checklist, itemID uint, done bool, now time.Time) error {
	if err := CanTick(Status(cl.Status)); err != nil {
		return err
	}
	for i := range cl.Items {
		if cl.Items[i].ID != itemID {
			continue
		}
		cl.Items[i].Done = done
		if done {
			cl.Items[i].DoneAt = &now
		} else {
			cl.Items[i].DoneAt = nil
		}
		return nil
	}
	return httperr.ErrNotFound("item_not_found")
}
