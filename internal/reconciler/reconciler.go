// Package reconciler turns a desired "who is on leave for date D" set into
// the minimal create/delete calls against the leave store.
package reconciler

import (
	"context"
	"log"

	"github.com/synctask-dev/synctask/internal/models"
	"github.com/synctask-dev/synctask/internal/types"
	"gorm.io/datatypes"
)

// LeaveMutator is the slice of the store the reconciler needs.
type LeaveMutator interface {
	CreateLeave(ctx context.Context, memberID uint, date datatypes.Date, createdBy uint, leaveType string) (*models.Leave, error)
	DeleteLeavesForMemberOnDate(ctx context.Context, memberID uint, date datatypes.Date) error
}

type Reconciler struct {
	leaves LeaveMutator
}

func New(leaves LeaveMutator) *Reconciler {
	return &Reconciler{leaves: leaves}
}

// Diff computes the minimal change set: members to add are selected but not
// existing, members to remove are existing but not selected. Members in both
// sets are untouched.
func Diff(existing, selected []uint) (toAdd, toRemove []uint) {
	existingSet := make(map[uint]struct{}, len(existing))
	selectedSet := make(map[uint]struct{}, len(selected))

	for _, id := range existing {
		existingSet[id] = struct{}{}
	}
	for _, id := range selected {
		selectedSet[id] = struct{}{}
	}

	for _, id := range selected {
		if _, ok := existingSet[id]; !ok {
			toAdd = append(toAdd, id)
		}
	}
	for _, id := range existing {
		if _, ok := selectedSet[id]; !ok {
			toRemove = append(toRemove, id)
		}
	}

	return toAdd, toRemove
}

// FilterSelf narrows a change set to the acting user's own membership. Other
// ids are silently dropped from both sides, even when the desired set names
// them.
func FilterSelf(actor uint, toAdd, toRemove []uint) (ownAdd, ownRemove []uint) {
	for _, id := range toAdd {
		if id == actor {
			ownAdd = append(ownAdd, id)
		}
	}
	for _, id := range toRemove {
		if id == actor {
			ownRemove = append(ownRemove, id)
		}
	}

	return ownAdd, ownRemove
}

// Apply reconciles the leave set for one date. In team-wide mode the actor
// may toggle anyone; otherwise the diff is filtered to the actor's own id.
// Mutations are best-effort: a failed call is logged and the rest proceed,
// the next realtime reload converges the view.
func (r *Reconciler) Apply(ctx context.Context, date datatypes.Date, existing, selected []uint, actor uint, teamWide bool) error {
	toAdd, toRemove := Diff(existing, selected)

	if !teamWide {
		toAdd, toRemove = FilterSelf(actor, toAdd, toRemove)
	}

	var firstErr error

	for _, memberID := range toAdd {
		if _, err := r.leaves.CreateLeave(ctx, memberID, date, actor, types.LeaveFullDay); err != nil {
			log.Printf("Error creating leave for member %d: %v", memberID, err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	for _, memberID := range toRemove {
		if err := r.leaves.DeleteLeavesForMemberOnDate(ctx, memberID, date); err != nil {
			log.Printf("Error deleting leave for member %d: %v", memberID, err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	return firstErr
}

// Replace sets the acting user's typed leave for a date: delete whatever is
// there, then insert the new record unless the chosen type is the "none"
// sentinel. Two calls, not one update; the table has no single-row-update
// semantics for "remove or change type".
func (r *Reconciler) Replace(ctx context.Context, memberID uint, date datatypes.Date, leaveType string, actor uint) error {
	if err := r.leaves.DeleteLeavesForMemberOnDate(ctx, memberID, date); err != nil {
		return err
	}

	if leaveType == types.LeaveNone {
		return nil
	}

	_, err := r.leaves.CreateLeave(ctx, memberID, date, actor, leaveType)

	return err
}
