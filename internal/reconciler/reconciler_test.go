package reconciler_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/synctask-dev/synctask/internal/models"
	"github.com/synctask-dev/synctask/internal/reconciler"
	"github.com/synctask-dev/synctask/internal/types"
	"gorm.io/datatypes"
)

type mutatorCall struct {
	op        string
	memberID  uint
	leaveType string
	createdBy uint
}

type fakeMutator struct {
	calls     []mutatorCall
	createErr map[uint]error
	deleteErr map[uint]error
}

func (f *fakeMutator) CreateLeave(_ context.Context, memberID uint, _ datatypes.Date, createdBy uint, leaveType string) (*models.Leave, error) {
	f.calls = append(f.calls, mutatorCall{op: "create", memberID: memberID, leaveType: leaveType, createdBy: createdBy})
	if err := f.createErr[memberID]; err != nil {
		return nil, err
	}
	return &models.Leave{TeamMemberID: memberID, LeaveType: leaveType, CreatedBy: createdBy}, nil
}

func (f *fakeMutator) DeleteLeavesForMemberOnDate(_ context.Context, memberID uint, _ datatypes.Date) error {
	f.calls = append(f.calls, mutatorCall{op: "delete", memberID: memberID})
	return f.deleteErr[memberID]
}

func (f *fakeMutator) ops() []string {
	ops := make([]string, 0, len(f.calls))
	for _, call := range f.calls {
		ops = append(ops, fmt.Sprintf("%s:%d", call.op, call.memberID))
	}
	return ops
}

func mustDate(t *testing.T, value string) datatypes.Date {
	t.Helper()

	date, err := types.ParseDate(value)
	require.NoError(t, err)

	return date
}

func TestDiffMinimalChangeSet(t *testing.T) {
	toAdd, toRemove := reconciler.Diff([]uint{1, 2}, []uint{2, 3})

	assert.Equal(t, []uint{3}, toAdd)
	assert.Equal(t, []uint{1}, toRemove)
}

func TestDiffUnchangedSelectionIsEmpty(t *testing.T) {
	toAdd, toRemove := reconciler.Diff([]uint{1, 2}, []uint{2, 1})

	assert.Empty(t, toAdd)
	assert.Empty(t, toRemove)
}

func TestFilterSelfDropsOtherMembers(t *testing.T) {
	ownAdd, ownRemove := reconciler.FilterSelf(2, []uint{1, 2}, []uint{2, 3})

	assert.Equal(t, []uint{2}, ownAdd)
	assert.Equal(t, []uint{2}, ownRemove)
}

func TestApplyTeamWideTouchesOnlyTheDiff(t *testing.T) {
	mutator := &fakeMutator{}
	rec := reconciler.New(mutator)
	date := mustDate(t, "2025-04-07")

	err := rec.Apply(context.Background(), date, []uint{1, 2}, []uint{2, 3}, 9, true)
	require.NoError(t, err)

	// Member 2 is in both sets and never touched.
	assert.Equal(t, []string{"create:3", "delete:1"}, mutator.ops())
	assert.Equal(t, types.LeaveFullDay, mutator.calls[0].leaveType)
	assert.Equal(t, uint(9), mutator.calls[0].createdBy)
}

func TestApplySelfServiceOnlyTouchesActor(t *testing.T) {
	mutator := &fakeMutator{}
	rec := reconciler.New(mutator)
	date := mustDate(t, "2025-04-07")

	// Member 1 asks to clear everyone; only their own leave goes away.
	err := rec.Apply(context.Background(), date, []uint{1, 2}, nil, 1, false)
	require.NoError(t, err)

	assert.Equal(t, []string{"delete:1"}, mutator.ops())
}

func TestApplyContinuesPastFailuresAndReportsFirst(t *testing.T) {
	boom := errors.New("connection reset")
	mutator := &fakeMutator{createErr: map[uint]error{3: boom}}
	rec := reconciler.New(mutator)
	date := mustDate(t, "2025-04-07")

	err := rec.Apply(context.Background(), date, []uint{1}, []uint{3, 4}, 9, true)

	assert.ErrorIs(t, err, boom)
	// The failed create does not stop the remaining mutations.
	assert.Equal(t, []string{"create:3", "create:4", "delete:1"}, mutator.ops())
}

func TestReplaceDeletesThenInserts(t *testing.T) {
	mutator := &fakeMutator{}
	rec := reconciler.New(mutator)
	date := mustDate(t, "2025-04-07")

	err := rec.Replace(context.Background(), 5, date, types.LeaveHalfDayMorning, 5)
	require.NoError(t, err)

	assert.Equal(t, []string{"delete:5", "create:5"}, mutator.ops())
	assert.Equal(t, types.LeaveHalfDayMorning, mutator.calls[1].leaveType)
}

func TestReplaceNoneOnlyDeletes(t *testing.T) {
	mutator := &fakeMutator{}
	rec := reconciler.New(mutator)
	date := mustDate(t, "2025-04-07")

	err := rec.Replace(context.Background(), 5, date, types.LeaveNone, 5)
	require.NoError(t, err)

	assert.Equal(t, []string{"delete:5"}, mutator.ops())
}

func TestReplaceStopsWhenDeleteFails(t *testing.T) {
	boom := errors.New("connection reset")
	mutator := &fakeMutator{deleteErr: map[uint]error{5: boom}}
	rec := reconciler.New(mutator)
	date := mustDate(t, "2025-04-07")

	err := rec.Replace(context.Background(), 5, date, types.LeaveFullDay, 5)

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"delete:5"}, mutator.ops())
}
