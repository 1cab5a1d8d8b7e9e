package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/synctask-dev/synctask/internal/models"
	"github.com/synctask-dev/synctask/internal/types"
)

func TestCreateLeaveDuplicateIsNoOp(t *testing.T) {
	st, database := newProfileStore(t)
	ctx := context.Background()

	alice := createProfile(t, database, "alice", "alice@synctask.com")

	date, err := types.ParseDate("2025-04-07")
	require.NoError(t, err)

	first, err := st.CreateLeave(ctx, alice.ID, date, alice.ID, types.LeaveFullDay)
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := st.CreateLeave(ctx, alice.ID, date, alice.ID, types.LeaveFullDay)
	assert.NoError(t, err)
	assert.Nil(t, second)

	var count int64
	require.NoError(t, database.Model(&models.Leave{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestDeleteLeavesForMemberOnDateIdempotent(t *testing.T) {
	st, database := newProfileStore(t)
	ctx := context.Background()

	alice := createProfile(t, database, "alice", "alice@synctask.com")

	date, err := types.ParseDate("2025-04-07")
	require.NoError(t, err)

	_, err = st.CreateLeave(ctx, alice.ID, date, alice.ID, types.LeaveFullDay)
	require.NoError(t, err)

	assert.NoError(t, st.DeleteLeavesForMemberOnDate(ctx, alice.ID, date))
	// Deleting the already-deleted row succeeds again.
	assert.NoError(t, st.DeleteLeavesForMemberOnDate(ctx, alice.ID, date))

	leaves, err := st.GetLeaves(ctx)
	require.NoError(t, err)
	assert.Empty(t, leaves)
}

func TestLeaveCanBeReAddedAfterDelete(t *testing.T) {
	st, database := newProfileStore(t)
	ctx := context.Background()

	alice := createProfile(t, database, "alice", "alice@synctask.com")

	date, err := types.ParseDate("2025-04-08")
	require.NoError(t, err)

	_, err = st.CreateLeave(ctx, alice.ID, date, alice.ID, types.LeaveFullDay)
	require.NoError(t, err)
	require.NoError(t, st.DeleteLeavesForMemberOnDate(ctx, alice.ID, date))

	leave, err := st.CreateLeave(ctx, alice.ID, date, alice.ID, types.LeaveHalfDayMorning)
	require.NoError(t, err)
	require.NotNil(t, leave)
	assert.Equal(t, types.LeaveHalfDayMorning, leave.LeaveType)
}

func TestGetLeavesForDate(t *testing.T) {
	st, database := newProfileStore(t)
	ctx := context.Background()

	alice := createProfile(t, database, "alice", "alice@synctask.com")
	bob := createProfile(t, database, "bob", "bob@synctask.com")

	monday, err := types.ParseDate("2025-04-07")
	require.NoError(t, err)
	tuesday, err := types.ParseDate("2025-04-08")
	require.NoError(t, err)

	_, err = st.CreateLeave(ctx, alice.ID, monday, alice.ID, types.LeaveFullDay)
	require.NoError(t, err)
	_, err = st.CreateLeave(ctx, bob.ID, tuesday, bob.ID, types.LeaveFullDay)
	require.NoError(t, err)

	leaves, err := st.GetLeavesForDate(ctx, monday)
	require.NoError(t, err)
	require.Len(t, leaves, 1)
	assert.Equal(t, alice.ID, leaves[0].TeamMemberID)
	assert.Equal(t, "2025-04-07", leaves[0].LeaveDate)
	assert.Equal(t, "alice", leaves[0].Member.Name)
}

func TestGetLeavesDropsUnresolvedMember(t *testing.T) {
	st, database := newProfileStore(t)
	ctx := context.Background()

	alice := createProfile(t, database, "alice", "alice@synctask.com")

	date, err := types.ParseDate("2025-04-07")
	require.NoError(t, err)

	_, err = st.CreateLeave(ctx, alice.ID, date, alice.ID, types.LeaveFullDay)
	require.NoError(t, err)

	// A leave whose member no longer resolves is dropped, not an error.
	orphan := models.Leave{TeamMemberID: 9999, LeaveDate: date, LeaveType: types.LeaveFullDay, CreatedBy: alice.ID}
	require.NoError(t, database.Create(&orphan).Error)

	leaves, err := st.GetLeaves(ctx)
	require.NoError(t, err)
	require.Len(t, leaves, 1)
	assert.Equal(t, alice.ID, leaves[0].TeamMemberID)
}
