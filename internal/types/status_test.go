package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/synctask-dev/synctask/internal/types"
)

func TestNextStatus(t *testing.T) {
	assert.Equal(t, types.StatusWorking, types.NextStatus(types.StatusTodo))
	assert.Equal(t, types.StatusDone, types.NextStatus(types.StatusWorking))
	assert.Equal(t, "", types.NextStatus(types.StatusDone))

	// A task never jumps from todo straight to done.
	assert.NotEqual(t, types.StatusDone, types.NextStatus(types.StatusTodo))
}

func TestPreviousStatus(t *testing.T) {
	assert.Equal(t, types.StatusWorking, types.PreviousStatus(types.StatusDone))
	assert.Equal(t, types.StatusTodo, types.PreviousStatus(types.StatusWorking))
	assert.Equal(t, "", types.PreviousStatus(types.StatusTodo))
}

func TestLegalMove(t *testing.T) {
	assert.True(t, types.LegalMove(types.StatusTodo, types.StatusWorking))
	assert.True(t, types.LegalMove(types.StatusWorking, types.StatusDone))
	assert.True(t, types.LegalMove(types.StatusWorking, types.StatusTodo))
	assert.True(t, types.LegalMove(types.StatusDone, types.StatusWorking))

	assert.False(t, types.LegalMove(types.StatusTodo, types.StatusDone))
	assert.False(t, types.LegalMove(types.StatusDone, types.StatusTodo))
	assert.False(t, types.LegalMove(types.StatusTodo, types.StatusTodo))
	assert.False(t, types.LegalMove(types.StatusWorking, ""))
}

func TestParseDate(t *testing.T) {
	date, err := types.ParseDate("2025-03-01")
	assert.NoError(t, err)
	assert.Equal(t, "2025-03-01", types.FormatDate(date))

	_, err = types.ParseDate("01/03/2025")
	assert.Error(t, err)
}
