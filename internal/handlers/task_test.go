package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/synctask-dev/synctask/internal/realtime"
	"github.com/synctask-dev/synctask/internal/store"
	"github.com/synctask-dev/synctask/internal/types"
)

func TestCreateTaskStartsInTodo(t *testing.T) {
	h, database, notifier := newTestHandler(t)

	admin := createProfile(t, database, "System Admin", "admin@synctask.com", types.RoleAdmin)
	alice := createProfile(t, database, "Alice Fernando", "alice@synctask.com", types.RoleMember)

	events, cancel := notifier.Subscribe(realtime.TableTasks)
	defer cancel()

	ctx, recorder := testContext(t, asUser(admin), http.MethodPost, "/api/tasks", gin.H{
		"title":        "Ship the release notes",
		"description":  "Cover the calendar changes",
		"deadline":     "2025-05-01",
		"assignee_ids": []uint{alice.ID},
	})

	h.CreateTask(ctx)

	require.Equal(t, http.StatusCreated, recorder.Code)

	var task store.TaskWithAssignees
	decodeBody(t, recorder, &task)

	assert.Equal(t, "Ship the release notes", task.Title)
	assert.Equal(t, types.StatusTodo, task.Status)
	require.NotNil(t, task.Deadline)
	assert.Equal(t, "2025-05-01", *task.Deadline)
	require.Len(t, task.Assignees, 1)
	assert.Equal(t, alice.ID, task.Assignees[0].ID)

	select {
	case event := <-events:
		assert.Equal(t, realtime.EventInsert, event.Type)
	default:
		t.Fatal("expected a task insert event")
	}
}

func TestCreateTaskRejectsBadDeadline(t *testing.T) {
	h, database, _ := newTestHandler(t)

	admin := createProfile(t, database, "System Admin", "admin@synctask.com", types.RoleAdmin)

	ctx, recorder := testContext(t, asUser(admin), http.MethodPost, "/api/tasks", gin.H{
		"title":        "Ship the release notes",
		"deadline":     "01/05/2025",
		"assignee_ids": []uint{1},
	})

	h.CreateTask(ctx)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestCreateTaskRequiresAssignees(t *testing.T) {
	h, database, _ := newTestHandler(t)

	admin := createProfile(t, database, "System Admin", "admin@synctask.com", types.RoleAdmin)

	ctx, recorder := testContext(t, asUser(admin), http.MethodPost, "/api/tasks", gin.H{
		"title":        "Ship the release notes",
		"deadline":     "2025-05-01",
		"assignee_ids": []uint{},
	})

	h.CreateTask(ctx)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func createBoardTask(t *testing.T, h *Handler, createdBy, assignee uint) uint {
	t.Helper()

	task, err := h.store.CreateTask(testRequestContext(), store.NewTask{
		Title:     "Review the quarterly plan",
		Status:    types.StatusTodo,
		CreatedBy: createdBy,
	}, []uint{assignee})
	require.NoError(t, err)

	return task.ID
}

func TestUpdateTaskStatusOneStepForward(t *testing.T) {
	h, database, _ := newTestHandler(t)

	admin := createProfile(t, database, "System Admin", "admin@synctask.com", types.RoleAdmin)
	alice := createProfile(t, database, "Alice Fernando", "alice@synctask.com", types.RoleMember)

	taskID := createBoardTask(t, h, admin.ID, alice.ID)

	ctx, recorder := testContext(t, asUser(alice), http.MethodPatch, "/api/tasks/1/status", gin.H{
		"status": types.StatusWorking,
	}, gin.Param{Key: "task_id", Value: idString(taskID)})

	h.UpdateTaskStatus(ctx)

	require.Equal(t, http.StatusOK, recorder.Code)

	var task store.TaskWithAssignees
	decodeBody(t, recorder, &task)
	assert.Equal(t, types.StatusWorking, task.Status)
}

func TestUpdateTaskStatusRejectsSkippingAColumn(t *testing.T) {
	h, database, _ := newTestHandler(t)

	admin := createProfile(t, database, "System Admin", "admin@synctask.com", types.RoleAdmin)
	alice := createProfile(t, database, "Alice Fernando", "alice@synctask.com", types.RoleMember)

	taskID := createBoardTask(t, h, admin.ID, alice.ID)

	ctx, recorder := testContext(t, asUser(alice), http.MethodPatch, "/api/tasks/1/status", gin.H{
		"status": types.StatusDone,
	}, gin.Param{Key: "task_id", Value: idString(taskID)})

	h.UpdateTaskStatus(ctx)

	require.Equal(t, http.StatusBadRequest, recorder.Code)

	var body map[string]string
	decodeBody(t, recorder, &body)
	assert.Equal(t, "Tasks move one step at a time", body["error"])
}

func TestUpdateTaskStatusUnknownTask(t *testing.T) {
	h, database, _ := newTestHandler(t)

	alice := createProfile(t, database, "Alice Fernando", "alice@synctask.com", types.RoleMember)

	ctx, recorder := testContext(t, asUser(alice), http.MethodPatch, "/api/tasks/9999/status", gin.H{
		"status": types.StatusWorking,
	}, gin.Param{Key: "task_id", Value: "9999"})

	h.UpdateTaskStatus(ctx)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestDeleteTaskBroadcastsOldRow(t *testing.T) {
	h, database, notifier := newTestHandler(t)

	admin := createProfile(t, database, "System Admin", "admin@synctask.com", types.RoleAdmin)
	alice := createProfile(t, database, "Alice Fernando", "alice@synctask.com", types.RoleMember)

	taskID := createBoardTask(t, h, admin.ID, alice.ID)

	events, cancel := notifier.Subscribe(realtime.TableTasks)
	defer cancel()

	ctx, recorder := testContext(t, asUser(admin), http.MethodDelete, "/api/tasks/1", nil,
		gin.Param{Key: "task_id", Value: idString(taskID)})

	h.DeleteTask(ctx)
	// Flush the status to the recorder the way gin's engine does after the
	// handler chain; a bodyless Status() alone never reaches the recorder.
	ctx.Writer.WriteHeaderNow()

	require.Equal(t, http.StatusNoContent, recorder.Code)

	tasks, err := h.store.GetTasks(testRequestContext())
	require.NoError(t, err)
	assert.Empty(t, tasks)

	select {
	case event := <-events:
		assert.Equal(t, realtime.EventDelete, event.Type)
		assert.NotNil(t, event.Old)
	default:
		t.Fatal("expected a task delete event")
	}
}

func TestUpdateTaskUnknownTaskIs404(t *testing.T) {
	h, database, _ := newTestHandler(t)

	admin := createProfile(t, database, "System Admin", "admin@synctask.com", types.RoleAdmin)

	title := "Renamed"
	ctx, recorder := testContext(t, asUser(admin), http.MethodPatch, "/api/tasks/9999", gin.H{
		"title": title,
	}, gin.Param{Key: "task_id", Value: "9999"})

	h.UpdateTask(ctx)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
