package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/synctask-dev/synctask/internal/realtime"
	"github.com/synctask-dev/synctask/internal/store"
	"github.com/synctask-dev/synctask/internal/types"
	"github.com/synctask-dev/synctask/internal/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CreateTaskRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Deadline    string `json:"deadline" binding:"required"`
	AssigneeIDs []uint `json:"assignee_ids" binding:"required,min=1"`
}

type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Deadline    *string `json:"deadline"`
}

type UpdateTaskStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type UpdateAssigneesRequest struct {
	AssigneeIDs []uint `json:"assignee_ids" binding:"required"`
}

// ListTasks returns the board, newest first. An optional person query filters
// by assignee first name.
func (h *Handler) ListTasks(ctx *gin.Context) {
	var (
		tasks []store.TaskWithAssignees
		err   error
	)

	if person := ctx.Query("person"); person != "" {
		tasks, err = h.store.GetTasksByPerson(ctx.Request.Context(), person)
	} else {
		tasks, err = h.store.GetTasks(ctx.Request.Context())
	}

	if err != nil {
		log.Printf("Failed to fetch tasks: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tasks"})
		return
	}

	ctx.JSON(http.StatusOK, tasks)
}

// CreateTask opens a task in todo. Admin only; title, deadline and at least
// one assignee are required here because the store trusts its caller.
func (h *Handler) CreateTask(ctx *gin.Context) {
	var req CreateTaskRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	deadline, err := types.ParseDate(req.Deadline)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid deadline, expected YYYY-MM-DD"})
		return
	}

	task, err := h.store.CreateTask(ctx.Request.Context(), store.NewTask{
		Title:       req.Title,
		Description: req.Description,
		Status:      types.StatusTodo,
		Deadline:    &deadline,
		CreatedBy:   currentUser.ID,
	}, req.AssigneeIDs)

	if err != nil {
		log.Printf("Failed to create task: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}

	h.notifier.Publish(realtime.Event{Type: realtime.EventInsert, Table: realtime.TableTasks, New: task})

	ctx.JSON(http.StatusCreated, task)
}

// UpdateTask edits task fields. Admin only. Status edits through this path
// still have to name a valid status, but transitions are not stepped here;
// that rule belongs to the move endpoint.
func (h *Handler) UpdateTask(ctx *gin.Context) {
	taskID, err := utils.GetIDParam(ctx, "task_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req UpdateTaskRequest

	if err := ctx.BindJSON(&req); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.Status != nil && !types.ValidStatus(*req.Status) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	var deadline *datatypes.Date

	if req.Deadline != nil {
		parsed, err := types.ParseDate(*req.Deadline)

		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid deadline, expected YYYY-MM-DD"})
			return
		}

		deadline = &parsed
	}

	task, err := h.store.UpdateTask(ctx.Request.Context(), taskID, store.TaskUpdates{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Deadline:    deadline,
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			log.Printf("Failed to update task: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
		}
		return
	}

	h.notifier.Publish(realtime.Event{Type: realtime.EventUpdate, Table: realtime.TableTasks, New: task})

	ctx.JSON(http.StatusOK, task)
}

// UpdateTaskStatus moves a task one column. The state machine lives here, on
// the caller side: one step forward or back, never todo to done. The store
// mutator underneath accepts anything.
func (h *Handler) UpdateTaskStatus(ctx *gin.Context) {
	taskID, err := utils.GetIDParam(ctx, "task_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req UpdateTaskStatusRequest

	if err := ctx.BindJSON(&req); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if !types.ValidStatus(req.Status) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	current, err := h.store.GetTask(ctx.Request.Context(), taskID)

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			log.Printf("Failed to fetch task: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve task"})
		}
		return
	}

	if !types.LegalMove(current.Status, req.Status) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Tasks move one step at a time"})
		return
	}

	task, err := h.store.UpdateTaskStatus(ctx.Request.Context(), taskID, req.Status)

	if err != nil {
		log.Printf("Failed to update task status: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
		return
	}

	h.notifier.Publish(realtime.Event{Type: realtime.EventUpdate, Table: realtime.TableTasks, New: task, Old: current})

	ctx.JSON(http.StatusOK, task)
}

// UpdateTaskAssignees replaces the assignee set. Admin only.
func (h *Handler) UpdateTaskAssignees(ctx *gin.Context) {
	taskID, err := utils.GetIDParam(ctx, "task_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req UpdateAssigneesRequest

	if err := ctx.BindJSON(&req); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if err := h.store.UpdateTaskAssignees(ctx.Request.Context(), taskID, req.AssigneeIDs); err != nil {
		log.Printf("Failed to update assignees: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update assignees"})
		return
	}

	h.notifier.Publish(realtime.Event{Type: realtime.EventUpdate, Table: realtime.TableTasks})

	ctx.JSON(http.StatusOK, gin.H{"message": "Assignees updated successfully"})
}

// DeleteTask removes a task. Admin only.
func (h *Handler) DeleteTask(ctx *gin.Context) {
	taskID, err := utils.GetIDParam(ctx, "task_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.store.GetTask(ctx.Request.Context(), taskID)

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			log.Printf("Failed to fetch task: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve task"})
		}
		return
	}

	if err := h.store.DeleteTask(ctx.Request.Context(), taskID); err != nil {
		log.Printf("Failed to delete task: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete task"})
		return
	}

	h.notifier.Publish(realtime.Event{Type: realtime.EventDelete, Table: realtime.TableTasks, Old: task})

	ctx.Status(http.StatusNoContent)
}
