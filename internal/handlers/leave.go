package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/synctask-dev/synctask/internal/realtime"
	"github.com/synctask-dev/synctask/internal/store"
	"github.com/synctask-dev/synctask/internal/types"
	"github.com/synctask-dev/synctask/internal/utils"
)

type SaveLeaveDayRequest struct {
	Date      string `json:"date" binding:"required"`
	MemberIDs []uint `json:"member_ids" binding:"required"`
}

type SaveSelfLeaveRequest struct {
	Date      string `json:"date" binding:"required"`
	LeaveType string `json:"leave_type" binding:"required"`
}

// ListLeaves returns leave records with their members resolved, optionally
// narrowed to one date.
func (h *Handler) ListLeaves(ctx *gin.Context) {
	var (
		leaves []store.LeaveWithMember
		err    error
	)

	if raw := ctx.Query("date"); raw != "" {
		date, parseErr := types.ParseDate(raw)

		if parseErr != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
			return
		}

		leaves, err = h.store.GetLeavesForDate(ctx.Request.Context(), date)
	} else {
		leaves, err = h.store.GetLeaves(ctx.Request.Context())
	}

	if err != nil {
		log.Printf("Failed to fetch leaves: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve leaves"})
		return
	}

	ctx.JSON(http.StatusOK, leaves)
}

// SaveLeaveDay reconciles the on-leave set for one date against the desired
// member list. Admins edit anyone; a regular member's edit is silently
// narrowed to their own membership.
func (h *Handler) SaveLeaveDay(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req SaveLeaveDayRequest

	if err := ctx.BindJSON(&req); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	date, err := types.ParseDate(req.Date)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
		return
	}

	existing, err := h.store.GetLeavesForDate(ctx.Request.Context(), date)

	if err != nil {
		log.Printf("Failed to fetch leaves: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve leaves"})
		return
	}

	existingIDs := make([]uint, 0, len(existing))

	for _, leave := range existing {
		existingIDs = append(existingIDs, leave.TeamMemberID)
	}

	err = h.reconciler.Apply(ctx.Request.Context(), date, existingIDs, req.MemberIDs, currentUser.ID, currentUser.IsAdmin())

	if err != nil {
		log.Printf("Failed to reconcile leaves: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save leaves"})
		return
	}

	h.notifier.Publish(realtime.Event{Type: realtime.EventUpdate, Table: realtime.TableLeaves})

	ctx.JSON(http.StatusOK, gin.H{"message": "Leaves saved successfully"})
}

// SaveSelfLeave sets the acting user's typed leave for a date. "none" clears
// it.
func (h *Handler) SaveSelfLeave(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req SaveSelfLeaveRequest

	if err := ctx.BindJSON(&req); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.LeaveType != types.LeaveNone && !types.ValidLeaveType(req.LeaveType) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid leave type"})
		return
	}

	date, err := types.ParseDate(req.Date)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
		return
	}

	// Member id equals profile id in the derived model, so the actor toggles
	// the row keyed by their own id.
	err = h.reconciler.Replace(ctx.Request.Context(), currentUser.ID, date, req.LeaveType, currentUser.ID)

	if err != nil {
		log.Printf("Failed to save leave: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save leave"})
		return
	}

	h.notifier.Publish(realtime.Event{Type: realtime.EventUpdate, Table: realtime.TableLeaves})

	ctx.JSON(http.StatusOK, gin.H{"message": "Leave saved successfully"})
}

// DeleteLeave removes one leave record by id. Admin only.
func (h *Handler) DeleteLeave(ctx *gin.Context) {
	leaveID, err := utils.GetIDParam(ctx, "leave_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.store.DeleteLeave(ctx.Request.Context(), leaveID); err != nil {
		log.Printf("Failed to delete leave: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete leave"})
		return
	}

	h.notifier.Publish(realtime.Event{Type: realtime.EventDelete, Table: realtime.TableLeaves})

	ctx.Status(http.StatusNoContent)
}
