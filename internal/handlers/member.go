package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/synctask-dev/synctask/internal/store"
	"github.com/synctask-dev/synctask/internal/utils"
)

type CreateMemberRequest struct {
	Name      string `json:"name" binding:"required"`
	FirstName string `json:"first_name"`
	Emoji     string `json:"emoji"`
}

type UpdateMemberRequest struct {
	Name      *string `json:"name"`
	FirstName *string `json:"first_name"`
	Emoji     *string `json:"emoji"`
	IsActive  *bool   `json:"is_active"`
}

// ListMembers serves the member directory, whichever backing is configured.
func (h *Handler) ListMembers(ctx *gin.Context) {
	members, err := h.store.Members().Members(ctx.Request.Context())

	if err != nil {
		log.Printf("Failed to fetch team members: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve team members"})
		return
	}

	ctx.JSON(http.StatusOK, members)
}

// CreateMember adds a stored-row team member. Registered only in table mode.
func (h *Handler) CreateMember(ctx *gin.Context) {
	var req CreateMemberRequest

	if err := ctx.BindJSON(&req); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	name := strings.TrimSpace(req.Name)
	firstName := strings.TrimSpace(req.FirstName)

	if firstName == "" {
		firstName = name
		if idx := strings.Index(name, " "); idx >= 0 {
			firstName = name[:idx]
		}
	}

	emoji := req.Emoji

	if emoji == "" {
		emoji = "👤"
	}

	member, err := h.store.CreateTeamMember(ctx.Request.Context(), name, firstName, emoji)

	if err != nil {
		log.Printf("Failed to create team member: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create team member"})
		return
	}

	ctx.JSON(http.StatusCreated, member)
}

func (h *Handler) UpdateMember(ctx *gin.Context) {
	memberID, err := utils.GetIDParam(ctx, "member_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req UpdateMemberRequest

	if err := ctx.BindJSON(&req); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	member, err := h.store.UpdateTeamMember(ctx.Request.Context(), memberID, store.TeamMemberUpdates{
		Name:      req.Name,
		FirstName: req.FirstName,
		Emoji:     req.Emoji,
		IsActive:  req.IsActive,
	})

	if err != nil {
		log.Printf("Failed to update team member: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update team member"})
		return
	}

	ctx.JSON(http.StatusOK, member)
}

func (h *Handler) DeleteMember(ctx *gin.Context) {
	memberID, err := utils.GetIDParam(ctx, "member_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.store.DeleteTeamMember(ctx.Request.Context(), memberID); err != nil {
		log.Printf("Failed to delete team member: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete team member"})
		return
	}

	ctx.Status(http.StatusNoContent)
}
