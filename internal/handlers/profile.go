package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/synctask-dev/synctask/internal/models"
	"github.com/synctask-dev/synctask/internal/types"
	"github.com/synctask-dev/synctask/internal/utils"
)

type ProfileResponse struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Emoji     string    `json:"emoji"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type UpdateProfileRequest struct {
	FullName *string `json:"full_name"`
	Emoji    *string `json:"emoji"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

func profileResponse(profile models.Profile) ProfileResponse {
	return ProfileResponse{
		ID:        profile.ID,
		Email:     profile.Email,
		FullName:  profile.FullName,
		Emoji:     profile.Emoji,
		Role:      profile.Role,
		CreatedAt: profile.CreatedAt,
		UpdatedAt: profile.UpdatedAt,
	}
}

// UpdateProfile lets a user change their own display name and emoji.
func (h *Handler) UpdateProfile(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req UpdateProfileRequest

	if err := ctx.BindJSON(&req); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.FullName != nil {
		trimmed := strings.TrimSpace(*req.FullName)

		if trimmed == "" {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Name cannot be empty"})
			return
		}

		req.FullName = &trimmed
	}

	if req.FullName == nil && req.Emoji == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No valid fields to update"})
		return
	}

	profile, err := h.store.UpdateProfile(ctx.Request.Context(), currentUser.ID, req.FullName, req.Emoji)

	if err != nil {
		log.Printf("Failed to update profile: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"user": profileResponse(profile)})
}

// ListProfiles returns every registered user, oldest first. Admin only.
func (h *Handler) ListProfiles(ctx *gin.Context) {
	profiles, err := h.store.GetAllProfiles(ctx.Request.Context())

	if err != nil {
		log.Printf("Failed to fetch profiles: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve profiles"})
		return
	}

	response := make([]ProfileResponse, 0, len(profiles))

	for _, profile := range profiles {
		response = append(response, profileResponse(profile))
	}

	ctx.JSON(http.StatusOK, response)
}

// UpdateRole promotes or demotes a user. Admin only.
func (h *Handler) UpdateRole(ctx *gin.Context) {
	userID, err := utils.GetIDParam(ctx, "user_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req UpdateRoleRequest

	if err := ctx.BindJSON(&req); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if !types.ValidRole(req.Role) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
		return
	}

	profile, err := h.store.UpdateUserRole(ctx.Request.Context(), userID, req.Role)

	if err != nil {
		log.Printf("Failed to update role: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update role"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"user": profileResponse(profile)})
}
