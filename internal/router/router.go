package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/synctask-dev/synctask/internal/handlers"
	"github.com/synctask-dev/synctask/internal/middleware"
	"github.com/synctask-dev/synctask/internal/store"
	"github.com/synctask-dev/synctask/internal/types"
)

func NewRouter(h *handlers.Handler, board *handlers.Board, st *store.Store) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	authRequired := middleware.AuthMiddleware(st)
	adminOnly := middleware.RequireAdmin()

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)
		api.GET("/ws/:table", authRequired, h.WebSocket)

		auth := api.Group("/auth")
		{
			auth.POST("/login", h.Login)
			auth.POST("/logout", h.Logout)
			auth.GET("/me", authRequired, h.Me)
			auth.PATCH("/password", authRequired, h.UpdatePassword)
		}

		api.PATCH("/profile", authRequired, h.UpdateProfile)

		profiles := api.Group("/profiles", authRequired, adminOnly)
		{
			profiles.GET("", h.ListProfiles)
			profiles.PATCH("/:user_id/role", h.UpdateRole)
		}

		members := api.Group("/members", authRequired)
		{
			members.GET("", h.ListMembers)

			// Stored-row member management only exists in table mode; with
			// profile-derived members these rows would never be read.
			if h.TableMode() {
				members.POST("", adminOnly, h.CreateMember)
				members.PATCH("/:member_id", adminOnly, h.UpdateMember)
				members.DELETE("/:member_id", adminOnly, h.DeleteMember)
			}
		}

		tasks := api.Group("/tasks", authRequired)
		{
			tasks.GET("", h.ListTasks)
			tasks.POST("", adminOnly, h.CreateTask)
			tasks.PATCH("/:task_id", adminOnly, h.UpdateTask)
			tasks.PATCH("/:task_id/status", h.UpdateTaskStatus)
			tasks.PUT("/:task_id/assignees", adminOnly, h.UpdateTaskAssignees)
			tasks.DELETE("/:task_id", adminOnly, h.DeleteTask)
		}

		leaves := api.Group("/leaves", authRequired)
		{
			leaves.GET("", h.ListLeaves)
			leaves.PUT("/day", h.SaveLeaveDay)
			leaves.PUT("/self", h.SaveSelfLeave)
			leaves.DELETE("/:leave_id", adminOnly, h.DeleteLeave)
		}

		api.GET("/board", authRequired, board.Get)
	}

	return r
}
