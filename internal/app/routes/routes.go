package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tejasnv/internhub/internal/app/controllers"
	"github.com/tejasnv/internhub/internal/app/models"
	"github.com/tejasnv/internhub/internal/app/models/dto"
	"github.com/tejasnv/internhub/internal/db"
	"github.com/tejasnv/internhub/internal/middleware"
	"github.com/tejasnv/internhub/internal/pkg/ws"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	ctrl *controllers.Controllers,
	authMiddleware *middleware.AuthMiddleware,
	wsHandler *ws.Handler,
	database *db.PostgresDB,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", ctrl.Auth.Register)
		auth.POST("/login", ctrl.Auth.Login)
		auth.POST("/refresh", ctrl.Auth.RefreshToken)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/auth/logout", ctrl.Auth.Logout)
		authenticated.GET("/auth/profile", ctrl.Auth.GetProfile)
		authenticated.PUT("/auth/profile", ctrl.Auth.UpdateProfile)
		authenticated.POST("/auth/profile/photo", ctrl.Auth.UploadProfilePhoto)

		// Institution routes; everyone can read, only the directorate mutates
		institutions := authenticated.Group("/institutions")
		{
			institutions.GET("", ctrl.Institution.GetAll)
			institutions.GET("/:id", ctrl.Institution.GetByID)

			institutionsDirectorate := institutions.Group("")
			institutionsDirectorate.Use(authMiddleware.RolesRequired(models.RoleDirectorate))
			{
				institutionsDirectorate.POST("", ctrl.Institution.Create)
				institutionsDirectorate.PUT("/:id", ctrl.Institution.Update)
				institutionsDirectorate.DELETE("/:id", ctrl.Institution.Delete)
			}
		}

		// Student routes
		students := authenticated.Group("/students")
		{
			students.GET("", authMiddleware.RolesRequired(models.RoleFaculty, models.RolePrincipal, models.RoleDirectorate), ctrl.Student.List)
			students.GET("/me", authMiddleware.RolesRequired(models.RoleStudent), ctrl.Student.GetOwn)
			students.GET("/:id", ctrl.Student.GetByID)
			students.PUT("/:id", ctrl.Student.Update)
			students.GET("/:id/mentors", ctrl.Mentor.ListByStudent)
			students.POST("/import", authMiddleware.RolesRequired(models.RolePrincipal, models.RoleDirectorate), ctrl.Import.Upload)
		}

		authenticated.GET("/faculty", authMiddleware.RolesRequired(models.RoleFaculty, models.RolePrincipal, models.RoleDirectorate), ctrl.Student.ListFaculty)

		// Internship application routes
		applications := authenticated.Group("/applications")
		{
			applications.POST("", authMiddleware.RolesRequired(models.RoleStudent), ctrl.Application.Create)
			applications.GET("", ctrl.Application.List)
			applications.GET("/:id", ctrl.Application.Get)
			applications.PUT("/:id", authMiddleware.RolesRequired(models.RoleStudent), ctrl.Application.Update)
			applications.POST("/:id/decision", authMiddleware.RolesRequired(models.RolePrincipal, models.RoleDirectorate), ctrl.Application.Decide)
			applications.POST("/:id/phase", authMiddleware.RolesRequired(models.RoleFaculty, models.RolePrincipal, models.RoleDirectorate), ctrl.Application.ChangePhase)
			applications.POST("/:id/documents", ctrl.Application.UploadDocument)
			applications.GET("/:id/documents", ctrl.Application.ListDocuments)
			applications.GET("/:id/reports", ctrl.Report.ListByApplication)
			applications.GET("/:id/reports/status", ctrl.Report.CycleStatus)
			applications.GET("/:id/visits", ctrl.Visit.ListByApplication)
			applications.GET("/:id/visits/status", ctrl.Visit.VisitStatus)
		}

		// Mentor assignment routes
		mentors := authenticated.Group("/mentors")
		{
			mentors.POST("", authMiddleware.RolesRequired(models.RolePrincipal, models.RoleDirectorate), ctrl.Mentor.Assign)
			mentors.DELETE("/:id", authMiddleware.RolesRequired(models.RolePrincipal, models.RoleDirectorate), ctrl.Mentor.Unassign)
			mentors.GET("/mentees", authMiddleware.RolesRequired(models.RoleFaculty), ctrl.Mentor.ListMentees)
		}

		// Monthly report routes
		reports := authenticated.Group("/reports")
		{
			reports.POST("", authMiddleware.RolesRequired(models.RoleStudent), ctrl.Report.Submit)
			reports.POST("/:id/review", authMiddleware.RolesRequired(models.RoleFaculty), ctrl.Report.Review)
			reports.POST("/:id/attachments", authMiddleware.RolesRequired(models.RoleStudent), ctrl.Report.UploadAttachment)
		}

		// Visit log routes
		visits := authenticated.Group("/visits")
		{
			visits.POST("", authMiddleware.RolesRequired(models.RoleFaculty), ctrl.Visit.Create)
			visits.GET("", authMiddleware.RolesRequired(models.RoleFaculty), ctrl.Visit.ListOwn)
		}

		// Support ticket routes
		tickets := authenticated.Group("/tickets")
		{
			tickets.POST("", ctrl.Ticket.Create)
			tickets.GET("", ctrl.Ticket.List)
			tickets.GET("/:id", ctrl.Ticket.Get)
			tickets.POST("/:id/assign", authMiddleware.RolesRequired(models.RolePrincipal, models.RoleDirectorate), ctrl.Ticket.Assign)
			tickets.POST("/:id/status", authMiddleware.RolesRequired(models.RoleFaculty, models.RolePrincipal, models.RoleDirectorate), ctrl.Ticket.ChangeStatus)
			tickets.POST("/:id/comments", ctrl.Ticket.AddComment)
			tickets.GET("/:id/comments", ctrl.Ticket.ListComments)
		}

		// Grievance routes
		grievances := authenticated.Group("/grievances")
		{
			grievances.POST("", ctrl.Grievance.Create)
			grievances.GET("", ctrl.Grievance.List)
			grievances.GET("/:id", ctrl.Grievance.Get)
			grievances.POST("/:id/review", authMiddleware.RolesRequired(models.RolePrincipal, models.RoleDirectorate), ctrl.Grievance.MarkUnderReview)
			grievances.POST("/:id/resolve", authMiddleware.RolesRequired(models.RolePrincipal, models.RoleDirectorate), ctrl.Grievance.Resolve)
		}

		// Notification routes
		notifications := authenticated.Group("/notifications")
		{
			notifications.GET("", ctrl.Notification.List)
			notifications.GET("/unread-count", ctrl.Notification.UnreadCount)
			notifications.POST("/:id/read", ctrl.Notification.MarkRead)
			notifications.POST("/read-all", ctrl.Notification.MarkAllRead)
		}

		// Bulk import routes
		imports := authenticated.Group("/imports")
		imports.Use(authMiddleware.RolesRequired(models.RolePrincipal, models.RoleDirectorate))
		{
			imports.GET("", ctrl.Import.ListJobs)
			imports.GET("/:id", ctrl.Import.GetJob)
		}

		// Statistics routes
		stats := authenticated.Group("/stats")
		{
			stats.GET("/overview", authMiddleware.RolesRequired(models.RoleDirectorate), ctrl.Stats.Overview)
			stats.GET("/institutions/:id", authMiddleware.RolesRequired(models.RoleFaculty, models.RolePrincipal, models.RoleDirectorate), ctrl.Stats.Institution)
		}
	}

	// Notification stream; the handler authenticates the token itself
	// because browsers cannot set headers on WebSocket upgrades.
	router.GET("/ws/notifications", wsHandler.HandleConnection)

	// Health check endpoint (public); reports the database as part of
	// the verdict so load balancers drain a node with a dead pool.
	v1.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := database.Pool.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, dto.APIResponse{
				Data:      gin.H{"status": "unavailable", "database": "down"},
				Timestamp: time.Now(),
			})
			return
		}

		c.JSON(http.StatusOK, dto.APIResponse{
			Data:      gin.H{"status": "ok", "database": "up"},
			Timestamp: time.Now(),
		})
	})

	// Swagger and static upload routes are set up in bootstrap.go
}
