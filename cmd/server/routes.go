package main

import (
	"github.com/gin-gonic/gin"

	"github.com/checkmatehq/checkmate/internal/config"
	"github.com/checkmatehq/checkmate/internal/handlers"
	"github.com/checkmatehq/checkmate/internal/middleware"
	"github.com/checkmatehq/checkmate/internal/models"
	"github.com/checkmatehq/checkmate/pkg/logger"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, cfg *config.Config, svc *appServices) {
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.CORS())

	db := models.GetDB()

	// Rate limiter for the credential endpoints
	authLimiter := middleware.RateLimit(5, 10)

	healthHandler := handlers.NewHealthHandler(db)
	r.GET("/health", healthHandler.Check)

	api := r.Group("/api")
	{
		// Auth routes (public, rate limited)
		authHandler := handlers.NewAuthHandler(db, &cfg.JWT)
		auth := api.Group("/auth", authLimiter)
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.Refresh)
			auth.GET("/ldap-status", authHandler.LDAPStatus)
		}

		// Protected routes: authentication, then workspace context
		// resolution, then audit capture of mutations.
		protected := api.Group("")
		protected.Use(middleware.AuthRequired(), middleware.WorkspaceContext(db), middleware.AuditLog())
		{
			// Auth (session-bound)
			protected.GET("/auth/me", authHandler.Me)
			protected.POST("/auth/logout", authHandler.Logout)
			protected.POST("/auth/change-password", authHandler.ChangePassword)

			// Users
			userHandler := handlers.NewUserHandler(db)
			protected.PUT("/users/profile", userHandler.UpdateProfile)
			protected.PUT("/users/preferences", userHandler.UpdatePreferences)
			protected.GET("/users/search", userHandler.Search)

			// Workspaces
			workspaceHandler := handlers.NewWorkspaceHandler(db)
			protected.GET("/workspaces", workspaceHandler.List)
			protected.POST("/workspaces", workspaceHandler.Create)
			protected.GET("/workspaces/current", workspaceHandler.Current)
			protected.GET("/workspaces/:id", workspaceHandler.GetByID)
			protected.PUT("/workspaces/:id", workspaceHandler.Update)
			protected.DELETE("/workspaces/:id", workspaceHandler.Delete)
			protected.POST("/workspaces/:id/switch", workspaceHandler.Switch)
			protected.POST("/workspaces/:id/transfer", workspaceHandler.TransferOwnership)

			// Workspace members
			memberHandler := handlers.NewMemberHandler(db)
			protected.GET("/workspaces/:id/members", memberHandler.List)
			protected.POST("/workspaces/:id/members", memberHandler.Add)
			protected.PUT("/workspaces/:id/members/:memberId", memberHandler.UpdateRole)
			protected.DELETE("/workspaces/:id/members/:memberId", memberHandler.Remove)
			protected.POST("/workspaces/:id/leave", memberHandler.Leave)

			// Dashboard
			dashboardHandler := handlers.NewDashboardHandler(db)
			protected.GET("/dashboard/stats", dashboardHandler.Stats)

			// Projects
			projectHandler := handlers.NewProjectHandler(db)
			protected.GET("/projects", projectHandler.List)
			protected.POST("/projects", projectHandler.Create)
			protected.GET("/projects/:projectId", projectHandler.GetByID)
			protected.PUT("/projects/:projectId", projectHandler.Update)
			protected.DELETE("/projects/:projectId", projectHandler.Delete)
			protected.GET("/projects/:projectId/users", projectHandler.Users)

			// Suites
			suiteHandler := handlers.NewSuiteHandler(db)
			protected.GET("/projects/:projectId/suites", suiteHandler.Tree)
			protected.POST("/projects/:projectId/suites", suiteHandler.Create)
			protected.PUT("/projects/:projectId/suites/:id", suiteHandler.Update)
			protected.DELETE("/projects/:projectId/suites/:id", suiteHandler.Delete)

			// Test cases
			testCaseHandler := handlers.NewTestCaseHandler(db)
			protected.GET("/projects/:projectId/cases", testCaseHandler.List)
			protected.POST("/projects/:projectId/cases", testCaseHandler.Create)
			protected.POST("/projects/:projectId/cases/bulk-delete", testCaseHandler.BulkDelete)
			protected.GET("/projects/:projectId/cases/:id", testCaseHandler.GetByID)
			protected.PUT("/projects/:projectId/cases/:id", testCaseHandler.Update)
			protected.DELETE("/projects/:projectId/cases/:id", testCaseHandler.Delete)

			// Test runs
			runHandler := handlers.NewTestRunHandler(db)
			protected.GET("/projects/:projectId/runs", runHandler.List)
			protected.POST("/projects/:projectId/runs", runHandler.Create)
			protected.GET("/projects/:projectId/runs/:id", runHandler.GetByID)
			protected.DELETE("/projects/:projectId/runs/:id", runHandler.Delete)
			protected.POST("/projects/:projectId/runs/:id/close", runHandler.Close)
			protected.PUT("/projects/:projectId/runs/:id/cases/:caseId", runHandler.UpdateCaseStatus)
			protected.POST("/projects/:projectId/runs/:id/cases/bulk-status", runHandler.BulkUpdateStatus)

			// Checklists
			checklistHandler := handlers.NewChecklistHandler(db)
			protected.GET("/projects/:projectId/checklists", checklistHandler.List)
			protected.POST("/projects/:projectId/checklists", checklistHandler.Create)
			protected.GET("/projects/:projectId/checklists/:id", checklistHandler.GetByID)
			protected.PUT("/projects/:projectId/checklists/:id", checklistHandler.Update)
			protected.DELETE("/projects/:projectId/checklists/:id", checklistHandler.Delete)
			protected.POST("/projects/:projectId/checklists/:id/items", checklistHandler.AddItem)
			protected.PUT("/projects/:projectId/checklists/:id/items/:itemId", checklistHandler.UpdateItem)
			protected.DELETE("/projects/:projectId/checklists/:id/items/:itemId", checklistHandler.RemoveItem)

			// Bug reports
			bugHandler := handlers.NewBugHandler(db)
			protected.GET("/projects/:projectId/bugs", bugHandler.List)
			protected.POST("/projects/:projectId/bugs", bugHandler.Create)
			protected.GET("/projects/:projectId/bugs/:id", bugHandler.GetByID)
			protected.PUT("/projects/:projectId/bugs/:id", bugHandler.Update)
			protected.DELETE("/projects/:projectId/bugs/:id", bugHandler.Delete)

			// Documents
			documentHandler := handlers.NewDocumentHandler(db)
			protected.GET("/projects/:projectId/documents", documentHandler.List)
			protected.POST("/projects/:projectId/documents", documentHandler.Create)
			protected.GET("/projects/:projectId/documents/:id", documentHandler.GetByID)
			protected.PUT("/projects/:projectId/documents/:id", documentHandler.Update)
			protected.DELETE("/projects/:projectId/documents/:id", documentHandler.Delete)

			// Releases
			releaseHandler := handlers.NewReleaseHandler(db)
			protected.GET("/projects/:projectId/releases", releaseHandler.List)
			protected.POST("/projects/:projectId/releases", releaseHandler.Create)
			protected.GET("/projects/:projectId/releases/:id", releaseHandler.GetByID)
			protected.PUT("/projects/:projectId/releases/:id", releaseHandler.Update)
			protected.DELETE("/projects/:projectId/releases/:id", releaseHandler.Delete)

			// Attachments
			attachmentHandler := handlers.NewAttachmentHandler(db, &cfg.Storage)
			protected.GET("/projects/:projectId/attachments", attachmentHandler.List)
			protected.POST("/projects/:projectId/attachments", attachmentHandler.Upload)
			protected.GET("/projects/:projectId/attachments/:id/download", attachmentHandler.Download)
			protected.DELETE("/projects/:projectId/attachments/:id", attachmentHandler.Delete)

			// AI generation jobs
			generationHandler := handlers.NewGenerationHandler(db, svc.generationService)
			protected.GET("/projects/:projectId/generations", generationHandler.List)
			protected.POST("/projects/:projectId/generations", generationHandler.Create)
			protected.GET("/projects/:projectId/generations/:id", generationHandler.GetByID)

			// AI provider configs
			aiConfigHandler := handlers.NewAIConfigHandler(db)
			protected.GET("/ai-configs", aiConfigHandler.List)
			protected.POST("/ai-configs", aiConfigHandler.Create)
			protected.GET("/ai-configs/:id", aiConfigHandler.GetByID)
			protected.PUT("/ai-configs/:id", aiConfigHandler.Update)
			protected.DELETE("/ai-configs/:id", aiConfigHandler.Delete)

			// System surface
			systemHandler := handlers.NewSystemHandler(db)
			protected.GET("/system/logs", systemHandler.ListLogs)
			protected.GET("/system/logs/modules", systemHandler.LogModules)
			protected.GET("/system/logs/retention", systemHandler.GetRetention)
			protected.PUT("/system/logs/retention", systemHandler.UpdateRetention)
			protected.GET("/system/ldap", systemHandler.GetLDAPConfig)
			protected.PUT("/system/ldap", systemHandler.UpdateLDAPConfig)
		}
	}
}
