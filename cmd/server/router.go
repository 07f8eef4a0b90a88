package main

import (
	"context"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yukikurage/project-management-api/internal/constants"
	apierrors "github.com/yukikurage/project-management-api/internal/errors"
	"github.com/yukikurage/project-management-api/internal/handlers"
	"github.com/yukikurage/project-management-api/internal/middleware"
	"github.com/yukikurage/project-management-api/internal/services"
	"go.uber.org/zap"
)

// application holds everything the router needs.
type application struct {
	log            *zap.Logger
	ping           func(context.Context) error
	corsOrigins    []string
	rateLimit      gin.HandlerFunc
	tokens         middleware.TokenVerifier
	authService    *services.AuthService
	orgService     *services.OrganizationService
	inviteService  *services.InvitationService
	projectService *services.ProjectService
	taskService    *services.TaskService
	teamService    *services.TeamService
	eventService   *services.EventService
	itemService    *services.UtilityItemService
	chatService    *services.ChatService
}

func newRouter(app *application) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(app.log))
	r.Use(middleware.Metrics())

	corsConfig := cors.DefaultConfig()
	if len(app.corsOrigins) == 0 || (len(app.corsOrigins) == 1 && app.corsOrigins[0] == "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = app.corsOrigins
	}
	corsConfig.AddAllowHeaders("Authorization", constants.HeaderRequestID)
	corsConfig.AddExposeHeaders(constants.HeaderRequestID)
	r.Use(cors.New(corsConfig))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(app.authService)
	orgHandler := handlers.NewOrganizationHandler(app.orgService, app.inviteService)
	projectHandler := handlers.NewProjectHandler(app.projectService)
	taskHandler := handlers.NewTaskHandler(app.taskService)
	teamHandler := handlers.NewTeamHandler(app.teamService)
	eventHandler := handlers.NewEventHandler(app.eventService)
	itemHandler := handlers.NewUtilityItemHandler(app.itemService)
	chatHandler := handlers.NewChatHandler(app.chatService)

	requireAuth := middleware.RequireAuth(app.tokens, app.authService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		if app.ping != nil {
			if err := app.ping(c.Request.Context()); err != nil {
				app.log.Warn("health check failed", zap.Error(err))
				apierrors.ServiceUnavailable(c, "Database unavailable")
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Project Management API is running",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API routes
	api := r.Group("/api")
	if app.rateLimit != nil {
		api.Use(app.rateLimit)
	}
	{
		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.GET("/me", requireAuth, authHandler.GetCurrentUser)
			auth.GET("/users", requireAuth, authHandler.ListUsers)
		}

		// Organization routes (protected)
		orgs := api.Group("/organizations")
		orgs.Use(requireAuth)
		{
			orgs.POST("", orgHandler.CreateOrganization)
			orgs.GET("", orgHandler.ListOrganizations)
			orgs.POST("/join", orgHandler.JoinOrganization)
			orgs.GET("/:id", orgHandler.GetOrganization)
			orgs.POST("/:id/invite", orgHandler.InviteUsers)
		}

		// Project routes (protected)
		projects := api.Group("/projects")
		projects.Use(requireAuth)
		{
			projects.POST("/:orgId", projectHandler.CreateProject)
			projects.GET("/:orgId", projectHandler.ListProjects)
			projects.GET("/:orgId/:id", projectHandler.GetProject)
			projects.PUT("/:orgId/:id", projectHandler.UpdateProject)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(requireAuth)
		{
			tasks.GET("/my-tasks", taskHandler.ListMyTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.POST("/project/:projectId", taskHandler.CreateTask)
			tasks.GET("/project/:projectId", taskHandler.ListProjectTasks)
			tasks.PUT("/:id/status", taskHandler.UpdateTaskStatus)
			tasks.POST("/:id/comments", taskHandler.AddComment)
		}

		// Team routes (protected). :id is the organization for create and
		// list, and the team for member changes.
		teams := api.Group("/teams")
		teams.Use(requireAuth)
		{
			teams.POST("/:id", teamHandler.CreateTeam)
			teams.GET("/:id", teamHandler.ListTeams)
			teams.POST("/:id/members", teamHandler.AddTeamMember)
		}

		// Event routes (protected)
		events := api.Group("/events")
		events.Use(requireAuth)
		{
			events.GET("/projects/:projectId/events", eventHandler.ListProjectEvents)
			events.POST("/projects/:projectId/events", eventHandler.CreateEvent)
			events.PUT("/:eventId", eventHandler.UpdateEvent)
			events.DELETE("/:eventId", eventHandler.DeleteEvent)
		}

		// Utility item routes (protected)
		items := api.Group("/utility-items")
		items.Use(requireAuth)
		{
			items.POST("", itemHandler.CreateUtilityItem)
			items.GET("/project/:projectId", itemHandler.ListUtilityItems)
			items.PUT("/:id", itemHandler.UpdateUtilityItem)
			items.DELETE("/:id", itemHandler.DeleteUtilityItem)
		}

		// Chat routes (protected)
		chat := api.Group("/chat")
		chat.Use(requireAuth)
		{
			chat.POST("/:orgId", chatHandler.SendMessage)
			chat.GET("/:orgId", chatHandler.ListMessages)
		}
	}

	return r
}
