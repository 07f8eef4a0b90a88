package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/yukikurage/project-management-api/internal/config"
	"github.com/yukikurage/project-management-api/internal/database"
	"github.com/yukikurage/project-management-api/internal/logger"
	"github.com/yukikurage/project-management-api/internal/mail"
	"github.com/yukikurage/project-management-api/internal/middleware"
	"github.com/yukikurage/project-management-api/internal/repository"
	"github.com/yukikurage/project-management-api/internal/services"
	"github.com/yukikurage/project-management-api/internal/token"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	zl, err := logger.New(cfg.GinMode)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	// Connect to database
	if err := database.Connect(cfg, zl); err != nil {
		zl.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Run migrations
	if err := database.Migrate(zl); err != nil {
		zl.Fatal("Failed to run migrations", zap.Error(err))
	}

	tokens, err := token.NewManager(cfg.JWTSecret, time.Duration(cfg.JWTExpireHours)*time.Hour)
	if err != nil {
		zl.Fatal("Failed to initialize token manager", zap.Error(err))
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			zl.Fatal("Invalid REDIS_URL", zap.Error(err))
		}
		redisClient = redis.NewClient(opts)
		defer redisClient.Close()
	}

	rateLimit, err := middleware.RateLimit(cfg.RateLimit, redisClient)
	if err != nil {
		zl.Fatal("Invalid RATE_LIMIT", zap.Error(err))
	}

	// Initialize summarizer
	var summarizer services.Summarizer = services.StubSummarizer{}
	if cfg.OpenAIAPIKey != "" {
		summarizer = services.NewAIService(cfg.OpenAIAPIKey)
	} else {
		zl.Info("OPENAI_API_KEY not set, using stub summaries")
	}

	mailer := mail.NewSMTPMailer(mail.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.EmailFrom,
		FromName: cfg.EmailFromName,
	})

	// Initialize repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	orgRepo := repository.NewOrganizationRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	eventRepo := repository.NewEventRepository(db)
	itemRepo := repository.NewUtilityItemRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	sqlDB, err := db.DB()
	if err != nil {
		zl.Fatal("Failed to get database handle", zap.Error(err))
	}

	app := &application{
		log:            zl,
		ping:           sqlDB.PingContext,
		corsOrigins:    cfg.CORSAllowedOrigins,
		rateLimit:      rateLimit,
		tokens:         tokens,
		authService:    services.NewAuthService(userRepo, tokens),
		orgService:     services.NewOrganizationService(orgRepo),
		inviteService:  services.NewInvitationService(orgRepo, userRepo, mailer, zl),
		projectService: services.NewProjectService(projectRepo, teamRepo, orgRepo, summarizer),
		taskService:    services.NewTaskService(taskRepo, projectRepo, teamRepo, userRepo, orgRepo),
		teamService:    services.NewTeamService(teamRepo, userRepo, orgRepo),
		eventService:   services.NewEventService(eventRepo, projectRepo, taskRepo, orgRepo),
		itemService:    services.NewUtilityItemService(itemRepo, projectRepo),
		chatService:    services.NewChatService(messageRepo, userRepo),
	}

	r := newRouter(app)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	zl.Info("Server starting", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		zl.Fatal("Failed to start server", zap.Error(err))
	}
}
