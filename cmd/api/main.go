package main

import (
	appcontext "github.com/sopheak-dev/agencyflow/internal/app_context"
	"github.com/sopheak-dev/agencyflow/internal/auth"
	"github.com/sopheak-dev/agencyflow/internal/cache"
	"github.com/sopheak-dev/agencyflow/internal/config"
	"github.com/sopheak-dev/agencyflow/internal/controller"
	"github.com/sopheak-dev/agencyflow/internal/database"
	"github.com/sopheak-dev/agencyflow/internal/env"
	filestorage "github.com/sopheak-dev/agencyflow/internal/file_storage"
	"github.com/sopheak-dev/agencyflow/internal/mailer"
	"github.com/sopheak-dev/agencyflow/internal/middleware"
	ratelimiter "github.com/sopheak-dev/agencyflow/internal/rate_limiter"
	"github.com/sopheak-dev/agencyflow/internal/repository"
	"github.com/sopheak-dev/agencyflow/internal/route"
	"github.com/sopheak-dev/agencyflow/internal/scheduler"
	"github.com/sopheak-dev/agencyflow/internal/service"
	"github.com/sopheak-dev/agencyflow/internal/util"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// this function run before main
func init() {
	env.LoadEnv(".env")
}

func main() {
	cfg := config.GetConfig()

	logger := util.NewLogger(cfg.ENV)
	defer logger.Sync()
	logger.Debugf("Configuration: %+v \n", cfg)

	db, err := database.ConnectReturnGormDB(cfg.DB)
	if err != nil {
		logger.Panic(err)
	}

	sqlDb, err := db.DB()
	if err != nil {
		logger.Panic(err)
	}
	defer sqlDb.Close()
	logger.Info("Database connected \n")

	s3, err := filestorage.NewMinioClient(&cfg.Minio)
	if err != nil {
		logger.Error("Error connecting to minio")
		logger.Panic(err)
	}
	storage := filestorage.NewStorage(s3, cfg.Minio.BUCKET, logger)

	redisCache := cache.New(cfg.Redis.ADDR, cfg.Redis.PASSWORD, cfg.Redis.DB)

	// Custom validation
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("strNotEmpty", util.StrNotEmpty); err != nil {
			return
		}
	}

	rateLimiter := ratelimiter.NewRateLimiter(cfg.RateLimiter, logger)

	var mail mailer.Client
	if cfg.Mail.Enabled {
		mail = mailer.NewSendgrid(cfg.Mail.SEND_GRID.API_KEY, cfg.Mail.FROM_EMAIL, cfg.IsProduction(), logger)
	}

	jwtService := auth.NewJwt(cfg.Auth, logger)
	repo := repository.NewRepository(db, logger)

	relationService := service.NewRelationService(repo.Project, logger)
	notificationService := service.NewNotificationService(repo.Notification, repo.User, relationService, redisCache, mail, logger)
	projectService := service.NewProjectService(repo.Project, repo.ProjectFile, storage, notificationService, logger)

	app := appcontext.Application{
		Config:              &cfg,
		Repository:          repo,
		Logger:              logger,
		Mailer:              mail,
		JWTService:          jwtService,
		S3:                  s3,
		Storage:             storage,
		Cache:               redisCache,
		ProjectService:      projectService,
		NotificationService: notificationService,
		RelationService:     relationService,
	}

	_scheduler := scheduler.NewScheduler(notificationService, cfg.Notification, logger)
	if err := _scheduler.Start(); err != nil {
		logger.Errorf("Failed to start scheduler: %v", err)
	}
	defer _scheduler.Stop()

	_middleware := middleware.NewMiddleware(&app, rateLimiter)

	if cfg.ENV == "production" {
		logger.Info("Running in production mode")
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	// docs: https://github.com/gin-contrib/cors?tab=readme-ov-file#using-defaultconfig-as-start-point
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "X-Requested-With", "Accept"}
	r.Use(cors.New(corsConfig))
	r.Use(_middleware.RequestIDMiddleware)
	r.Use(_middleware.RateLimiterMiddleware)

	_controller := controller.NewController(&app)

	r.GET("/", _controller.Index.Index)

	rApi := r.Group("/api")

	route.V1_Projects(rApi, _controller.Project, _middleware)
	route.V1_Notifications(rApi, _controller.Notification, _middleware)

	if err := r.Run("0.0.0.0:" + app.Config.Port); err != nil {
		logger.Panic("Error running server: %v \n", err)
	}
}
