package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/moltaqa/moltaqa-api/api/swagger"
	"github.com/moltaqa/moltaqa-api/internal/handler"
	"github.com/moltaqa/moltaqa-api/internal/middleware"
	"github.com/moltaqa/moltaqa-api/internal/repository"
	"github.com/moltaqa/moltaqa-api/internal/service"
	"github.com/moltaqa/moltaqa-api/pkg/cache"
	"github.com/moltaqa/moltaqa-api/pkg/config"
	"github.com/moltaqa/moltaqa-api/pkg/database"
	"github.com/moltaqa/moltaqa-api/pkg/logger"
	corsmiddleware "github.com/moltaqa/moltaqa-api/pkg/middleware/cors"
	reqidmiddleware "github.com/moltaqa/moltaqa-api/pkg/middleware/requestid"
)

// @title Moltaqa API
// @version 0.1.0
// @description Student and tutor matching platform
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, preview cache disabled", "error", err)
		redisClient = nil
	}

	validate := validator.New()

	userRepo := repository.NewUserRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	adRepo := repository.NewAdRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	tutorRepo := repository.NewTutorRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	metricsSvc := service.NewMetricsService()
	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             "moltaqa-api",
	})
	catalogSvc := service.NewCatalogService(catalogRepo, logr)
	profileSvc := service.NewProfileService(profileRepo, validate, logr)
	adSvc := service.NewAdService(adRepo, validate, logr)
	groupSvc := service.NewGroupService(groupRepo, validate, logr)
	matchSvc := service.NewMatchService(catalogRepo, profileRepo, adRepo, groupRepo, tutorRepo, metricsSvc, cfg.Search, validate, logr)
	moltaqaSvc := service.NewMoltaqaMatchService(profileRepo, cacheRepo, cfg.Moltaqa, logr)
	exportSvc := service.NewExportService(profileRepo, nil, nil, logr)

	authHandler := handler.NewAuthHandler(authSvc)
	catalogHandler := handler.NewCatalogHandler(catalogSvc)
	profileHandler := handler.NewProfileHandler(profileSvc)
	adHandler := handler.NewAdHandler(adSvc)
	groupHandler := handler.NewGroupHandler(groupSvc)
	searchHandler := handler.NewSearchHandler(matchSvc)
	moltaqaHandler := handler.NewMoltaqaMatchHandler(moltaqaSvc)
	exportHandler := handler.NewExportHandler(exportSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	auth := api.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	protected := api.Group("")
	protected.Use(middleware.JWT(authSvc))

	protected.POST("/search/match", searchHandler.Match)
	protected.POST("/moltaqa/match/search", moltaqaHandler.Search)
	protected.GET("/moltaqa/match/search/preview", moltaqaHandler.Preview)

	protected.GET("/profiles/me", profileHandler.Get)
	protected.PUT("/profiles/me", profileHandler.Upsert)

	protected.GET("/ads", adHandler.List)
	protected.POST("/ads", adHandler.Create)
	protected.DELETE("/ads/:id", adHandler.Delete)

	protected.GET("/groups", groupHandler.List)
	protected.POST("/groups", groupHandler.Create)

	protected.GET("/colleges", catalogHandler.Colleges)
	protected.GET("/colleges/:id/majors", catalogHandler.Majors)
	protected.GET("/majors/:id/subjects", catalogHandler.Subjects)
	protected.GET("/subjects/:id", catalogHandler.Subject)

	if cfg.Exports.Enabled {
		protected.GET("/admin/profiles/export", exportHandler.ProfileDirectory)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
