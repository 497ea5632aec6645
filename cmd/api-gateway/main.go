package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/csab-tools/csab-match-api/api/swagger"
	"github.com/csab-tools/csab-match-api/internal/handler"
	"github.com/csab-tools/csab-match-api/internal/middleware"
	"github.com/csab-tools/csab-match-api/internal/repository"
	"github.com/csab-tools/csab-match-api/internal/service"
	"github.com/csab-tools/csab-match-api/pkg/cache"
	"github.com/csab-tools/csab-match-api/pkg/config"
	"github.com/csab-tools/csab-match-api/pkg/database"
	"github.com/csab-tools/csab-match-api/pkg/logger"
	corsmiddleware "github.com/csab-tools/csab-match-api/pkg/middleware/cors"
	reqidmiddleware "github.com/csab-tools/csab-match-api/pkg/middleware/requestid"
)

// @title CSAB Match API
// @version 1.0.0
// @description Admission-matching and ranking engine over historical CSAB counselling cutoffs
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
	defer db.Close() //nolint:errcheck

	metricsSvc := service.NewMetricsService()

	var cacheSvc *service.CacheService
	if cfg.Match.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, option caching disabled", zap.Error(err))
		} else {
			cacheRepo := repository.NewCacheRepository(redisClient, logr)
			cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Match.OptionsCacheTTL, logr, true)
		}
	}

	cutoffRepo := repository.NewCutoffRepository(db)
	optionRepo := repository.NewOptionRepository(db)
	userRepo := repository.NewUserRepository(db)

	matchSvc := service.NewMatchService(cutoffRepo, nil, logr, cfg.Match.DefaultPageSize, cfg.Match.MaxPageSize)
	optionSvc := service.NewOptionService(optionRepo, cacheSvc, metricsSvc, logr, cfg.Match.OptionsCacheTTL)
	trendSvc := service.NewTrendService(cutoffRepo, nil, logr)
	exportSvc := service.NewExportService(matchSvc, logr, cfg.Export.MaxRows)
	authSvc := service.NewAuthService(userRepo, nil, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             cfg.JWT.Issuer,
	})

	matchHandler := handler.NewMatchHandler(matchSvc)
	optionHandler := handler.NewOptionHandler(optionSvc)
	trendHandler := handler.NewTrendHandler(trendSvc)
	exportHandler := handler.NewExportHandler(exportSvc)
	authHandler := handler.NewAuthHandler(authSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

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
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "db unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		colleges := api.Group("/colleges")
		colleges.POST("/match", matchHandler.Match)
		colleges.GET("/margin", matchHandler.Margin)
		colleges.GET("/options", optionHandler.Values)
		colleges.GET("/trends", trendHandler.History)
		colleges.GET("/match/export", exportHandler.Download)

		auth := api.Group("/auth")
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
		auth.POST("/logout", authHandler.Logout)

		admin := api.Group("/admin", middleware.JWT(authSvc))
		admin.POST("/cache/invalidate", optionHandler.Invalidate)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
