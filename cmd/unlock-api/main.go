package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/kutrumbo/unlockapp/api/swagger"
	"github.com/kutrumbo/unlockapp/internal/handler"
	internalmiddleware "github.com/kutrumbo/unlockapp/internal/middleware"
	"github.com/kutrumbo/unlockapp/internal/service"
	"github.com/kutrumbo/unlockapp/pkg/config"
	"github.com/kutrumbo/unlockapp/pkg/logger"
	corsmiddleware "github.com/kutrumbo/unlockapp/pkg/middleware/cors"
	reqidmiddleware "github.com/kutrumbo/unlockapp/pkg/middleware/requestid"
)

// @title Unlock API
// @version 0.1.0
// @description Daily reading, exercise and music tracker
// @BasePath /
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

	location, err := cfg.Location()
	if err != nil {
		logr.Sugar().Fatalw("invalid timezone", "timezone", cfg.Timezone, "error", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	store, err := openStore(ctx, cfg)
	cancel()
	if err != nil {
		logr.Sugar().Fatalw("failed to open store", "driver", cfg.Store.Driver, "error", err)
	}
	defer store.Close() //nolint:errcheck

	metricsSvc := service.NewMetricsService(cfg.Store.Driver)
	instrumented := service.InstrumentStore(store, metricsSvc)

	dayService := service.NewDayRecordService(instrumented, metricsSvc, logr, service.DayRecordServiceConfig{Location: location})
	historyService := service.NewHistoryService(instrumented, metricsSvc, logr, service.HistoryServiceConfig{LoadConcurrency: cfg.History.LoadConcurrency})
	counterService := service.NewCounterService(instrumented, metricsSvc, logr)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metricsSvc))

	var guards []gin.HandlerFunc
	if cfg.Auth.Enabled() {
		guards = append(guards, internalmiddleware.BearerAuth(service.NewTokenService(cfg.Auth.TokenSecret)))
	}

	historyHandler := handler.NewHistoryHandler(historyService, nil)
	if cfg.Exports.Enabled {
		historyHandler = handler.NewHistoryHandler(historyService, service.NewExportService(historyService))
	}

	handler.RegisterRoutes(r, cfg.APIPrefix, handler.Routes{
		Days:    handler.NewDayHandler(dayService, validator.New()),
		History: historyHandler,
		Counter: handler.NewCounterHandler(counterService),
		Metrics: handler.NewMetricsHandler(metricsSvc, store),
	}, guards...)

	if cfg.Env != config.EnvProduction {
		swagger.SwaggerInfo.BasePath = cfg.APIPrefix
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "store", cfg.Store.Driver, "auth", cfg.Auth.Enabled())
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
