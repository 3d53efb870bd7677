package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"treasuryhub/internal/cache"
	"treasuryhub/internal/config"
	"treasuryhub/internal/db"
	"treasuryhub/internal/handler"
	"treasuryhub/internal/logger"
	gormrepository "treasuryhub/internal/repository/gorm"
	"treasuryhub/internal/scheduler"
	"treasuryhub/internal/service"
	"treasuryhub/internal/workbook"
)

func main() {
	cfgPath := os.Getenv("TREASURY_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}

	envOnly := false
	if envOnlyRaw := os.Getenv("TREASURY_ENV_ONLY"); envOnlyRaw != "" {
		envOnly = strings.EqualFold(envOnlyRaw, "true") || envOnlyRaw == "1"
	}

	cfg, err := config.Load(cfgPath, envOnly)
	if err != nil {
		panic(err)
	}

	logger, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	dbConn, err := db.Open(cfg.DB)
	if err != nil {
		logger.Fatal("db open failed", zap.Error(err))
	}
	defer db.Close(dbConn)

	if err := db.AutoMigrate(dbConn); err != nil {
		logger.Fatal("auto-migrate failed", zap.Error(err))
	}

	if path, found := workbook.Locate(cfg.Workbook.Path, cfg.Workbook.Candidates); found {
		logger.Info("workbook located", zap.String("path", path))
	} else {
		logger.Warn("workbook not found, reads will serve sample data until it appears",
			zap.Strings("candidates", cfg.Workbook.Candidates))
	}

	store := gormrepository.New(dbConn.Gorm)
	readCache := cache.New(cfg.Cache.TTL)

	syncService := service.NewSyncService(cfg.Sync, cfg.Workbook, store, readCache, logger)
	dashboardService := service.NewDashboardService(cfg.Workbook, cfg.Dashboard, store, readCache, logger)
	dealService := service.NewFxDealService(store)

	if strings.EqualFold(cfg.App.Env, "dev") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(corsMiddleware())

	healthHandler := &handler.HealthHandler{DB: dbConn.Gorm}
	healthHandler.Register(engine)
	dashboardHandler := &handler.DashboardHandler{Dashboard: dashboardService}
	dashboardHandler.Register(engine)
	dealHandler := &handler.FxDealHandler{Deals: dealService}
	dealHandler.Register(engine)
	syncHandler := &handler.SyncHandler{Sync: syncService, Dashboard: dashboardService}
	syncHandler.Register(engine)

	srv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: engine,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner := scheduler.New(cfg.Sync, syncService, logger, ctx)
	if err := runner.Start(); err != nil {
		logger.Fatal("scheduler start failed", zap.Error(err))
	}
	defer runner.Stop()

	errCh := make(chan error, 1)

	go func() {
		logger.Info("http server starting", zap.String("addr", cfg.Server.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown requested")
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type,Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
