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
	"github.com/google/uuid"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"talentpool/internal/config"
	cronrunner "talentpool/internal/cron"
	"talentpool/internal/db"
	"talentpool/internal/handler"
	"talentpool/internal/logger"
	gormrepository "talentpool/internal/repository/gorm"
	"talentpool/internal/service"
	"talentpool/internal/stream"

	_ "talentpool/docs"
)

func main() {
	cfgPath := os.Getenv("TP_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}

	envOnly := false
	if envOnlyRaw := os.Getenv("TP_ENV_ONLY"); envOnlyRaw != "" {
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

	if err := db.SetTimezone(dbConn, cfg.DB.Timezone); err != nil {
		logger.Warn("failed to set timezone", zap.Error(err))
	}
	if err := db.AutoMigrate(dbConn); err != nil {
		logger.Fatal("auto-migrate failed", zap.Error(err))
	}

	store := gormrepository.New(dbConn.Gorm)
	hub := stream.NewHub(logger, cfg.Stream.SubscriberBuffer)

	ledgerSvc := &service.LedgerService{Repo: store, Logger: logger}
	companySvc := &service.CompanyService{
		Repo:          store,
		Ledger:        ledgerSvc,
		Logger:        logger,
		Tokens:        cfg.Tokens,
		DefaultStages: cfg.Pipeline.DefaultStages,
	}
	pipelineSvc := &service.PipelineService{Repo: store, Logger: logger, Stream: hub}
	unlockSvc := &service.UnlockService{Repo: store, Ledger: ledgerSvc, Logger: logger, Stream: hub}
	noteSvc := &service.NoteService{Repo: store, Logger: logger, Stream: hub}
	applicationSvc := &service.ApplicationService{Repo: store, Logger: logger, Stream: hub}
	activitySvc := &service.ActivityService{Repo: store, Logger: logger, MaxAge: cfg.Retention.ActivityMaxAge}

	if strings.EqualFold(cfg.App.Env, "dev") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(corsMiddleware())
	engine.Use(requestIDMiddleware())

	healthHandler := &handler.HealthHandler{DB: dbConn.Gorm}
	healthHandler.Register(engine)

	companyHandler := &handler.CompanyHandler{Repo: store, Companies: companySvc}
	companyHandler.Register(engine)
	candidateHandler := &handler.CandidateHandler{Repo: store}
	candidateHandler.Register(engine)
	pipelineHandler := &handler.PipelineHandler{Repo: store, Pipeline: pipelineSvc}
	pipelineHandler.Register(engine)
	unlockHandler := &handler.UnlockHandler{Unlock: unlockSvc}
	unlockHandler.Register(engine)
	noteHandler := &handler.NoteHandler{Notes: noteSvc}
	noteHandler.Register(engine)
	ledgerHandler := &handler.LedgerHandler{Repo: store, Ledger: ledgerSvc}
	ledgerHandler.Register(engine)
	activityHandler := &handler.ActivityHandler{
		Repo:         store,
		Stream:       hub,
		Logger:       logger,
		WriteTimeout: cfg.Stream.WriteTimeout,
	}
	activityHandler.Register(engine)
	jobHandler := &handler.JobHandler{Repo: store}
	jobHandler.Register(engine)
	applicationHandler := &handler.ApplicationHandler{Repo: store, Applications: applicationSvc}
	applicationHandler.Register(engine)

	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: engine,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Cron.Enabled {
		cronRunner := cronrunner.New(logger, ctx)
		_, err := cronRunner.Add(cfg.Retention.PruneSpec, func(ctx context.Context) {
			n, err := activitySvc.PruneExpired(ctx)
			if err != nil {
				logger.Warn("activity prune failed", zap.Error(err))
				return
			}
			if n > 0 {
				logger.Info("pruned expired activities", zap.Int64("count", n))
			}
		})
		if err != nil {
			logger.Warn("cron register activity prune failed", zap.Error(err))
		}
		cronRunner.Start()
		defer cronRunner.Stop()
	}

	errCh := make(chan error, 2)

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

func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-ID")
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Writer.Header().Set("X-Request-ID", rid)
		c.Set("request_id", rid)
		c.Next()
	}
}
