package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/instacare/backend/api/handler"
	"github.com/instacare/backend/internal/config"
	"github.com/instacare/backend/internal/infrastructure/buffer"
	"github.com/instacare/backend/internal/infrastructure/monitor"
	pgInfra "github.com/instacare/backend/internal/infrastructure/postgres"
	redisInfra "github.com/instacare/backend/internal/infrastructure/redis"
	"github.com/instacare/backend/internal/middleware"
	"github.com/instacare/backend/internal/router"
	"github.com/instacare/backend/internal/services"
	"github.com/instacare/backend/internal/services/lifecycle"
	"github.com/instacare/backend/pkg/clock"
	"github.com/instacare/backend/pkg/httpcontext"
	"github.com/instacare/backend/pkg/logger"
	"github.com/instacare/backend/repository/postgres"
	redisRepo "github.com/instacare/backend/repository/redis"
	analyticsUC "github.com/instacare/backend/usecase/analytics"
	authUC "github.com/instacare/backend/usecase/auth"
	completionUC "github.com/instacare/backend/usecase/completion"
	exportUC "github.com/instacare/backend/usecase/export"
	itemUC "github.com/instacare/backend/usecase/item"
	profileUC "github.com/instacare/backend/usecase/profile"
	scheduleUC "github.com/instacare/backend/usecase/schedule"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pool.Close()
		return nil
	})

	redisClient, err := redisInfra.NewClient(cfg.Redis)
	if err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	manager.Register("redis", func(ctx context.Context) error {
		return redisClient.Close()
	})

	bufferStore, err := buffer.Open(cfg.Buffer.Path, "buffer")
	if err != nil {
		zapLogger.Fatal("failed to open buffer store", zap.Error(err))
	}
	manager.Register("buffer", func(ctx context.Context) error {
		return bufferStore.Close()
	})

	mon := monitor.New(pool, redisClient, bufferStore, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	userRepo := postgres.NewUserRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)
	definitionRepo := postgres.NewDefinitionRepository(pool)
	occurrenceRepo := postgres.NewOccurrenceRepository(pool)
	completionRepo := postgres.NewCompletionRepository(pool)
	sessionRepo := redisRepo.NewSessionRepository(redisClient, cfg.Auth.SessionTTL)
	uow := postgres.NewUnitOfWork(pool)

	bufferProcessor := services.NewBufferProcessor(
		bufferStore,
		mon,
		userRepo,
		itemRepo,
		zapLogger,
		services.ProcessorConfig{
			Interval:   cfg.Buffer.SyncInterval,
			BatchSize:  50,
			MaxRetries: cfg.Buffer.MaxRetry,
		},
	)
	bufferProcessor.Start()
	manager.Register("buffer_processor", func(ctx context.Context) error {
		bufferProcessor.Stop(ctx)
		return nil
	})

	bufferBridge := services.NewBufferBridge(bufferProcessor)
	clk := clock.System()

	authUseCase := authUC.New(userRepo, sessionRepo, cfg.Auth.JWTSecret, cfg.Auth.BcryptCost, zapLogger)
	profileUseCase := profileUC.New(userRepo, bufferBridge, zapLogger)
	itemUseCase := itemUC.New(itemRepo, definitionRepo, occurrenceRepo, uow, bufferBridge, zapLogger)
	scheduleUseCase := scheduleUC.New(definitionRepo, occurrenceRepo, itemRepo, uow, clk, cfg.Schedule.HorizonDays, zapLogger)
	completionUseCase := completionUC.New(occurrenceRepo, completionRepo, uow, clk, zapLogger)
	analyticsUseCase := analyticsUC.New(occurrenceRepo, completionRepo, itemRepo, clk, zapLogger)
	exportUseCase := exportUC.New(itemRepo, definitionRepo, occurrenceRepo, completionRepo, clk, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Auth:       apiHandler.NewAuthHandler(authUseCase, ctxAdapter, zapLogger, cfg.Auth.SessionTTL),
		Profile:    apiHandler.NewProfileHandler(profileUseCase, ctxAdapter, zapLogger),
		Item:       apiHandler.NewItemHandler(itemUseCase, ctxAdapter, zapLogger),
		Definition: apiHandler.NewDefinitionHandler(scheduleUseCase, ctxAdapter, zapLogger),
		Occurrence: apiHandler.NewOccurrenceHandler(scheduleUseCase, completionUseCase, clk, ctxAdapter, zapLogger),
		Analytics:  apiHandler.NewAnalyticsHandler(analyticsUseCase, ctxAdapter, zapLogger),
		Export:     apiHandler.NewExportHandler(exportUseCase, ctxAdapter, zapLogger),
		Health:     apiHandler.NewHealthHandler(mon, clk, ctxAdapter, zapLogger),
	}

	authMiddleware := middleware.JWTAuth(cfg.Auth.JWTSecret, zapLogger)
	r := router.New(handlers, authMiddleware)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
