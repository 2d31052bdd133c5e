package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/lumenworks/agency-service/internal/api/http"
	"github.com/lumenworks/agency-service/internal/api/http/handlers"
	"github.com/lumenworks/agency-service/internal/auth"
	"github.com/lumenworks/agency-service/internal/config"
	"github.com/lumenworks/agency-service/internal/events"
	"github.com/lumenworks/agency-service/internal/observability"
	"github.com/lumenworks/agency-service/internal/persistence"
	"github.com/lumenworks/agency-service/internal/repository"
	"github.com/lumenworks/agency-service/internal/service"
	"github.com/lumenworks/agency-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	repository.SetMaxPageSize(cfg.App.MaxPageSize)

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	contactRepo := repository.NewContactRepository(pool)
	noteRepo := repository.NewContactNoteRepository(pool)
	responseRepo := repository.NewContactResponseRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)
	messageRepo := repository.NewOrderMessageRepository(pool)
	serviceRepo := repository.NewServiceRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	orderSequence := persistence.NewOrderSequence(redis, logger)

	authService := service.NewAuthService(*cfg, userRepo)
	contactService := service.NewContactService(service.ContactDependencies{
		ContactRepo:  contactRepo,
		NoteRepo:     noteRepo,
		ResponseRepo: responseRepo,
		ServiceRepo:  serviceRepo,
		UserRepo:     userRepo,
		Dispatcher:   dispatcher,
	})
	orderService := service.NewOrderService(service.OrderDependencies{
		OrderRepo:   orderRepo,
		MessageRepo: messageRepo,
		ServiceRepo: serviceRepo,
		UserRepo:    userRepo,
		Sequence:    orderSequence,
		Dispatcher:  dispatcher,
	})
	catalogService := service.NewCatalogService(serviceRepo)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Users:          handlers.NewUsersHandler(authService),
		Contacts:       handlers.NewContactsHandler(contactService),
		Orders:         handlers.NewOrdersHandler(orderService),
		Services:       handlers.NewServicesHandler(catalogService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
