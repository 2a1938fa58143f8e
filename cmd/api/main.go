package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/campus-hub/internal/api/http"
	"github.com/spec-kit/campus-hub/internal/api/http/handlers"
	"github.com/spec-kit/campus-hub/internal/auth"
	"github.com/spec-kit/campus-hub/internal/config"
	"github.com/spec-kit/campus-hub/internal/events"
	"github.com/spec-kit/campus-hub/internal/mail"
	"github.com/spec-kit/campus-hub/internal/observability"
	"github.com/spec-kit/campus-hub/internal/persistence"
	"github.com/spec-kit/campus-hub/internal/repository"
	"github.com/spec-kit/campus-hub/internal/service"
	"github.com/spec-kit/campus-hub/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

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

	metrics := observability.NewMetrics()

	mailer, err := mail.NewSMTPMailer(cfg.Mail, logger, metrics)
	if err != nil {
		logger.Fatal("failed to init mailer", zap.Error(err))
	}

	pool := pg.PoolHandle()
	participantRepo := repository.NewParticipantRepository(pool)
	memberRepo := repository.NewMemberRepository(pool)
	adminRepo := repository.NewAdminRepository(pool, redis.Client)
	teamRepo := repository.NewTeamRepository(pool)
	eventRepo := repository.NewEventRepository(pool)
	scoreRepo := repository.NewScoreRepository(pool)
	postRepo := repository.NewPostRepository(pool)
	galleryRepo := repository.NewGalleryRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartNotificationWorker(dispatcher, logger)

	credentialService := service.NewCredentialService(*cfg, service.CredentialDependencies{
		ParticipantRepo: participantRepo,
		MemberRepo:      memberRepo,
		Mailer:          mailer,
		Logger:          logger,
	})
	identityService := service.NewIdentityService(participantRepo)
	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		ParticipantRepo: participantRepo,
		MemberRepo:      memberRepo,
		Credentials:     credentialService,
		Identity:        identityService,
	})
	eventService := service.NewEventService(service.EventDependencies{
		EventRepo:       eventRepo,
		ScoreRepo:       scoreRepo,
		ParticipantRepo: participantRepo,
		Dispatcher:      dispatcher,
	})
	feedService := service.NewFeedService(postRepo, dispatcher)
	galleryService, err := service.NewGalleryService(ctx, cfg.Storage, galleryRepo)
	if err != nil {
		logger.Fatal("failed to init gallery storage", zap.Error(err))
	}
	adminService := service.NewAdminService(*cfg, service.AdminDependencies{
		MemberRepo: memberRepo,
		AdminRepo:  adminRepo,
		TeamRepo:   teamRepo,
	})

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), participantRepo, memberRepo)
	policies := auth.NewPolicyResolver(adminRepo)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService, identityService),
		Events:         handlers.NewEventsHandler(eventService),
		Feed:           handlers.NewFeedHandler(feedService),
		Gallery:        handlers.NewGalleryHandler(galleryService),
		Admin:          handlers.NewAdminHandler(adminService),
		AuthMiddleware: authMiddleware,
		Policies:       policies,
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
