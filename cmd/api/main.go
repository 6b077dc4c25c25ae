package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/wisker-app/wisker/internal/api/handlers"
	"github.com/wisker-app/wisker/internal/api/router"
	"github.com/wisker-app/wisker/internal/config"
	"github.com/wisker-app/wisker/internal/payment"
	"github.com/wisker-app/wisker/internal/pkg/logger"
	"github.com/wisker-app/wisker/internal/pkg/validator"
	"github.com/wisker-app/wisker/internal/providers"
	"github.com/wisker-app/wisker/internal/repository/postgres"
	"github.com/wisker-app/wisker/internal/services"
	"github.com/wisker-app/wisker/internal/storage/s3"
	"github.com/wisker-app/wisker/internal/worker"
	"github.com/wisker-app/wisker/migrations"
)

// @title Wisker API
// @version 1.0
// @description Studying backend: subjects, notes, AI learning tools, plans and payments
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	db, err := postgres.New(cfg.Database)
	if err != nil {
		log.ErrorWithErr(err, "Failed to connect to database")
		os.Exit(1)
	}
	defer db.Close()

	if err := postgres.RunMigrations(db, migrations.FS()); err != nil {
		log.ErrorWithErr(err, "Failed to run migrations")
		os.Exit(1)
	}
	log.Info("Database migrations applied")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	planRepo := postgres.NewPlanRepository(db)
	promoRepo := postgres.NewPromoRepository(db)
	subjectRepo := postgres.NewSubjectRepository(db)
	noteRepo := postgres.NewNoteRepository(db)
	toolRepo := postgres.NewToolRepository(db)

	// Services
	planService := services.NewPlanService(planRepo, log)
	userService := services.NewUserService(userRepo, planService, log)
	promoService := services.NewPromoService(promoRepo, log)
	subscriptionService := services.NewSubscriptionService(userRepo, planService, subjectRepo, noteRepo, log)
	streakService := services.NewStreakService(userRepo, log)
	subjectService := services.NewSubjectService(subjectRepo, subscriptionService, log)
	noteService := services.NewNoteService(noteRepo, subjectRepo, subscriptionService, log)

	var generator providers.Generator
	if ai, err := providers.NewAIClient(cfg.AI, log); err != nil {
		log.Warn("AI provider not configured, tool generation disabled")
	} else {
		generator = ai
	}
	toolService := services.NewToolService(toolRepo, noteService, subscriptionService, streakService, generator, log)

	gateway := payment.NewClient(cfg.Payment, log)
	paymentService := services.NewPaymentService(
		gateway, planService, promoService, subscriptionService,
		cfg.Payment.SuccessURL, cfg.Payment.CancelURL, log,
	)

	var storage *s3.Storage
	if cfg.Storage.AccessKeyID != "" {
		storage, err = s3.New(ctx, cfg.Storage)
		if err != nil {
			log.ErrorWithErr(err, "Failed to initialize object storage")
			os.Exit(1)
		}
	} else {
		log.Warn("Object storage not configured, note uploads disabled")
	}

	// Hourly sweep backstopping the lazy per-request credit reset
	resetWorker := worker.NewCreditResetWorker(userRepo, "", log)
	if err := resetWorker.Start(ctx); err != nil {
		log.ErrorWithErr(err, "Failed to start credit reset worker")
		os.Exit(1)
	}
	defer resetWorker.Stop()

	val := validator.New()
	h := &router.Handlers{
		Health:       handlers.NewHealthHandler(db, log),
		Auth:         handlers.NewAuthHandler(userService, cfg, log, val),
		Subscription: handlers.NewSubscriptionHandler(subscriptionService, log, val),
		Plan:         handlers.NewPlanHandler(planService, log, val),
		Promo:        handlers.NewPromoHandler(promoService, log, val),
		Payment:      handlers.NewPaymentHandler(paymentService, cfg, log, val),
		Streak:       handlers.NewStreakHandler(streakService, log),
		Subject:      handlers.NewSubjectHandler(subjectService, log, val),
		Note:         handlers.NewNoteHandler(noteService, log, val),
		Tool:         handlers.NewToolHandler(toolService, log, val),
		Upload:       handlers.NewUploadHandler(storage, noteService, cfg.Storage.MaxUploadBytes, log),
		User:         handlers.NewUserHandler(userService, log),
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.New(cfg, log, h),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.WithFields(map[string]interface{}{
			"addr":        srv.Addr,
			"environment": cfg.Server.Environment,
		}).Info("Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.ErrorWithErr(err, "Server failed")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.ErrorWithErr(err, "Graceful shutdown failed")
	}
}
