package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/careline/social-api/config"
	"github.com/careline/social-api/internal/email"
	"github.com/careline/social-api/internal/handler"
	authHandler "github.com/careline/social-api/internal/handler/auth"
	feedbackHandler "github.com/careline/social-api/internal/handler/feedback"
	messagingHandler "github.com/careline/social-api/internal/handler/messaging"
	profileHandler "github.com/careline/social-api/internal/handler/profile"
	socialHandler "github.com/careline/social-api/internal/handler/social"
	"github.com/careline/social-api/internal/middleware"
	"github.com/careline/social-api/internal/repository/postgres"
	"github.com/careline/social-api/internal/router"
	authService "github.com/careline/social-api/internal/service/auth"
	feedbackService "github.com/careline/social-api/internal/service/feedback"
	messagingService "github.com/careline/social-api/internal/service/messaging"
	profileService "github.com/careline/social-api/internal/service/profile"
	socialService "github.com/careline/social-api/internal/service/social"
	"github.com/careline/social-api/pkg/auth"
	"github.com/careline/social-api/pkg/logger"
	"github.com/careline/social-api/pkg/metrics"
	"github.com/careline/social-api/pkg/security"
)

func main() {
	logger.Setup(nil)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	profileRepo := postgres.NewProfileRepository(db)
	followRepo := postgres.NewFollowRepository(db)
	feedbackRepo := postgres.NewFeedbackRepository(db)
	messageRepo := postgres.NewMessageRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db)
	outboxRepo := postgres.NewOutboxRepository(db)

	// Shared infrastructure
	appMetrics := metrics.NewMetrics("careline", "api")
	jwtSvc := auth.NewJWTService(auth.Config{
		Secret:             cfg.JWT.Secret,
		RefreshSecret:      cfg.JWT.RefreshSecret,
		ExpiryHours:        cfg.JWT.ExpiryHours,
		RefreshExpiryHours: cfg.JWT.RefreshExpiryHours,
	})
	hasher := security.NewBcryptHasher(12)
	emailSvc := email.NewService(cfg.Email)

	// Services
	authSvc := authService.NewService(userRepo, profileRepo, jwtSvc, hasher, emailSvc)
	profileSvc := profileService.NewService(profileRepo, feedbackRepo)
	messagingSvc := messagingService.NewService(messageRepo, notificationRepo, profileRepo, outboxRepo, appMetrics)
	feedbackSvc := feedbackService.NewService(feedbackRepo, profileRepo, outboxRepo, appMetrics)
	socialSvc := socialService.NewService(followRepo, profileRepo, outboxRepo, appMetrics)

	// Handlers
	h := handler.NewHandler()
	authH := authHandler.NewHandler(authSvc)
	profileH := profileHandler.NewHandler(profileSvc)
	messagingH := messagingHandler.NewHandler(messagingSvc)
	feedbackH := feedbackHandler.NewHandler(feedbackSvc)
	socialH := socialHandler.NewHandler(socialSvc)

	authMiddleware := middleware.NewAuthMiddleware(authSvc)

	r := router.NewRouter(authMiddleware, authH, profileH, messagingH, feedbackH, socialH, h, router.Config{
		RateLimitRPS:   cfg.RateLimit.RPS,
		RateLimitBurst: cfg.RateLimit.Burst,
		RequestTimeout: cfg.Server.RequestTimeout,
		CORSConfig:     middleware.DefaultCORSConfig(),
		MetricsPrefix:  "careline",
	})
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()
	log.Info().Int("port", cfg.Server.Port).Msg("server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
