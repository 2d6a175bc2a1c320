package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"adventure-backend/internal/config"
	"adventure-backend/internal/handlers"
	"adventure-backend/internal/middleware"
	"adventure-backend/internal/repository"
	"adventure-backend/internal/services"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func Run() {
	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Setup logger
	setupLogger(cfg.Log.Level)

	// Connect to database
	db, err := pgxpool.New(context.Background(), cfg.Database.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}
	log.Info().Msg("Database connection established")

	// Initialize repositories
	participantRepo := repository.NewParticipantRepository(db)
	adventureRepo := repository.NewAdventureRepository(db)
	invitationRepo := repository.NewInvitationRepository(db)
	friendRepo := repository.NewFriendRepository(db)
	positionRepo := repository.NewPositionRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	identityRepo := repository.NewIdentityRepository(db)

	// Initialize external collaborators
	tokenService := services.NewTokenService(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTTLMinutes)*time.Minute,
		time.Duration(cfg.JWT.RefreshTTLDays)*24*time.Hour,
	)
	emailSender := services.NewSMTPSender(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From)
	googleVerifier := services.NewHTTPGoogleVerifier(cfg.JWT.GoogleTokenInfoURL)

	var pushNotifier services.PushNotifier = services.NopNotifier{}
	if cfg.APNS.Enabled {
		pushNotifier, err = services.NewAPNSNotifier(cfg.APNS.P12File, cfg.APNS.P12Password, cfg.APNS.Topic, cfg.APNS.Production)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create APNs notifier")
		}
	}

	// Initialize hub and event publisher
	wsHub := services.NewWSHub()
	publisher := services.NewPublisher(notificationRepo, participantRepo, wsHub, pushNotifier)

	// Initialize services
	identityService := services.NewIdentityService(identityRepo, participantRepo, emailSender, tokenService, googleVerifier)
	participantService, err := services.NewParticipantService(
		participantRepo,
		notificationRepo,
		cfg.AWS.Region,
		cfg.AWS.S3Bucket,
		cfg.AWS.AccessKey,
		cfg.AWS.SecretKey,
		cfg.AWS.Endpoint,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create participant service")
	}
	adventureService := services.NewAdventureService(adventureRepo, publisher)
	invitationService := services.NewInvitationService(invitationRepo, adventureRepo, identityService, emailSender, publisher, cfg.Server.BaseURL)
	friendService := services.NewFriendService(friendRepo, participantRepo, publisher)
	positionService := services.NewPositionService(positionRepo, adventureRepo, publisher)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(identityService)
	participantHandler := handlers.NewParticipantHandler(participantService, positionService)
	adventureHandler := handlers.NewAdventureHandler(adventureService, positionService)
	invitationHandler := handlers.NewInvitationHandler(invitationService)
	friendHandler := handlers.NewFriendHandler(friendService)
	positionHandler := handlers.NewPositionHandler(positionService)
	wsHandler := handlers.NewWebSocketHandler(wsHub, tokenService)

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(corsMiddleware)

	// Routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public routes
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.Refresh)
		r.Post("/auth/google", authHandler.GoogleSignIn)
		r.Post("/auth/confirm-email", authHandler.ConfirmEmail)
		r.Post("/auth/forgot-password", authHandler.ForgotPassword)
		r.Post("/auth/reset-password", authHandler.ResetPassword)
		r.Post("/adventures/{adventure_id}/invitations/accept", invitationHandler.Accept)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(tokenService))

			r.Post("/auth/revoke", authHandler.Revoke)

			r.Get("/participants/me", participantHandler.Me)
			r.Put("/participants/me", participantHandler.UpdateProfile)
			r.Delete("/participants/me", participantHandler.DeleteAccount)
			r.Put("/participants/me/push-token", participantHandler.UpdatePushToken)
			r.Post("/participants/me/photo-upload", participantHandler.PhotoUpload)
			r.Get("/participants/me/notifications", participantHandler.Notifications)
			r.Get("/participants/me/positions", participantHandler.Positions)

			r.Post("/adventures", adventureHandler.Create)
			r.Get("/adventures", adventureHandler.List)
			r.Get("/adventures/{adventure_id}", adventureHandler.Get)
			r.Put("/adventures/{adventure_id}", adventureHandler.Update)
			r.Delete("/adventures/{adventure_id}", adventureHandler.Delete)
			r.Post("/adventures/{adventure_id}/start", adventureHandler.Start)
			r.Post("/adventures/{adventure_id}/complete", adventureHandler.Complete)
			r.Get("/adventures/{adventure_id}/participants", adventureHandler.Participants)
			r.Post("/adventures/{adventure_id}/distance", adventureHandler.AddDistance)
			r.Get("/adventures/{adventure_id}/positions", adventureHandler.Positions)
			r.Post("/adventures/{adventure_id}/invitations", invitationHandler.Invite)
			r.Get("/adventures/{adventure_id}/invitations", invitationHandler.List)
			r.Post("/invitations/{invitation_id}/reject", invitationHandler.Reject)

			r.Post("/friends/invitations", friendHandler.Invite)
			r.Put("/friends/invitations/{request_id}", friendHandler.Update)
			r.Get("/friends/invitations/pending", friendHandler.Pending)
			r.Get("/friends", friendHandler.List)

			r.Post("/positions", positionHandler.Record)
		})
	})

	// WebSocket route
	r.Get("/ws", wsHandler.HandleWebSocket)

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("host", cfg.Server.Host).
			Int("port", cfg.Server.Port).
			Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// setupLogger configures zerolog logger
func setupLogger(level string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// corsMiddleware handles CORS
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
