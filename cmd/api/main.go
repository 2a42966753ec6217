package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"proeventos/config"
	"proeventos/internal/adapters/auth"
	"proeventos/internal/adapters/email"
	"proeventos/internal/adapters/storage"
	delivery "proeventos/internal/delivery/http"
	"proeventos/internal/delivery/http/controllers"
	"proeventos/internal/delivery/http/middleware"
	"proeventos/internal/repository/postgres"
	"proeventos/internal/services"
)

const serviceTimeout = 10 * time.Second

// @title ProEventos API
// @version 1.0
// @description Event management backend: accounts, events, ticket lots, speakers, and social links.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config error: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger := config.NewLogger()
	logger.Info("starting proeventos api", "environment", cfg.Environment, "port", cfg.Port)

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("failed to reach database", "err", err)
		os.Exit(1)
	}

	if err := postgres.MigrateUp(cfg.DBUrl, cfg.MigrationsPath); err != nil {
		logger.Error("migrations failed", "err", err)
		os.Exit(1)
	}

	// Adapters
	jwt := auth.NewJWT(cfg.JWTSecret)
	hasher := auth.NewBcryptHasher(bcrypt.DefaultCost)
	imageStore := storage.NewLocalImageStore(cfg.UploadDir)
	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFrom,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:             cfg.SESRegion,
			AccessKeyID:        cfg.SESAccessKeyID,
			SecretAccessKey:    cfg.SESSecretKey,
			InsecureSkipVerify: cfg.SESSkipVerify,
		},
	}, logger)
	if err != nil {
		logger.Error("failed to create mailer", "err", err)
		os.Exit(1)
	}

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	lotRepo := postgres.NewLotRepository(db)
	speakerRepo := postgres.NewSpeakerRepository(db)
	linkRepo := postgres.NewSocialLinkRepository(db)

	// Services
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer())
	accountService := services.NewAccountService(userRepo, hasher, jwt, cfg.JWTExpiry, imageStore, emailService)
	eventService := services.NewEventService(eventRepo, lotRepo, linkRepo, imageStore, serviceTimeout)
	lotService := services.NewLotService(lotRepo)
	speakerService := services.NewSpeakerService(speakerRepo)
	socialLinkService := services.NewSocialLinkService(linkRepo, eventRepo, speakerRepo)

	// Controllers
	mux := delivery.NewRouter(
		db,
		jwt,
		controllers.NewAccountController(logger, accountService),
		controllers.NewEventController(logger, eventService),
		controllers.NewLotController(logger, lotService),
		controllers.NewSpeakerController(logger, speakerService),
		controllers.NewSocialLinkController(logger, socialLinkService),
	)

	handler := middleware.CORS(cfg.CORSAllowedOrigins, middleware.LoggingMiddleware(logger, mux))

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "err", err)
		}
	}()

	shutdown(server, logger)
}

func shutdown(server *http.Server, logger *slog.Logger) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "err", err)
	}
}
