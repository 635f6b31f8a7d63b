package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/medvault/records-api/internal/config"
	"github.com/medvault/records-api/internal/email"
	"github.com/medvault/records-api/internal/handler"
	accountHandler "github.com/medvault/records-api/internal/handler/account"
	appointmentHandler "github.com/medvault/records-api/internal/handler/appointment"
	authHandler "github.com/medvault/records-api/internal/handler/auth"
	catalogHandler "github.com/medvault/records-api/internal/handler/catalog"
	doctorHandler "github.com/medvault/records-api/internal/handler/doctor"
	hospitalHandler "github.com/medvault/records-api/internal/handler/hospital"
	prescriptionHandler "github.com/medvault/records-api/internal/handler/prescription"
	profileHandler "github.com/medvault/records-api/internal/handler/profile"
	recordHandler "github.com/medvault/records-api/internal/handler/record"
	storageHandler "github.com/medvault/records-api/internal/handler/storage"
	"github.com/medvault/records-api/internal/middleware"
	"github.com/medvault/records-api/internal/model"
	"github.com/medvault/records-api/internal/repository/postgres"
	"github.com/medvault/records-api/internal/router"
	accountService "github.com/medvault/records-api/internal/service/account"
	appointmentService "github.com/medvault/records-api/internal/service/appointment"
	authService "github.com/medvault/records-api/internal/service/auth"
	catalogService "github.com/medvault/records-api/internal/service/catalog"
	doctorService "github.com/medvault/records-api/internal/service/doctor"
	hospitalService "github.com/medvault/records-api/internal/service/hospital"
	prescriptionService "github.com/medvault/records-api/internal/service/prescription"
	profileService "github.com/medvault/records-api/internal/service/profile"
	recordService "github.com/medvault/records-api/internal/service/record"
	storageService "github.com/medvault/records-api/internal/service/storage"
	pkgauth "github.com/medvault/records-api/pkg/auth"
	"github.com/medvault/records-api/pkg/logger"
	"github.com/medvault/records-api/pkg/security"
	"github.com/medvault/records-api/pkg/validator"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLog := setupLogger(cfg.Logging)
	appLog.Info("configuration loaded")

	if err := validator.RegisterCustomRules(); err != nil {
		log.Fatal().Err(err).Msg("failed to register validation rules")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Repositories
	accountRepo := postgres.NewAccountRepository(db)
	profileRepo := postgres.NewProfileRepository(db)
	hospitalRepo := postgres.NewHospitalRepository(db)
	doctorRepo := postgres.NewDoctorRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)
	recordRepo := postgres.NewMedicalRecordRepository(db)
	prescriptionRepo := postgres.NewPrescriptionRepository(db)
	fieldRepo := postgres.NewCatalogRepository(db, model.CatalogField)
	medicationRepo := postgres.NewCatalogRepository(db, model.CatalogMedication)
	recordTypeRepo := postgres.NewCatalogRepository(db, model.CatalogRecordType)
	specializationRepo := postgres.NewCatalogRepository(db, model.CatalogSpecialization)
	purposeRepo := postgres.NewCatalogRepository(db, model.CatalogPurpose)

	// Collaborators
	tokenSvc := pkgauth.NewJWTService(pkgauth.Config{
		Secret:      cfg.JWT.Secret,
		Issuer:      cfg.JWT.Issuer,
		ExpiryHours: cfg.JWT.ExpiryHours,
	})
	revocations, err := revocationStore(cfg.Redis.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	hasher := security.NewBcryptHasher(0)
	mailer := email.NewService(cfg.SMTP)

	// Services
	authSvc := authService.NewService(accountRepo, tokenSvc, revocations, hasher)
	accountSvc := accountService.NewService(accountRepo, hospitalRepo, hasher)
	profileSvc := profileService.NewService(profileRepo, accountRepo)
	hospitalSvc := hospitalService.NewService(hospitalRepo)
	doctorSvc := doctorService.NewService(doctorRepo, hospitalRepo, specializationRepo)
	appointmentSvc := appointmentService.NewService(appointmentRepo, profileRepo, hospitalRepo, accountRepo, mailer)
	recordSvc := recordService.NewService(recordRepo, profileRepo, fieldRepo, recordTypeRepo)
	prescriptionSvc := prescriptionService.NewService(prescriptionRepo, profileRepo, specializationRepo, medicationRepo)
	storageSvc := storageService.NewService(cfg.Storage)

	// Handlers
	h := handler.NewHandler(db)
	authH := authHandler.NewHandler(authSvc)
	authMW := middleware.NewAuthMiddleware(authSvc)

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.CORS.AllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.CORS.AllowOrigins
	}

	r := router.NewRouter(
		authMW,
		authH,
		h,
		router.Config{
			RateLimit:     rate.Limit(cfg.Server.RateLimitRPS),
			RateBurst:     cfg.Server.RateLimitBurst,
			Timeout:       time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
			CORSConfig:    corsConfig,
			MetricsPrefix: "records_api",
		},
		accountHandler.NewHandler(accountSvc),
		profileHandler.NewHandler(profileSvc),
		hospitalHandler.NewHandler(hospitalSvc),
		doctorHandler.NewHandler(doctorSvc),
		appointmentHandler.NewHandler(appointmentSvc),
		recordHandler.NewHandler(recordSvc),
		prescriptionHandler.NewHandler(prescriptionSvc),
		catalogHandler.NewHandler(catalogService.NewService(model.CatalogField, fieldRepo), "fields"),
		catalogHandler.NewHandler(catalogService.NewService(model.CatalogMedication, medicationRepo), "medications"),
		catalogHandler.NewHandler(catalogService.NewService(model.CatalogRecordType, recordTypeRepo), "record-types"),
		catalogHandler.NewHandler(catalogService.NewService(model.CatalogSpecialization, specializationRepo), "specializations"),
		catalogHandler.NewHandler(catalogService.NewService(model.CatalogPurpose, purposeRepo), "purposes"),
		storageHandler.NewHandler(storageSvc),
	)
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
}

func setupLogger(cfg config.LoggingConfig) *logger.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	return logger.NewLogger(&logger.Config{
		Level:      level,
		TimeFormat: time.RFC3339,
		Output:     os.Stdout,
		Pretty:     cfg.Pretty,
	})
}

func revocationStore(url string) (pkgauth.RevocationStore, error) {
	if url == "" {
		return pkgauth.NoopRevocationStore{}, nil
	}
	return pkgauth.NewRedisRevocationStore(url)
}
