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
	"golang.org/x/crypto/bcrypt"

	"github.com/clinicore/clinicore/internal/config"
	"github.com/clinicore/clinicore/internal/handler"
	appointmentHandler "github.com/clinicore/clinicore/internal/handler/appointment"
	authHandler "github.com/clinicore/clinicore/internal/handler/auth"
	consultationHandler "github.com/clinicore/clinicore/internal/handler/consultation"
	employeeHandler "github.com/clinicore/clinicore/internal/handler/employee"
	patientHandler "github.com/clinicore/clinicore/internal/handler/patient"
	specialtyHandler "github.com/clinicore/clinicore/internal/handler/specialty"
	userHandler "github.com/clinicore/clinicore/internal/handler/user"
	"github.com/clinicore/clinicore/internal/middleware"
	"github.com/clinicore/clinicore/internal/repository/postgres"
	"github.com/clinicore/clinicore/internal/router"
	appointmentService "github.com/clinicore/clinicore/internal/service/appointment"
	authService "github.com/clinicore/clinicore/internal/service/auth"
	consultationService "github.com/clinicore/clinicore/internal/service/consultation"
	employeeService "github.com/clinicore/clinicore/internal/service/employee"
	patientService "github.com/clinicore/clinicore/internal/service/patient"
	specialtyService "github.com/clinicore/clinicore/internal/service/specialty"
	userService "github.com/clinicore/clinicore/internal/service/user"
	jwtauth "github.com/clinicore/clinicore/pkg/auth"
	"github.com/clinicore/clinicore/pkg/logger"
	"github.com/clinicore/clinicore/pkg/security"
	"github.com/clinicore/clinicore/pkg/validator"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger.Setup(&logger.Config{
		Level:  cfg.Logging.Level,
		Pretty: cfg.Logging.Pretty,
	})

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	patientRepo := postgres.NewPatientRepository(db)
	employeeRepo := postgres.NewEmployeeRepository(db)
	specialtyRepo := postgres.NewSpecialtyRepository(db)
	userRepo := postgres.NewUserRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)
	recordRepo := postgres.NewMedicalRecordRepository(db)

	tokens := jwtauth.NewTokenService(cfg.JWT.Secret, cfg.JWT.Expiry())
	hasher := security.NewBcryptHasher(bcrypt.DefaultCost)
	validate := validator.New()

	patientSvc := patientService.NewService(patientRepo)
	employeeSvc := employeeService.NewService(employeeRepo)
	specialtySvc := specialtyService.NewService(specialtyRepo)
	userSvc := userService.NewService(userRepo, employeeRepo, hasher)
	authSvc := authService.NewService(userRepo, tokens, hasher)
	appointmentSvc := appointmentService.NewService(appointmentRepo, patientRepo, employeeRepo, recordRepo)
	consultationSvc := consultationService.NewService(appointmentRepo, recordRepo)

	authMiddleware := middleware.NewAuthMiddleware(authSvc)

	h := handler.NewHandler(patientSvc, appointmentSvc)
	authH := authHandler.NewHandler(authSvc, validate)
	patientH := patientHandler.NewHandler(patientSvc, validate)
	employeeH := employeeHandler.NewHandler(employeeSvc, specialtySvc, validate)
	specialtyH := specialtyHandler.NewHandler(specialtySvc, validate)
	userH := userHandler.NewHandler(userSvc, validate)
	appointmentH := appointmentHandler.NewHandler(appointmentSvc, validate)
	consultationH := consultationHandler.NewHandler(consultationSvc, validate)

	r := router.New(
		authMiddleware,
		authH,
		patientH,
		employeeH,
		specialtyH,
		userH,
		appointmentH,
		consultationH,
		h,
		router.Config{
			RateLimit: middleware.RateLimiterConfig{
				RPS:   cfg.RateLimit.RPS,
				Burst: cfg.RateLimit.Burst,
			},
			CORS:          corsConfig(cfg),
			TemplateGlob:  cfg.Server.TemplateGlob,
			StaticDir:     cfg.Server.StaticDir,
			MetricsPrefix: "clinicore",
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

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

func corsConfig(cfg *config.Config) middleware.CORSConfig {
	c := middleware.DefaultCORSConfig()
	if len(cfg.Security.AllowedOrigins) > 0 {
		c.AllowOrigins = cfg.Security.AllowedOrigins
	}
	return c
}
