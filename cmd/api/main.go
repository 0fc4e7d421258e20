package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/httplog/v3"

	"github.com/terceiro-labs/provision-backend/internal/config"
	appHTTP "github.com/terceiro-labs/provision-backend/internal/handler/http"
	"github.com/terceiro-labs/provision-backend/internal/pkg/database"
	"github.com/terceiro-labs/provision-backend/internal/pkg/jwt"
	"github.com/terceiro-labs/provision-backend/internal/pkg/storage"
	"github.com/terceiro-labs/provision-backend/internal/repository/postgresql"
	serviceAuth "github.com/terceiro-labs/provision-backend/internal/service/auth"
	serviceCompany "github.com/terceiro-labs/provision-backend/internal/service/company"
	dashboardService "github.com/terceiro-labs/provision-backend/internal/service/dashboard"
	employeeService "github.com/terceiro-labs/provision-backend/internal/service/employee"
	"github.com/terceiro-labs/provision-backend/internal/service/file"
	"github.com/terceiro-labs/provision-backend/internal/service/master"
	provisionService "github.com/terceiro-labs/provision-backend/internal/service/provision"
	punchService "github.com/terceiro-labs/provision-backend/internal/service/punch"
	reportService "github.com/terceiro-labs/provision-backend/internal/service/report"
	userService "github.com/terceiro-labs/provision-backend/internal/service/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	logFormat := httplog.SchemaECS.Concise(!cfg.App.IsProduction())
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.App.SlogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "provision-backend"),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns:        cfg.Database.MaxConns,
		MinConns:        cfg.Database.MinConns,
		MaxConnLifetime: time.Hour,
	})
	if err != nil {
		logger.Error("Error connecting to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	transactor := postgresql.NewTransactor(db)
	userRepo := postgresql.NewUserRepository(db)
	refreshTokenRepo := postgresql.NewRefreshTokenRepository(db)
	stateRepo := postgresql.NewStateRepository(db)
	cityRepo := postgresql.NewCityRepository(db)
	locationRepo := postgresql.NewLocationRepository(db)
	positionRepo := postgresql.NewPositionRepository(db)
	companyRepo := postgresql.NewCompanyRepository(db)
	managerRepo := postgresql.NewManagerRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	provisionRepo := postgresql.NewProvisionRepository(db)
	historyRepo := postgresql.NewProvisionHistoryRepository(db)
	punchRepo := postgresql.NewPunchRepository(db)
	reportRepo := postgresql.NewReportRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
		if err != nil {
			logger.Error("Failed to initialize local storage", "error", err)
			os.Exit(1)
		}
	default:
		logger.Error("Unsupported storage type", "type", cfg.Storage.Type)
		os.Exit(1)
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration, cfg.App.SecureCookies)
	fileService := file.NewFileService(fileStorage)
	authSvc := serviceAuth.NewAuthService(transactor, userRepo, JWTService, refreshTokenRepo)
	userSvc := userService.NewUserService(userRepo, refreshTokenRepo, fileService)
	masterSvc := master.NewMasterService(stateRepo, cityRepo, locationRepo, positionRepo)
	companySvc := serviceCompany.NewCompanyService(companyRepo, managerRepo)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, fileService)
	provisionSvc := provisionService.NewProvisionService(provisionRepo, historyRepo, locationRepo, transactor, fileService, cfg.App.OnSiteRadiusMeters)
	punchSvc := punchService.NewPunchService(punchRepo, fileService)
	dashboardSvc := dashboardService.NewDashboardService(dashboardRepo, provisionRepo)
	reportSvc := reportService.NewReportService(reportRepo)

	router := appHTTP.NewRouter(appHTTP.RouterOptions{
		Logger:      logger,
		LogLevel:    cfg.App.SlogLevel(),
		CORSOrigins: cfg.App.CORSOrigins,
	}, JWTService, appHTTP.Handlers{
		Auth:      appHTTP.NewAuthHandler(JWTService, authSvc),
		User:      appHTTP.NewUserHandler(userSvc),
		Master:    appHTTP.NewMasterHandler(masterSvc),
		Company:   appHTTP.NewCompanyHandler(companySvc, employeeSvc),
		Employee:  appHTTP.NewEmployeeHandler(employeeSvc),
		Provision: appHTTP.NewProvisionHandler(provisionSvc),
		Punch:     appHTTP.NewPunchHandler(punchSvc),
		Dashboard: appHTTP.NewDashboardHandler(dashboardSvc),
		Report:    appHTTP.NewReportHandler(reportSvc),
		File:      appHTTP.NewFileHandler(fileService),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logger.Info("Server running", "addr", "http://localhost"+server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
}
