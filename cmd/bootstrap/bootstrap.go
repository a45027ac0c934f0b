package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"patient-records/config"
	"patient-records/internal/delivery/cli"
	"patient-records/internal/delivery/cli/handler"
	"patient-records/internal/domain/entity"
	domainRepo "patient-records/internal/domain/repository"
	"patient-records/internal/infrastructure/cache"
	"patient-records/internal/infrastructure/database"
	"patient-records/internal/infrastructure/logging"
	"patient-records/internal/repository"
	"patient-records/internal/service"
	"patient-records/internal/usecase"
	"patient-records/pkg/apperror"
	"patient-records/pkg/validator"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	Logger      *logging.Logger
	PatientRepo domainRepo.PatientRepository
	Root        *cobra.Command
}

// New creates a new App instance with all dependencies initialized
func New(ctx context.Context) (*App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return NewWithConfig(ctx, cfg)
}

// NewWithConfig wires the application from an already loaded configuration
func NewWithConfig(ctx context.Context, cfg *config.Config) (*App, error) {
	app := &App{Config: cfg}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to open logs: %w", err)
	}
	app.Logger = logger

	runID := uuid.New()
	log := logger.WithField("run_id", runID.String())
	log.WithField("backend", cfg.Store.Backend).Debug("Configuration loaded successfully")

	observer := service.NewPatientEventLogger(log)

	patientRepo, err := newPatientRepository(ctx, cfg, runID, log, observer)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.PatientRepo = patientRepo

	app.Root = initializeCommands(log, observer, patientRepo)
	return app, nil
}

// newPatientRepository opens the configured record store
func newPatientRepository(ctx context.Context, cfg *config.Config, runID uuid.UUID, log *logrus.Entry, observer entity.Observer) (domainRepo.PatientRepository, error) {
	var patientRepo domainRepo.PatientRepository

	switch cfg.Store.Backend {
	case config.BackendPostgres:
		db, err := database.NewPostgresConnection(cfg.DB, log)
		if err != nil {
			log.WithField("error_kind", "storage").Error(err.Error())
			return nil, apperror.NewStorage("connect", err)
		}
		auditService := service.NewAuditService(runID, log, repository.NewAuditLogRepository())
		patientRepo = repository.NewPatientPostgresRepository(db, log, auditService, entity.WithObserver(observer))
	case config.BackendFile:
		patientRepo = repository.NewPatientFileRepository(cfg.Store.FilePath, log, entity.WithObserver(observer))
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}

	if !cfg.Redis.Enabled {
		return patientRepo, nil
	}

	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis, log)
	if err != nil {
		// the count cache is optional
		log.Warnf("Patient count cache disabled: %+v", err)
		return patientRepo, nil
	}
	return repository.NewPatientCachedRepository(patientRepo, redisClient, cfg.Redis.CountTTL, log), nil
}

// initializeCommands creates the command tree
func initializeCommands(log *logrus.Entry, observer entity.Observer, patientRepo domainRepo.PatientRepository) *cobra.Command {
	customValidator := validator.NewValidator()

	patientUsecase := usecase.NewPatientUsecase(log, observer, patientRepo)
	patientHandler := handler.NewPatientHandler(patientUsecase, customValidator)

	router := cli.NewRouter(patientHandler)
	return router.Setup()
}

// Run executes the command line given in args
func (app *App) Run(ctx context.Context, args []string) error {
	app.Root.SetArgs(args)
	return app.Root.ExecuteContext(ctx)
}

// Close closes the record store and flushes the logs
func (app *App) Close() error {
	var errs []error
	if app.PatientRepo != nil {
		errs = append(errs, app.PatientRepo.Close())
	}
	if app.Logger != nil {
		errs = append(errs, app.Logger.Close())
	}
	return errors.Join(errs...)
}
