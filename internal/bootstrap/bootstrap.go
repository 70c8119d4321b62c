package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mkravchenko/receiptdrop/internal/config"
	"github.com/mkravchenko/receiptdrop/internal/core/ports"
	"github.com/mkravchenko/receiptdrop/internal/core/usecase"
	"github.com/mkravchenko/receiptdrop/internal/infrastructure/cloudinary"
	"github.com/mkravchenko/receiptdrop/internal/infrastructure/export/xlsx"
	"github.com/mkravchenko/receiptdrop/internal/infrastructure/inspect"
	natsqueue "github.com/mkravchenko/receiptdrop/internal/infrastructure/queue/nats"
	"github.com/mkravchenko/receiptdrop/internal/infrastructure/repository/postgres"
	"github.com/mkravchenko/receiptdrop/internal/infrastructure/resilience"
	"github.com/mkravchenko/receiptdrop/internal/infrastructure/settings/localfs"
)

type App struct {
	Config config.Config
	Logger *slog.Logger

	Sessions ports.SubmissionSessions
	Setup    ports.SetupService
	History  ports.HistoryService

	closeFn func()
}

func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	settings, err := localfs.New(cfg.SettingsPath)
	if err != nil {
		return nil, fmt.Errorf("init settings store: %w", err)
	}

	setupUC := usecase.NewSetupUseCase(cfg.CloudinaryCloudName, cfg.CloudinaryUploadPreset, settings, logger)
	uploader := cloudinary.New(cfg.CloudinaryBaseURL)

	var closers []func()

	var journal ports.SubmissionJournal
	if cfg.JournalEnabled {
		db, err := postgres.OpenDB(cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		repo := postgres.NewSubmissionRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("ensure schema: %w", err)
		}
		journal = repo
		closers = append(closers, func() { _ = db.Close() })
	}

	var events ports.EventPublisher
	if cfg.EventsEnabled {
		publisher, err := natsqueue.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, natsqueue.Options{
			ResilienceExecutor: resilience.NewExecutor(resilience.DefaultConfig()),
		})
		if err != nil {
			return nil, fmt.Errorf("init event publisher: %w", err)
		}
		events = publisher
		closers = append(closers, publisher.Close)
	}

	factory := usecase.NewControllerFactory(usecase.ControllerDeps{
		Resolver:  setupUC,
		Uploader:  uploader,
		Settings:  settings,
		Journal:   journal,
		Events:    events,
		Inspector: inspect.NewPDFInspector(),
		Logger:    logger,
	})
	historyUC := usecase.NewHistoryUseCase(journal, xlsx.New())

	return &App{
		Config:   cfg,
		Logger:   logger,
		Sessions: factory,
		Setup:    setupUC,
		History:  historyUC,
		closeFn: func() {
			for _, closeFn := range closers {
				closeFn()
			}
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
