package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	_ "github.com/lib/pq"

	"ProductRadar/internal/config"
	"ProductRadar/internal/domain"
	"ProductRadar/internal/infrastructure/llm"
	"ProductRadar/internal/infrastructure/producthunt"
	"ProductRadar/internal/infrastructure/schedule"
	"ProductRadar/internal/infrastructure/storage"
	"ProductRadar/internal/infrastructure/telegram"
	"ProductRadar/internal/locales"
	"ProductRadar/internal/logging"
	"ProductRadar/internal/ports"
	"ProductRadar/internal/usecase"
)

// Application wires configuration to use cases and owns process lifecycle.
type Application struct {
	cfg       config.Config
	logger    *slog.Logger
	db        *sql.DB
	runs      *storage.PostgresRepository
	scheduler *usecase.Scheduler
}

// New builds a fully wired application instance.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	language := cfg.Language.OutputLanguage
	if !locales.Supported(language) {
		baseLogger.Warn("unsupported output language, using default",
			"language", language, "default", locales.DefaultLanguage)
		language = locales.DefaultLanguage
	}

	httpClient := &http.Client{Timeout: 60 * time.Second}

	var source ports.ProductSource
	if cfg.ProductHunt.DeveloperToken != "" {
		source = producthunt.NewClient(httpClient, cfg.ProductHunt.DeveloperToken, cfg.ProductHunt.APIURL)
	} else {
		baseLogger.Warn("no developer token configured, using public feed without vote data")
		source = producthunt.NewFeedSource(httpClient, cfg.ProductHunt.FeedURL,
			baseLogger.With("component", "source.feed"))
	}

	analyzer, err := llm.New(cfg, language, httpClient, baseLogger)
	if err != nil {
		return nil, fmt.Errorf("build analyzer: %w", err)
	}

	publisher := telegram.NewPublisher(httpClient, cfg.Telegram.BotToken, cfg.Telegram.ChannelID,
		language, baseLogger.With("component", "telegram"))

	var db *sql.DB
	runs := storage.NewPostgresRepository(nil)
	if cfg.Database.DSN != "" {
		db, err = sql.Open("postgres", cfg.Database.DSN)
		if err != nil {
			baseLogger.Error("database open failed, run history disabled", "error", err)
			db = nil
		} else {
			runs = storage.NewPostgresRepository(db)
		}
	}

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Source:    source,
		Analyzer:  analyzer,
		Publisher: publisher,
		Runs:      runs,
		Language:  language,
		Logger:    baseLogger.With("component", "pipeline"),
	})

	driver := schedule.NewDriver(cfg.Scheduling.Location(), baseLogger.With("component", "triggers"))

	scheduler := usecase.NewScheduler(usecase.SchedulerDeps{
		Driver:    driver,
		Pipeline:  pipeline,
		Publisher: publisher,
		Source:    source,
		Analyzer:  analyzer,
		Schedule: usecase.ScheduleConfig{
			Location:   cfg.Scheduling.Location(),
			DailyTime:  cfg.Scheduling.DailyTime,
			WeeklyDay:  cfg.Scheduling.WeeklyDay,
			MonthlyDay: cfg.Scheduling.MonthlyDay,
		},
		Language: language,
		Logger:   baseLogger.With("component", "scheduler"),
	})
	if err := scheduler.Configure(); err != nil {
		if db != nil {
			_ = db.Close()
		}
		return nil, fmt.Errorf("configure scheduler: %w", err)
	}

	return &Application{
		cfg:       cfg,
		logger:    baseLogger,
		db:        db,
		runs:      runs,
		scheduler: scheduler,
	}, nil
}

// RunDaemon starts the trigger timeline and blocks until the context is
// cancelled.
func (a *Application) RunDaemon(ctx context.Context) error {
	if a.db != nil {
		if err := a.runs.EnsureSchema(ctx); err != nil {
			a.logger.Error("run history schema check failed", "error", err)
		}
	}

	if err := a.scheduler.Start(ctx); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}

	<-ctx.Done()

	// The daemon context is already cancelled, give shutdown its own grace
	// window.
	stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.scheduler.Stop(stopCtx); err != nil {
		return fmt.Errorf("stop scheduler: %w", err)
	}
	return nil
}

// RunManual executes one task by name (daily, weekly, monthly or test).
func (a *Application) RunManual(ctx context.Context, task string) error {
	if a.db != nil {
		if err := a.runs.EnsureSchema(ctx); err != nil {
			a.logger.Error("run history schema check failed", "error", err)
		}
	}
	return a.scheduler.RunManual(ctx, task)
}

// TestConnections reports whether all three external dependencies respond.
func (a *Application) TestConnections(ctx context.Context, silent bool) bool {
	return a.scheduler.TestConnections(ctx, silent)
}

// History lists stored run records for one period, newest first.
func (a *Application) History(ctx context.Context, period string, limit int) ([]string, error) {
	if a.db == nil {
		return nil, fmt.Errorf("no database configured")
	}

	p := domain.Period(period)
	if !p.Valid() {
		return nil, fmt.Errorf("unknown period %q", period)
	}

	records, err := a.runs.RecentRuns(ctx, p, limit)
	if err != nil {
		return nil, err
	}

	lines := make([]string, 0, len(records))
	for _, rec := range records {
		lines = append(lines, fmt.Sprintf("%s  %s  sent=%d failed=%d messages=%d",
			rec.StartedAt.Format("2006-01-02 15:04"), rec.Period,
			rec.SentCount, rec.FailedCount, len(rec.MessageIDs)))
	}
	return lines, nil
}

// Close releases held resources.
func (a *Application) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}
