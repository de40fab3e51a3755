package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"ProductRadar/internal/domain"
	"ProductRadar/internal/locales"
	"ProductRadar/internal/ports"
)

// ScheduleConfig carries the simple recurrence fields the scheduler derives
// its three rules from.
type ScheduleConfig struct {
	Location   *time.Location
	DailyTime  string
	WeeklyDay  string
	MonthlyDay int
}

// SchedulerDeps wires the trigger driver and collaborators used by the
// connectivity test.
type SchedulerDeps struct {
	Driver    ports.TriggerDriver
	Pipeline  *Pipeline
	Publisher ports.Publisher
	Source    ports.ProductSource
	Analyzer  ports.Analyzer
	Schedule  ScheduleConfig
	Language  string
	Logger    *slog.Logger
}

// Scheduler owns the three recurring report triggers plus manual invocation
// and the connectivity self-test.
type Scheduler struct {
	driver    ports.TriggerDriver
	pipeline  *Pipeline
	publisher ports.Publisher
	source    ports.ProductSource
	analyzer  ports.Analyzer
	schedule  ScheduleConfig
	language  string
	logger    *slog.Logger

	running bool
}

// NewScheduler builds the scheduler; Configure must run before Start.
func NewScheduler(deps SchedulerDeps) *Scheduler {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	lang := deps.Language
	if lang == "" || !locales.Supported(lang) {
		lang = locales.DefaultLanguage
	}
	return &Scheduler{
		driver:    deps.Driver,
		pipeline:  deps.Pipeline,
		publisher: deps.Publisher,
		source:    deps.Source,
		analyzer:  deps.Analyzer,
		schedule:  deps.Schedule,
		language:  lang,
		logger:    logger,
	}
}

// Configure derives the three recurrence rules from the simple schedule
// fields and registers them with the driver.
func (s *Scheduler) Configure() error {
	hour, minute, err := parseClockTime(s.schedule.DailyTime)
	if err != nil {
		return fmt.Errorf("parse daily time: %w", err)
	}

	weekday := parseWeekday(s.schedule.WeeklyDay, s.logger)
	monthDay := s.schedule.MonthlyDay
	if monthDay < 1 || monthDay > 31 {
		monthDay = 1
	}

	s.driver.Add("daily_report", "Daily Product Hunt Report",
		domain.Recurrence{Hour: hour, Minute: minute},
		s.jobFor(domain.PeriodDaily))
	s.driver.Add("weekly_report", "Weekly Product Hunt Report",
		domain.Recurrence{Hour: hour, Minute: minute, Weekday: &weekday},
		s.jobFor(domain.PeriodWeekly))
	s.driver.Add("monthly_report", "Monthly Product Hunt Report",
		domain.Recurrence{Hour: hour, Minute: minute, MonthDay: monthDay},
		s.jobFor(domain.PeriodMonthly))

	return nil
}

func (s *Scheduler) jobFor(period domain.Period) func(context.Context, time.Time) {
	return func(ctx context.Context, fired time.Time) {
		ids, err := s.pipeline.Run(ctx, period)
		if err != nil {
			s.logger.Error("scheduled run failed", "period", period, "error", err)
			return
		}
		s.logger.Info("scheduled run finished", "period", period, "fired", fired, "messages", len(ids))
	}
}

// Start launches the trigger timeline, logs every registered trigger's next
// fire time and performs one silent connectivity probe. Calling Start while
// running logs a warning and is a no-op.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.running {
		s.logger.Warn("scheduler already running")
		return nil
	}

	if err := s.driver.Start(ctx); err != nil {
		return fmt.Errorf("start trigger driver: %w", err)
	}
	s.running = true

	for _, job := range s.driver.Jobs() {
		s.logger.Info("trigger registered", "trigger", job.ID, "name", job.Name, "next_run", job.NextRun)
	}

	// Surface connectivity problems in logs right away without posting to
	// the channel.
	s.TestConnections(ctx, true)

	s.logger.Info("scheduler started")
	return nil
}

// Stop halts trigger evaluation. Calling Stop while stopped logs a warning
// and is a no-op.
func (s *Scheduler) Stop(ctx context.Context) error {
	if !s.running {
		s.logger.Warn("scheduler is not running")
		return nil
	}

	if err := s.driver.Stop(ctx); err != nil {
		return fmt.Errorf("stop trigger driver: %w", err)
	}
	s.running = false
	s.logger.Info("scheduler stopped")
	return nil
}

// RunManual executes one of the four invokable operations by name.
func (s *Scheduler) RunManual(ctx context.Context, task string) error {
	switch task {
	case string(domain.PeriodDaily), string(domain.PeriodWeekly), string(domain.PeriodMonthly):
		_, err := s.pipeline.Run(ctx, domain.Period(task))
		return err
	case "test":
		if !s.TestConnections(ctx, false) {
			return fmt.Errorf("connectivity test failed")
		}
		return nil
	default:
		return fmt.Errorf("unknown task %q", task)
	}
}

// TestConnections probes the publisher, the content source and the analyzer.
// Silent mode keeps everything out of the channel; loud mode sends a visible
// probe message and a results report.
func (s *Scheduler) TestConnections(ctx context.Context, silent bool) bool {
	tgOK := true
	if err := s.publisher.Probe(ctx, silent); err != nil {
		s.logger.Error("telegram probe failed", "error", err)
		tgOK = false
	} else {
		s.logger.Info("telegram probe succeeded")
	}

	now := time.Now()
	if s.schedule.Location != nil {
		now = now.In(s.schedule.Location)
	}
	from, to := domain.PeriodDaily.Window(now)

	phOK := false
	var probeProducts []domain.Product
	products, err := s.source.FetchTop(ctx, from, to, 1, false)
	switch {
	case err != nil:
		s.logger.Error("product hunt probe failed", "error", err)
	case len(products) == 0:
		s.logger.Warn("product hunt probe returned no data")
	default:
		s.logger.Info("product hunt probe succeeded")
		phOK = true
		probeProducts = products
	}

	aiOK := false
	if len(probeProducts) > 0 {
		analysis, err := s.analyzer.Analyze(ctx, probeProducts[0])
		if err != nil || analysis.Degraded || analysis.Summary == "" {
			s.logger.Error("analyzer probe failed", "error", err, "degraded", analysis.Degraded)
		} else {
			s.logger.Info("analyzer probe succeeded")
			aiOK = true
		}
	} else {
		s.logger.Warn("analyzer probe skipped, no probe data")
	}

	if !silent {
		report := strings.Join([]string{
			"🔧 **System Connection Test Results**",
			"",
			"Telegram Bot: " + probeMark(tgOK),
			"Product Hunt API: " + probeMark(phOK),
			"AI API: " + probeMark(aiOK),
			"",
			"Test Time: " + now.Format("2006-01-02 15:04:05"),
		}, "\n")
		if _, err := s.publisher.Publish(ctx, report); err != nil {
			s.logger.Error("test report publish failed", "error", err)
		}
	}

	return tgOK && phOK && aiOK
}

func probeMark(ok bool) string {
	if ok {
		return "✅ Normal"
	}
	return "❌ Failed"
}

func parseClockTime(value string) (int, int, error) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected HH:MM, got %q", value)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour in %q", value)
	}

	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute in %q", value)
	}

	return hour, minute, nil
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

func parseWeekday(name string, logger *slog.Logger) time.Weekday {
	if day, ok := weekdays[strings.ToLower(strings.TrimSpace(name))]; ok {
		return day
	}
	logger.Warn("unknown weekday, defaulting to monday", "weekday", name)
	return time.Monday
}
