package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"time"

	"ProductRadar/internal/domain"
	"ProductRadar/internal/ports"
)

type fakeDriver struct {
	entries []struct {
		id   string
		rule domain.Recurrence
	}
	starts int
	stops  int
}

func (f *fakeDriver) Add(id, _ string, rule domain.Recurrence, _ func(context.Context, time.Time)) {
	f.entries = append(f.entries, struct {
		id   string
		rule domain.Recurrence
	}{id, rule})
}

func (f *fakeDriver) Start(context.Context) error { f.starts++; return nil }
func (f *fakeDriver) Stop(context.Context) error  { f.stops++; return nil }
func (f *fakeDriver) Jobs() []ports.TriggerInfo   { return nil }

func newTestScheduler(driver ports.TriggerDriver, src *fakeSource, an *fakeAnalyzer, pub *fakePublisher) *Scheduler {
	pipeline := NewPipeline(PipelineDeps{
		Source:    src,
		Analyzer:  an,
		Publisher: pub,
		Language:  "en",
		ItemDelay: time.Nanosecond,
		Sleep:     func(context.Context, time.Duration) {},
	})
	return NewScheduler(SchedulerDeps{
		Driver:    driver,
		Pipeline:  pipeline,
		Publisher: pub,
		Source:    src,
		Analyzer:  an,
		Schedule: ScheduleConfig{
			Location:   time.UTC,
			DailyTime:  "09:30",
			WeeklyDay:  "monday",
			MonthlyDay: 1,
		},
		Language: "en",
		Logger:   slog.Default(),
	})
}

func TestSchedulerConfigure(t *testing.T) {
	t.Parallel()

	driver := &fakeDriver{}
	s := newTestScheduler(driver, &fakeSource{}, &fakeAnalyzer{}, &fakePublisher{})

	if err := s.Configure(); err != nil {
		t.Fatalf("Configure error: %v", err)
	}
	if len(driver.entries) != 3 {
		t.Fatalf("expected 3 triggers, got %d", len(driver.entries))
	}

	daily := driver.entries[0]
	if daily.id != "daily_report" || daily.rule.Hour != 9 || daily.rule.Minute != 30 {
		t.Fatalf("unexpected daily trigger: %+v", daily)
	}
	if daily.rule.Weekday != nil || daily.rule.MonthDay != 0 {
		t.Fatalf("daily trigger should have no day binding: %+v", daily.rule)
	}

	weekly := driver.entries[1]
	if weekly.id != "weekly_report" || weekly.rule.Weekday == nil || *weekly.rule.Weekday != time.Monday {
		t.Fatalf("unexpected weekly trigger: %+v", weekly)
	}

	monthly := driver.entries[2]
	if monthly.id != "monthly_report" || monthly.rule.MonthDay != 1 {
		t.Fatalf("unexpected monthly trigger: %+v", monthly)
	}
}

func TestSchedulerConfigureBadClock(t *testing.T) {
	t.Parallel()

	s := newTestScheduler(&fakeDriver{}, &fakeSource{}, &fakeAnalyzer{}, &fakePublisher{})
	s.schedule.DailyTime = "25:00"

	if err := s.Configure(); err == nil {
		t.Fatalf("expected error for invalid daily time")
	}
}

func TestSchedulerConfigureClampsMonthDay(t *testing.T) {
	t.Parallel()

	driver := &fakeDriver{}
	s := newTestScheduler(driver, &fakeSource{}, &fakeAnalyzer{}, &fakePublisher{})
	s.schedule.MonthlyDay = 45

	if err := s.Configure(); err != nil {
		t.Fatalf("Configure error: %v", err)
	}
	if got := driver.entries[2].rule.MonthDay; got != 1 {
		t.Fatalf("expected month day clamped to 1, got %d", got)
	}
}

func TestSchedulerStartStopIdempotent(t *testing.T) {
	t.Parallel()

	driver := &fakeDriver{}
	src := &fakeSource{products: testProducts(1)}
	s := newTestScheduler(driver, src, &fakeAnalyzer{}, &fakePublisher{})
	ctx := context.Background()

	if err := s.Start(ctx); err != nil {
		t.Fatalf("Start error: %v", err)
	}
	if err := s.Start(ctx); err != nil {
		t.Fatalf("second Start error: %v", err)
	}
	if driver.starts != 1 {
		t.Fatalf("driver started %d times", driver.starts)
	}

	if err := s.Stop(ctx); err != nil {
		t.Fatalf("Stop error: %v", err)
	}
	if err := s.Stop(ctx); err != nil {
		t.Fatalf("second Stop error: %v", err)
	}
	if driver.stops != 1 {
		t.Fatalf("driver stopped %d times", driver.stops)
	}
}

func TestSchedulerRunManual(t *testing.T) {
	t.Parallel()

	src := &fakeSource{products: testProducts(1)}
	s := newTestScheduler(&fakeDriver{}, src, &fakeAnalyzer{}, &fakePublisher{})
	ctx := context.Background()

	if err := s.RunManual(ctx, "daily"); err != nil {
		t.Fatalf("manual daily error: %v", err)
	}
	if src.calls == 0 {
		t.Fatalf("manual daily did not reach the source")
	}

	if err := s.RunManual(ctx, "nonsense"); err == nil {
		t.Fatalf("expected error for unknown task")
	}
}

func TestSchedulerRunManualTest(t *testing.T) {
	t.Parallel()

	// Healthy collaborators: the test task succeeds.
	src := &fakeSource{products: testProducts(1)}
	s := newTestScheduler(&fakeDriver{}, src, &fakeAnalyzer{}, &fakePublisher{})
	if err := s.RunManual(context.Background(), "test"); err != nil {
		t.Fatalf("manual test error: %v", err)
	}

	// Broken publisher: the test task fails.
	broken := &fakePublisher{probeErr: fmt.Errorf("unauthorized")}
	s = newTestScheduler(&fakeDriver{}, src, &fakeAnalyzer{}, broken)
	if err := s.RunManual(context.Background(), "test"); err == nil {
		t.Fatalf("expected manual test to fail on broken publisher")
	}
}

func TestConnectionsLoudReport(t *testing.T) {
	t.Parallel()

	src := &fakeSource{products: testProducts(1)}
	pub := &fakePublisher{}
	s := newTestScheduler(&fakeDriver{}, src, &fakeAnalyzer{}, pub)

	if ok := s.TestConnections(context.Background(), false); !ok {
		t.Fatalf("expected all probes to pass")
	}

	if len(pub.published) == 0 {
		t.Fatalf("loud mode should publish a report")
	}
	report := pub.published[len(pub.published)-1]
	if !strings.Contains(report, "System Connection Test Results") {
		t.Fatalf("unexpected report:\n%s", report)
	}
	if strings.Count(report, "✅") != 3 {
		t.Fatalf("expected three passing marks:\n%s", report)
	}
}

func TestConnectionsReportsFailures(t *testing.T) {
	t.Parallel()

	src := &fakeSource{err: fmt.Errorf("api down")}
	pub := &fakePublisher{}
	s := newTestScheduler(&fakeDriver{}, src, &fakeAnalyzer{}, pub)

	if ok := s.TestConnections(context.Background(), false); ok {
		t.Fatalf("expected probe failure with broken source")
	}

	report := pub.published[len(pub.published)-1]
	// The source probe fails and the analyzer probe is skipped without data.
	if strings.Count(report, "❌") != 2 {
		t.Fatalf("expected two failing marks:\n%s", report)
	}
}

func TestParseClockTime(t *testing.T) {
	t.Parallel()

	hour, minute, err := parseClockTime("07:05")
	if err != nil || hour != 7 || minute != 5 {
		t.Fatalf("parse 07:05: %d:%d, err=%v", hour, minute, err)
	}

	for _, bad := range []string{"", "9", "9:60", "24:00", "a:b", "09:00:00"} {
		if _, _, err := parseClockTime(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestParseWeekday(t *testing.T) {
	t.Parallel()

	if got := parseWeekday(" Friday ", slog.Default()); got != time.Friday {
		t.Fatalf("expected friday, got %v", got)
	}
	if got := parseWeekday("someday", slog.Default()); got != time.Monday {
		t.Fatalf("expected monday default, got %v", got)
	}
}
