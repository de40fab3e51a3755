package storage

import (
	"context"
	"testing"
	"time"

	"ProductRadar/internal/domain"
)

func TestNilHandleIsNoop(t *testing.T) {
	t.Parallel()

	r := NewPostgresRepository(nil)
	ctx := context.Background()

	if err := r.EnsureSchema(ctx); err != nil {
		t.Fatalf("EnsureSchema with nil db: %v", err)
	}

	record := domain.RunRecord{
		Period:     domain.PeriodDaily,
		MessageIDs: []int64{1, 2},
		SentCount:  2,
		StartedAt:  time.Now(),
		FinishedAt: time.Now(),
	}
	if err := r.SaveRun(ctx, record); err != nil {
		t.Fatalf("SaveRun with nil db: %v", err)
	}

	records, err := r.RecentRuns(ctx, domain.PeriodDaily, 10)
	if err != nil {
		t.Fatalf("RecentRuns with nil db: %v", err)
	}
	if records != nil {
		t.Fatalf("expected no records, got %v", records)
	}
}

func TestInsertStatement(t *testing.T) {
	t.Parallel()

	r := NewPostgresRepository(nil)

	query, args, err := r.builder.
		Insert("pipeline_runs").
		Columns("period", "sent_count").
		Values("daily", 3).
		ToSql()
	if err != nil {
		t.Fatalf("build insert: %v", err)
	}

	want := "INSERT INTO pipeline_runs (period,sent_count) VALUES ($1,$2)"
	if query != want {
		t.Fatalf("unexpected sql: %q", query)
	}
	if len(args) != 2 || args[0] != "daily" {
		t.Fatalf("unexpected args: %v", args)
	}
}
