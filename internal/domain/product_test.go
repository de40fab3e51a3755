package domain

import (
	"testing"
	"time"
)

func TestDegradedAnalysis(t *testing.T) {
	t.Parallel()

	p := Product{
		ID:         "p1",
		Name:       "Radar",
		Tagline:    "find launches",
		VotesCount: 99,
		Topics:     []string{"AI", "SaaS"},
		URL:        "https://producthunt.com/posts/radar",
		CreatedAt:  time.Now(),
	}

	a := DegradedAnalysis(p, "Analysis failed: boom", "Other")

	if !a.Degraded {
		t.Fatalf("expected degraded flag set")
	}
	if a.ProductID != "p1" || a.Name != "Radar" || a.OriginalTagline != "find launches" {
		t.Fatalf("raw identity fields not carried through: %+v", a)
	}
	if a.Summary != "Analysis failed: boom" || a.Category != "Other" {
		t.Fatalf("fallback fields wrong: summary=%q category=%q", a.Summary, a.Category)
	}
	if len(a.Highlights) != 0 || len(a.UseCases) != 0 || a.TargetAudience != "" {
		t.Fatalf("degraded record must not carry analysis content: %+v", a)
	}
	if a.Meta.VotesCount != 99 || len(a.Meta.Topics) != 2 || a.Meta.URL != p.URL {
		t.Fatalf("metadata not copied: %+v", a.Meta)
	}
}
