package ports

import (
	"context"
	"time"

	"ProductRadar/internal/domain"
)

// ProductSource pulls the ranked launch list for a time window. Transport
// failure here is the one error that aborts a whole run.
type ProductSource interface {
	FetchTop(ctx context.Context, from, to time.Time, limit int, withComments bool) ([]domain.Product, error)
}

// Analyzer enriches one product and summarizes a processed batch. Analyze
// implementations degrade in place on backend failure (see domain.Analysis);
// the error return exists for callers that synthesize their own fallback.
type Analyzer interface {
	Analyze(ctx context.Context, product domain.Product) (domain.Analysis, error)
	Summarize(ctx context.Context, analyses []domain.Analysis, period domain.Period) (string, error)
}

// Publisher sends formatted text to the destination channel.
type Publisher interface {
	// Publish returns the opaque message identifier of the sent message.
	Publish(ctx context.Context, text string) (int64, error)
	// Pin marks a previously sent message as pinned; callers treat failure
	// as non-fatal.
	Pin(ctx context.Context, messageID int64) error
	// Probe verifies reachability. Silent mode checks identity only; loud
	// mode also sends a visible diagnostic message.
	Probe(ctx context.Context, silent bool) error
	// MessageLink derives a deep link to an earlier message when the
	// destination identifier format permits one.
	MessageLink(messageID int64) (string, bool)
}

// RunRepository records completed runs for audit; saving is best effort.
type RunRepository interface {
	SaveRun(ctx context.Context, record domain.RunRecord) error
}

// TriggerDriver owns the recurring trigger timeline.
type TriggerDriver interface {
	Add(id, name string, rule domain.Recurrence, job func(context.Context, time.Time))
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Jobs() []TriggerInfo
}

// TriggerInfo describes a registered trigger for logging.
type TriggerInfo struct {
	ID      string
	Name    string
	NextRun time.Time
}
