package domain

import "time"

// Product is a core entity describing one ranked Product Hunt launch.
type Product struct {
	ID            string
	Name          string
	Tagline       string
	Description   string
	URL           string
	Website       string
	VotesCount    int
	CommentsCount int
	Topics        []string
	Comments      []Comment
	CreatedAt     time.Time
}

// Comment is an embedded launch comment used as analysis context.
type Comment struct {
	Author string
	Body   string
}

// AnalysisMeta carries raw product fields copied into every analysis,
// including degraded ones.
type AnalysisMeta struct {
	VotesCount int
	Topics     []string
	URL        string
}

// Analysis is the enriched record produced for one product. Failed analyses
// still yield a record: Degraded is set, Category holds the reserved
// fallback value and Summary carries the failure text.
type Analysis struct {
	ProductID       string
	Name            string
	OriginalTagline string
	Summary         string
	Highlights      []string
	Category        string
	UseCases        []string
	TargetAudience  string
	Meta            AnalysisMeta
	Degraded        bool
}

// MaxHighlights and MaxUseCases bound the lists an analysis may carry.
const (
	MaxHighlights = 5
	MaxUseCases   = 3
)

// DegradedAnalysis synthesizes the fallback record for a product whose
// analysis failed: summary carries the failure text, category holds the
// reserved fallback value, and the raw fields that survive without a backend
// are copied through.
func DegradedAnalysis(p Product, summary, category string) Analysis {
	return Analysis{
		ProductID:       p.ID,
		Name:            p.Name,
		OriginalTagline: p.Tagline,
		Summary:         summary,
		Category:        category,
		Meta: AnalysisMeta{
			VotesCount: p.VotesCount,
			Topics:     p.Topics,
			URL:        p.URL,
		},
		Degraded: true,
	}
}

// RunRecord is the persisted trace of one completed pipeline run.
type RunRecord struct {
	Period      Period
	MessageIDs  []int64
	SentCount   int
	FailedCount int
	StartedAt   time.Time
	FinishedAt  time.Time
}
