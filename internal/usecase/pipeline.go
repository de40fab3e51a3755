package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"ProductRadar/internal/domain"
	"ProductRadar/internal/locales"
	"ProductRadar/internal/ports"
)

const (
	defaultItemDelay    = 30 * time.Second
	defaultSummaryDelay = 10 * time.Second
)

// PipelineDeps wires all driven adapters into the orchestration pipeline.
type PipelineDeps struct {
	Source    ports.ProductSource
	Analyzer  ports.Analyzer
	Publisher ports.Publisher
	Runs      ports.RunRepository
	Language  string
	Logger    *slog.Logger

	// ItemDelay paces consecutive publishes; SummaryDelay separates the last
	// item from the directory. Zero values take the production defaults.
	ItemDelay    time.Duration
	SummaryDelay time.Duration

	Now   func() time.Time
	Sleep func(context.Context, time.Duration)
}

// Pipeline runs the sequential fetch→analyze→publish→directory workflow for
// one period.
type Pipeline struct {
	source    ports.ProductSource
	analyzer  ports.Analyzer
	publisher ports.Publisher
	runs      ports.RunRepository
	language  string
	logger    *slog.Logger

	itemDelay    time.Duration
	summaryDelay time.Duration
	now          func() time.Time
	sleep        func(context.Context, time.Duration)
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	p := &Pipeline{
		source:       deps.Source,
		analyzer:     deps.Analyzer,
		publisher:    deps.Publisher,
		runs:         deps.Runs,
		language:     deps.Language,
		logger:       deps.Logger,
		itemDelay:    deps.ItemDelay,
		summaryDelay: deps.SummaryDelay,
		now:          deps.Now,
		sleep:        deps.Sleep,
	}

	if p.language == "" || !locales.Supported(p.language) {
		p.language = locales.DefaultLanguage
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	if p.itemDelay == 0 {
		p.itemDelay = defaultItemDelay
	}
	if p.summaryDelay == 0 {
		p.summaryDelay = defaultSummaryDelay
	}
	if p.now == nil {
		p.now = time.Now
	}
	if p.sleep == nil {
		p.sleep = cooperativeSleep
	}

	return p
}

// Run executes one full period run and returns every message identifier it
// produced, in publish order, directory last. Individual item failures are
// absorbed; only a fetch transport failure aborts the run.
func (p *Pipeline) Run(ctx context.Context, period domain.Period) ([]int64, error) {
	if !period.Valid() {
		return nil, fmt.Errorf("unknown period %q", period)
	}

	started := p.now()
	from, to := period.Window(started)

	products, err := p.source.FetchTop(ctx, from, to, period.Limit(), period.WithComments())
	if err != nil {
		p.notifyRunFailure(ctx, period, err)
		return nil, fmt.Errorf("fetch %s window: %w", period, err)
	}

	if len(products) == 0 {
		p.logger.Warn("no products in window, nothing to publish", "period", period)
		return nil, nil
	}

	p.logger.Info("starting sequential processing", "period", period, "products", len(products))

	var messageIDs []int64
	analyses := make([]domain.Analysis, 0, len(products))
	published := make(map[string]int64, len(products))
	failed := 0

	for i, product := range products {
		p.logger.Info("processing product",
			"period", period,
			"progress", fmt.Sprintf("%d/%d", i+1, len(products)),
			"product", product.Name)

		analysis, aErr := p.analyzer.Analyze(ctx, product)
		if aErr != nil {
			// Analyzers normally degrade in place; synthesize the fallback
			// record here for implementations that surface the error instead.
			p.logger.Error("analysis failed", "product", product.Name, "error", aErr)
			analysis = p.degradedAnalysis(product, aErr)
		}
		analyses = append(analyses, analysis)

		msgID, pubErr := p.publisher.Publish(ctx, renderProduct(analysis, period, p.language))
		if pubErr != nil {
			failed++
			p.logger.Error("publish failed, continuing", "product", analysis.Name, "error", pubErr)
		} else {
			messageIDs = append(messageIDs, msgID)
			published[analysis.Name] = msgID
		}

		if i < len(products)-1 {
			p.sleep(ctx, p.itemDelay)
		} else {
			p.sleep(ctx, p.summaryDelay)
		}
	}

	summary, sErr := p.analyzer.Summarize(ctx, analyses, period)
	if sErr != nil {
		p.logger.Error("period summary failed", "period", period, "error", sErr)
		summary = fmt.Sprintf("%s: %v", p.taskFailedText(period), sErr)
	}

	directory := renderDirectory(analyses, period, summary, published, p.publisher.MessageLink, p.language)
	dirID, dErr := p.publisher.Publish(ctx, directory)
	if dErr != nil {
		failed++
		p.logger.Error("directory publish failed", "period", period, "error", dErr)
	} else {
		messageIDs = append(messageIDs, dirID)
		if period.Pinned() {
			if pinErr := p.publisher.Pin(ctx, dirID); pinErr != nil {
				p.logger.Warn("directory pin failed", "period", period, "message_id", dirID, "error", pinErr)
			} else {
				p.logger.Info("directory pinned", "period", period, "message_id", dirID)
			}
		}
	}

	p.saveRun(ctx, domain.RunRecord{
		Period:      period,
		MessageIDs:  messageIDs,
		SentCount:   len(messageIDs),
		FailedCount: failed,
		StartedAt:   started,
		FinishedAt:  p.now(),
	})

	p.logger.Info("run completed", "period", period, "messages", len(messageIDs), "failed", failed)
	return messageIDs, nil
}

// notifyRunFailure publishes the localized fetch-failure notice; the notice
// itself is best effort.
func (p *Pipeline) notifyRunFailure(ctx context.Context, period domain.Period, cause error) {
	p.logger.Error("run aborted at fetch", "period", period, "error", cause)
	text := fmt.Sprintf("❌ %s: %v", p.taskFailedText(period), cause)
	if _, err := p.publisher.Publish(ctx, text); err != nil {
		p.logger.Error("failure notice publish failed", "period", period, "error", err)
	}
}

func (p *Pipeline) taskFailedText(period domain.Period) string {
	return locales.Text(p.language, string(period)+"_task_failed", "Task execution failed")
}

// degradedAnalysis localizes the fallback record for a product whose
// analysis errored.
func (p *Pipeline) degradedAnalysis(product domain.Product, cause error) domain.Analysis {
	failedText := locales.Text(p.language, "analysis_failed", "Analysis failed")
	return domain.DegradedAnalysis(product,
		fmt.Sprintf("%s: %v", failedText, cause),
		locales.UnknownCategory(p.language))
}

func (p *Pipeline) saveRun(ctx context.Context, record domain.RunRecord) {
	if p.runs == nil {
		return
	}
	if err := p.runs.SaveRun(ctx, record); err != nil {
		p.logger.Error("run record save failed", "period", record.Period, "error", err)
	}
}

// cooperativeSleep waits out the pacing delay but returns early on context
// cancellation so shutdown is not held hostage by a delay.
func cooperativeSleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}
