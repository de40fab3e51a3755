package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"ProductRadar/internal/domain"
	"ProductRadar/internal/locales"
	"ProductRadar/internal/ports"
)

// promptCommentCap bounds how many launch comments feed the prompts.
const promptCommentCap = 3

// Analyzer turns one completion backend into the five-step product analysis
// and the batch summary. Backend failures never escape as hard errors: a
// failed analysis degrades into a fallback record and a failed summary
// degrades into a localized failure string.
type Analyzer struct {
	provider  string
	completer completer
	language  string
	logger    *slog.Logger
}

var _ ports.Analyzer = (*Analyzer)(nil)

func newAnalyzer(provider string, c completer, language string, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	if !locales.Supported(language) {
		language = locales.DefaultLanguage
	}
	return &Analyzer{provider: provider, completer: c, language: language, logger: logger}
}

// Provider names the configured backend, for logging.
func (a *Analyzer) Provider() string {
	return a.provider
}

// Analyze enriches one product. Any backend failure mid-way yields the
// degraded record with the raw fields copied through, and a nil error.
func (a *Analyzer) Analyze(ctx context.Context, product domain.Product) (domain.Analysis, error) {
	productText := formatProduct(product)

	summary, err := a.generateSummary(ctx, productText)
	if err != nil {
		return a.degraded(product, err), nil
	}

	highlights, err := a.extractList(ctx, productText, "highlights_instruction", domain.MaxHighlights, 500)
	if err != nil {
		return a.degraded(product, err), nil
	}

	category, err := a.categorize(ctx, productText)
	if err != nil {
		return a.degraded(product, err), nil
	}

	useCases, err := a.extractList(ctx, productText, "use_cases_instruction", domain.MaxUseCases, 300)
	if err != nil {
		return a.degraded(product, err), nil
	}

	audience, err := a.targetAudience(ctx, productText)
	if err != nil {
		return a.degraded(product, err), nil
	}

	return domain.Analysis{
		ProductID:       product.ID,
		Name:            product.Name,
		OriginalTagline: product.Tagline,
		Summary:         summary,
		Highlights:      highlights,
		Category:        category,
		UseCases:        useCases,
		TargetAudience:  audience,
		Meta: domain.AnalysisMeta{
			VotesCount: product.VotesCount,
			Topics:     product.Topics,
			URL:        product.URL,
		},
	}, nil
}

// Summarize produces the aggregate trend text for a processed batch. On
// backend failure it returns the localized failure string instead of an
// error.
func (a *Analyzer) Summarize(ctx context.Context, analyses []domain.Analysis, period domain.Period) (string, error) {
	periodName := locales.Text(a.language, string(period)+"_period", "this period")
	instruction := fmt.Sprintf(
		locales.Text(a.language, "period_summary_instruction",
			"Please generate a concise summary report based on the following %s Product Hunt hot products"),
		periodName)

	var format strings.Builder
	for i, item := range locales.List(a.language, "analysis_format") {
		fmt.Fprintf(&format, "%d. %s\n", i+1, item)
	}

	var requirements strings.Builder
	for _, req := range locales.List(a.language, "summary_requirements") {
		fmt.Fprintf(&requirements, "- %s\n", req)
	}

	prompt := fmt.Sprintf("%s:\n\n%s\nFormat:\n%s\nRequirements:\n%s",
		instruction, formatBatch(analyses, a.language), format.String(), requirements.String())

	role := locales.Text(a.language, "analyst_role", "You are a professional product analyst.")
	summary, err := a.completer.complete(ctx, role, prompt, 0.7, 1000)
	if err != nil {
		a.logger.Error("period summary failed", "provider", a.provider, "period", period, "error", err)
		failed := locales.Text(a.language, string(period)+"_task_failed", "Task execution failed")
		return fmt.Sprintf("%s: %v", failed, err), nil
	}
	return summary, nil
}

func (a *Analyzer) generateSummary(ctx context.Context, productText string) (string, error) {
	instruction := locales.Text(a.language, "summary_instruction",
		"Please generate a detailed summary based on the following product information")

	var requirements strings.Builder
	for _, req := range locales.List(a.language, "summary_product_requirements") {
		fmt.Fprintf(&requirements, "- %s\n", req)
	}

	prompt := fmt.Sprintf("%s:\n\n%s\nRequirements:\n%s", instruction, productText, requirements.String())
	role := locales.Text(a.language, "summary_expert_role", "You are a product summary expert.")
	return a.completer.complete(ctx, role, prompt, 0.5, 400)
}

func (a *Analyzer) extractList(ctx context.Context, productText, instructionKey string, limit, maxTokens int) ([]string, error) {
	instruction := locales.Text(a.language, instructionKey, "Please extract the key points from the following product information")
	prompt := fmt.Sprintf("%s:\n\n%s\nReturn a list in %s, one item per line, each line starting with \"- \".",
		instruction, productText, locales.AILanguage(a.language))

	role := locales.Text(a.language, "categorization_expert_role", "You are a product analyst.")
	content, err := a.completer.complete(ctx, role, prompt, 0.3, maxTokens)
	if err != nil {
		return nil, err
	}
	return parseBullets(content, limit), nil
}

func (a *Analyzer) categorize(ctx context.Context, productText string) (string, error) {
	var options strings.Builder
	for _, cat := range locales.Categories(a.language) {
		fmt.Fprintf(&options, "- %s\n", cat)
	}

	prompt := fmt.Sprintf(
		"Classify the following product into exactly one of the listed categories:\n\n%s\nCategories:\n%s\nReturn only the category name.",
		productText, options.String())

	role := locales.Text(a.language, "categorization_expert_role", "You are a product categorization expert.")
	return a.completer.complete(ctx, role, prompt, 0.1, 50)
}

func (a *Analyzer) targetAudience(ctx context.Context, productText string) (string, error) {
	instruction := locales.Text(a.language, "target_audience_instruction",
		"Please describe the target audience based on the following product information")
	prompt := fmt.Sprintf("%s:\n\n%s\nReturn only the audience description, in %s.",
		instruction, productText, locales.AILanguage(a.language))

	role := locales.Text(a.language, "categorization_expert_role", "You are a product categorization expert.")
	return a.completer.complete(ctx, role, prompt, 0.1, 100)
}

func (a *Analyzer) degraded(product domain.Product, cause error) domain.Analysis {
	a.logger.Error("product analysis failed", "provider", a.provider, "product", product.Name, "error", cause)

	failedText := locales.Text(a.language, "analysis_failed", "Analysis failed")
	return domain.DegradedAnalysis(product,
		fmt.Sprintf("%s: %v", failedText, cause),
		locales.UnknownCategory(a.language))
}

// formatProduct renders the raw launch fields as prompt context.
func formatProduct(p domain.Product) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Product: %s\n", p.Name)
	fmt.Fprintf(&b, "Tagline: %s\n", p.Tagline)
	fmt.Fprintf(&b, "Description: %s\n", orFallback(p.Description, "no description"))
	fmt.Fprintf(&b, "Topics: %s\n", strings.Join(p.Topics, ", "))
	fmt.Fprintf(&b, "Votes: %d\n", p.VotesCount)
	fmt.Fprintf(&b, "Comments: %d\n", p.CommentsCount)
	fmt.Fprintf(&b, "Website: %s\n", orFallback(p.Website, "no website"))

	if len(p.Comments) > 0 {
		b.WriteString("User comments:\n")
		for i, comment := range p.Comments {
			if i == promptCommentCap {
				break
			}
			body := strings.TrimSpace(comment.Body)
			if body == "" {
				continue
			}
			fmt.Fprintf(&b, "  %d. %s: %s\n", i+1, orFallback(comment.Author, "Anonymous"), body)
		}
	}
	return b.String()
}

// formatBatch renders processed analyses as summary-prompt context, capped
// the same way the directory display is.
func formatBatch(analyses []domain.Analysis, lang string) string {
	categoryLabel := locales.Text(lang, "category_label", "Category")
	votesLabel := locales.Text(lang, "votes_label", "Votes")

	display := len(analyses)
	if display > 20 {
		display = 20
	}

	var b strings.Builder
	for i, a := range analyses[:display] {
		fmt.Fprintf(&b, "%d. %s\n   %s: %s\n   %s\n   %s: %d\n",
			i+1, a.Name, categoryLabel, a.Category, a.Summary, votesLabel, a.Meta.VotesCount)
	}
	return b.String()
}

// parseBullets extracts list items from a completion that may or may not
// follow the requested bullet format.
func parseBullets(content string, limit int) []string {
	var items []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "- ")
		line = strings.TrimPrefix(line, "• ")
		line = strings.TrimPrefix(line, "* ")
		if line == "" {
			continue
		}
		items = append(items, line)
		if len(items) == limit {
			break
		}
	}
	return items
}

func orFallback(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
