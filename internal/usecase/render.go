package usecase

import (
	"fmt"
	"strings"

	"ProductRadar/internal/domain"
	"ProductRadar/internal/locales"
)

const taglineLimit = 50

// renderProduct formats one analysis as a channel message.
func renderProduct(a domain.Analysis, period domain.Period, lang string) string {
	prefix := locales.Text(lang, string(period)+"_prefix", "📱")
	categoryLabel := locales.Text(lang, "category_label", "Category")
	votesLabel := locales.Text(lang, "votes_label", "Votes")
	highlightsLabel := locales.Text(lang, "highlights_label", "Key Highlights")
	useCasesLabel := locales.Text(lang, "use_cases_label", "Use Cases")
	audienceLabel := locales.Text(lang, "target_audience_label", "Target Audience")
	viewDetails := locales.Text(lang, "view_details", "View Details")

	parts := []string{
		productTitle(a),
		"",
		prefix,
		"",
		a.Summary,
		"",
	}

	if len(a.Highlights) > 0 {
		parts = append(parts, fmt.Sprintf("✨ %s：", highlightsLabel))
		for _, h := range capped(a.Highlights, 3) {
			parts = append(parts, "• "+h)
		}
		parts = append(parts, "")
	}

	if len(a.UseCases) > 0 {
		parts = append(parts, fmt.Sprintf("🎯 %s：", useCasesLabel))
		for _, u := range capped(a.UseCases, 2) {
			parts = append(parts, "• "+u)
		}
		parts = append(parts, "")
	}

	if a.TargetAudience != "" {
		parts = append(parts, fmt.Sprintf("👥 %s：%s", audienceLabel, a.TargetAudience), "")
	}

	parts = append(parts,
		fmt.Sprintf("🏷️ %s：%s", categoryLabel, a.Category),
		fmt.Sprintf("👍 %s：%d", votesLabel, a.Meta.VotesCount),
		"",
		fmt.Sprintf("🔗 [%s](%s)", viewDetails, a.Meta.URL),
	)

	return strings.Join(parts, "\n")
}

// productTitle builds the headline, truncating long taglines so a single
// launch cannot blow up the message.
func productTitle(a domain.Analysis) string {
	tagline := strings.TrimSpace(a.OriginalTagline)
	if tagline == "" {
		return fmt.Sprintf("📝 【%s】", a.Name)
	}

	if runes := []rune(tagline); len(runes) > taglineLimit {
		tagline = string(runes[:taglineLimit]) + "..."
	}
	return fmt.Sprintf("📝 【%s：%s】", a.Name, tagline)
}

// renderDirectory formats the aggregate directory message. Cross-links are
// rendered only for items present in the published map and only when the
// destination identifier format yields a deep link; everything else falls
// back to bold plain text.
func renderDirectory(
	analyses []domain.Analysis,
	period domain.Period,
	summary string,
	published map[string]int64,
	messageLink func(int64) (string, bool),
	lang string,
) string {
	prefix := locales.Text(lang, string(period)+"_prefix", "📱")
	emoji := prefix
	if fields := strings.Fields(prefix); len(fields) > 0 {
		emoji = fields[0]
	}

	title := locales.Text(lang, string(period)+"_title", "Product Directory")
	directoryLabel := locales.Text(lang, "product_directory", "Product Directory")
	trendLabel := locales.Text(lang, "trend_summary", "Trend Summary")
	totalLabel := locales.Text(lang, "total_products", "products")
	dataSource := locales.Text(lang, "data_source", "Data Source: Product Hunt")

	parts := []string{
		fmt.Sprintf("%s **%s**", emoji, title),
		"",
		fmt.Sprintf("📋 **%s：**", directoryLabel),
	}

	for i, a := range capped(analyses, period.Limit()) {
		parts = append(parts, fmt.Sprintf("%2d. %s | %s | 👍%d",
			i+1, directoryEntry(a.Name, published, messageLink), a.Category, a.Meta.VotesCount))
	}

	parts = append(parts,
		"",
		fmt.Sprintf("📊 **%s：**", trendLabel),
		summary,
		"",
		fmt.Sprintf("📱 %d %s | %s", len(analyses), totalLabel, dataSource),
	)

	return strings.Join(parts, "\n")
}

func directoryEntry(name string, published map[string]int64, messageLink func(int64) (string, bool)) string {
	if msgID, ok := published[name]; ok && messageLink != nil {
		if url, ok := messageLink(msgID); ok {
			return fmt.Sprintf("[%s](%s)", name, url)
		}
	}
	return fmt.Sprintf("**%s**", name)
}

func capped[T any](items []T, limit int) []T {
	if len(items) > limit {
		return items[:limit]
	}
	return items
}
