package producthunt

import (
	"context"
	"encoding/xml"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"ProductRadar/internal/domain"
	"ProductRadar/internal/ports"
)

// FeedSource reads the public Product Hunt Atom feed. It needs no developer
// token but carries no vote counts and no ranking, so it serves only as a
// degraded fallback when the GraphQL client cannot be configured.
type FeedSource struct {
	feedURL string
	client  *http.Client
	logger  *slog.Logger
}

var _ ports.ProductSource = (*FeedSource)(nil)

// NewFeedSource wires the feed endpoint; a nil HTTP client gets a default.
func NewFeedSource(client *http.Client, feedURL string, logger *slog.Logger) *FeedSource {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FeedSource{feedURL: feedURL, client: client, logger: logger}
}

type atomFeed struct {
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	ID        string     `xml:"id"`
	Title     string     `xml:"title"`
	Published string     `xml:"published"`
	Updated   string     `xml:"updated"`
	Content   string     `xml:"content"`
	Links     []atomLink `xml:"link"`
}

type atomLink struct {
	Rel  string `xml:"rel,attr"`
	Href string `xml:"href,attr"`
}

// FetchTop returns feed entries published inside [from, to], newest first as
// the feed orders them, capped at limit.
func (f *FeedSource) FetchTop(ctx context.Context, from, to time.Time, limit int, _ bool) ([]domain.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed: %s", resp.Status)
	}

	var feed atomFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("decode feed: %w", err)
	}

	products := make([]domain.Product, 0, limit)
	for _, entry := range feed.Entries {
		published := entry.publishedAt()
		if published.IsZero() || published.Before(from) || published.After(to) {
			continue
		}

		products = append(products, domain.Product{
			ID:          entry.ID,
			Name:        strings.TrimSpace(entry.Title),
			Description: flattenHTML(entry.Content),
			URL:         entry.link(),
			CreatedAt:   published,
		})
		if len(products) == limit {
			break
		}
	}

	f.logger.Debug("feed fetch done", "entries", len(feed.Entries), "matched", len(products))
	return products, nil
}

func (e atomEntry) publishedAt() time.Time {
	for _, raw := range []string{e.Published, e.Updated} {
		if t, err := time.Parse(time.RFC3339, strings.TrimSpace(raw)); err == nil {
			return t
		}
	}
	return time.Time{}
}

func (e atomEntry) link() string {
	for _, l := range e.Links {
		if l.Rel == "alternate" || l.Rel == "" {
			return l.Href
		}
	}
	if len(e.Links) > 0 {
		return e.Links[0].Href
	}
	return ""
}

// flattenHTML strips markup from feed entry content, keeping readable text.
func flattenHTML(content string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return strings.TrimSpace(content)
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
