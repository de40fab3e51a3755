package producthunt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"ProductRadar/internal/domain"
	"ProductRadar/internal/ports"
)

// commentCap bounds how many launch comments a daily fetch embeds.
const commentCap = 5

// Client queries the Product Hunt GraphQL API for votes-ordered launches.
type Client struct {
	token  string
	apiURL string
	client *http.Client
}

var _ ports.ProductSource = (*Client)(nil)

// NewClient wires the developer token and endpoint; a nil HTTP client gets
// a sane default.
func NewClient(client *http.Client, token, apiURL string) *Client {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{token: token, apiURL: apiURL, client: client}
}

const postsQuery = `
query($postedAfter: DateTime!, $postedBefore: DateTime!, $first: Int!) {
    posts(postedAfter: $postedAfter, postedBefore: $postedBefore, first: $first, order: VOTES) {
        edges {
            node {
                id
                name
                tagline
                description
                url
                website
                votesCount
                commentsCount
                createdAt
                topics {
                    edges {
                        node {
                            name
                        }
                    }
                }
            }
        }
    }
}`

const postsWithCommentsQuery = `
query($postedAfter: DateTime!, $postedBefore: DateTime!, $first: Int!) {
    posts(postedAfter: $postedAfter, postedBefore: $postedBefore, first: $first, order: VOTES) {
        edges {
            node {
                id
                name
                tagline
                description
                url
                website
                votesCount
                commentsCount
                createdAt
                topics {
                    edges {
                        node {
                            name
                        }
                    }
                }
                comments(first: 5) {
                    edges {
                        node {
                            body
                            user {
                                name
                            }
                        }
                    }
                }
            }
        }
    }
}`

// FetchTop returns the votes-ordered launches inside [from, to], capped at
// limit. Comments are only requested when asked for, to keep query cost down.
func (c *Client) FetchTop(ctx context.Context, from, to time.Time, limit int, withComments bool) ([]domain.Product, error) {
	query := postsQuery
	if withComments {
		query = postsWithCommentsQuery
	}

	variables := map[string]any{
		"postedAfter":  from.UTC().Format(time.RFC3339),
		"postedBefore": to.UTC().Format(time.RFC3339),
		"first":        limit,
	}

	var payload postsResponse
	if err := c.execute(ctx, query, variables, &payload); err != nil {
		return nil, err
	}

	products := make([]domain.Product, 0, len(payload.Data.Posts.Edges))
	for _, edge := range payload.Data.Posts.Edges {
		products = append(products, edge.Node.toDomain())
	}
	return products, nil
}

func (c *Client) execute(ctx context.Context, query string, variables map[string]any, out *postsResponse) error {
	body, err := json.Marshal(map[string]any{
		"query":     query,
		"variables": variables,
	})
	if err != nil {
		return fmt.Errorf("marshal query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("product hunt api: %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	if len(out.Errors) > 0 {
		return fmt.Errorf("graphql: %s", out.Errors[0].Message)
	}
	return nil
}

type postsResponse struct {
	Data struct {
		Posts struct {
			Edges []struct {
				Node postNode `json:"node"`
			} `json:"edges"`
		} `json:"posts"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

type postNode struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Tagline       string `json:"tagline"`
	Description   string `json:"description"`
	URL           string `json:"url"`
	Website       string `json:"website"`
	VotesCount    int    `json:"votesCount"`
	CommentsCount int    `json:"commentsCount"`
	CreatedAt     string `json:"createdAt"`
	Topics        struct {
		Edges []struct {
			Node struct {
				Name string `json:"name"`
			} `json:"node"`
		} `json:"edges"`
	} `json:"topics"`
	Comments struct {
		Edges []struct {
			Node struct {
				Body string `json:"body"`
				User struct {
					Name string `json:"name"`
				} `json:"user"`
			} `json:"node"`
		} `json:"edges"`
	} `json:"comments"`
}

func (n postNode) toDomain() domain.Product {
	topics := make([]string, 0, len(n.Topics.Edges))
	for _, t := range n.Topics.Edges {
		topics = append(topics, t.Node.Name)
	}

	var comments []domain.Comment
	for i, e := range n.Comments.Edges {
		if i == commentCap {
			break
		}
		comments = append(comments, domain.Comment{Author: e.Node.User.Name, Body: e.Node.Body})
	}

	createdAt, _ := time.Parse(time.RFC3339, n.CreatedAt)

	return domain.Product{
		ID:            n.ID,
		Name:          n.Name,
		Tagline:       n.Tagline,
		Description:   n.Description,
		URL:           n.URL,
		Website:       n.Website,
		VotesCount:    n.VotesCount,
		CommentsCount: n.CommentsCount,
		Topics:        topics,
		Comments:      comments,
		CreatedAt:     createdAt,
	}
}
