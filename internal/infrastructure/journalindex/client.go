// Package journalindex talks to the external similarity index service
// that mirrors journal entries for semantic lookup.
package journalindex

import (
	"context"
	"fmt"
	"time"

	"resty.dev/v3"

	"friendbot/companion-api/internal/domain/journal"
	"friendbot/companion-api/internal/utils/httpclients"
)

type indexDocument struct {
	ID      string   `json:"id"`
	UserID  uint     `json:"user_id"`
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags,omitempty"`
}

type queryRequest struct {
	UserID uint   `json:"user_id"`
	Text   string `json:"text"`
	Limit  int    `json:"limit"`
}

type queryResponse struct {
	IDs []string `json:"ids"`
}

// Client implements the journal indexer contract over HTTP.
type Client struct {
	http *resty.Client
}

var _ journal.Indexer = (*Client)(nil)

// NewClient returns an index client rooted at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	http := httpclients.NewClient("JournalIndexClient")
	http.SetBaseURL(baseURL)
	http.SetTimeout(timeout)
	return &Client{http: http}
}

// Index upserts one entry into the similarity index.
func (c *Client) Index(ctx context.Context, entry *journal.Journal) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(indexDocument{
			ID:      entry.PublicID,
			UserID:  entry.UserID,
			Title:   entry.Title,
			Content: entry.Content,
			Tags:    entry.Tags,
		}).
		Post("/documents")
	if err != nil {
		return fmt.Errorf("index journal %s: %w", entry.PublicID, err)
	}
	if resp.IsError() {
		return fmt.Errorf("index journal %s: status %d", entry.PublicID, resp.StatusCode())
	}
	return nil
}

// Remove deletes one entry from the index. Unknown ids are not an error.
func (c *Client) Remove(ctx context.Context, publicID string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		Delete("/documents/" + publicID)
	if err != nil {
		return fmt.Errorf("remove journal %s: %w", publicID, err)
	}
	if resp.IsError() && resp.StatusCode() != 404 {
		return fmt.Errorf("remove journal %s: status %d", publicID, resp.StatusCode())
	}
	return nil
}

// Similar returns public ids of the user's entries ranked by similarity.
func (c *Client) Similar(ctx context.Context, userID uint, text string, limit int) ([]string, error) {
	var result queryResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(queryRequest{UserID: userID, Text: text, Limit: limit}).
		SetResult(&result).
		Post("/query")
	if err != nil {
		return nil, fmt.Errorf("query index: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("query index: status %d", resp.StatusCode())
	}
	return result.IDs, nil
}
