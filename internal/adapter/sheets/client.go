// Package sheets fetches the dashboard's tabular source: a Google Sheets
// CSV export reached over plain HTTP GET.
package sheets

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// Client fetches the CSV export of a single sheet tab.
type Client struct {
	sheetID    string
	gid        string
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewClient creates a sheet CSV client for the given spreadsheet and tab.
func NewClient(sheetID, gid string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		sheetID: sheetID,
		gid:     gid,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: "https://docs.google.com/spreadsheets",
		logger:  logger,
	}
}

// FetchCSV downloads the full CSV export. Any transport or HTTP-level
// failure is returned to the caller; the render pass treats it as terminal.
func (c *Client) FetchCSV(ctx context.Context) ([]byte, error) {
	params := url.Values{
		"format": {"csv"},
		"gid":    {c.gid},
	}
	fullURL := fmt.Sprintf("%s/d/%s/export?%s", c.baseURL, url.PathEscape(c.sheetID), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch sheet csv: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("sheet export error: status %d: %s", resp.StatusCode, body)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read sheet csv: %w", err)
	}

	c.logger.Debug("sheet csv fetched",
		"sheet_id", c.sheetID,
		"gid", c.gid,
		"bytes", len(data),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return data, nil
}
