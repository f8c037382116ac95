// Package socrata pulls 311 service requests from the NYC Open Data API
// in pages, yielding the same raw tabular batch the file loaders produce.
package socrata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/Latifa2025-star/311calls/internal/dataset"
	"github.com/Latifa2025-star/311calls/internal/logger"
)

// DefaultBaseURL is the NYC 311 Service Requests resource.
const DefaultBaseURL = "https://data.cityofnewyork.us/resource/erm2-nwe9.json"

// pageSize matches the anonymous-access page cap of the API.
const pageSize = 1000

var httpClient = &http.Client{
	Timeout: 30 * time.Second,
}

type Client struct {
	baseURL string
	token   string
}

// NewClient builds a client for baseURL (DefaultBaseURL when empty).
// token is the optional Socrata app token, sent as X-App-Token.
func NewClient(baseURL, token string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{baseURL: baseURL, token: token}
}

// apiRecord mirrors the fields of the erm2-nwe9 resource we consume.
// Socrata serves every field as a string.
type apiRecord struct {
	UniqueKey     string `json:"unique_key"`
	CreatedDate   string `json:"created_date"`
	ClosedDate    string `json:"closed_date"`
	ComplaintType string `json:"complaint_type"`
	Status        string `json:"status"`
	Borough       string `json:"borough"`
	Latitude      string `json:"latitude"`
	Longitude     string `json:"longitude"`
}

// batchColumns is the canonical header for batches built from the API.
var batchColumns = []string{
	"unique_key", "created_date", "closed_date", "complaint_type",
	"status", "borough", "latitude", "longitude",
}

// Fetch pulls requests created in [start, end), newest first, paging
// until maxRows records are collected or the window is exhausted.
func (c *Client) Fetch(ctx context.Context, start, end time.Time, maxRows int) (dataset.RawBatch, error) {
	log := logger.New().WithComponent("socrata").WithField("base_url", c.baseURL)
	if maxRows <= 0 {
		maxRows = pageSize
	}

	batch := dataset.RawBatch{Columns: batchColumns}
	for offset := 0; len(batch.Rows) < maxRows; offset += pageSize {
		limit := pageSize
		if remaining := maxRows - len(batch.Rows); remaining < limit {
			limit = remaining
		}

		page, err := c.fetchPage(ctx, start, end, limit, offset)
		if err != nil {
			return dataset.RawBatch{}, fmt.Errorf("fetch page at offset %d: %w", offset, err)
		}
		for _, rec := range page {
			batch.Rows = append(batch.Rows, []string{
				rec.UniqueKey, rec.CreatedDate, rec.ClosedDate, rec.ComplaintType,
				rec.Status, rec.Borough, rec.Latitude, rec.Longitude,
			})
		}
		log.WithField("offset", offset).WithField("page_rows", len(page)).Debug("page fetched")
		if len(page) < limit {
			break
		}
	}
	log.WithField("rows", len(batch.Rows)).Info("remote pull complete")
	return batch, nil
}

func (c *Client) fetchPage(ctx context.Context, start, end time.Time, limit, offset int) ([]apiRecord, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	const floating = "2006-01-02T15:04:05"
	q := u.Query()
	q.Set("$where", fmt.Sprintf("created_date between '%s' and '%s'",
		start.Format(floating), end.Format(floating)))
	q.Set("$order", "created_date DESC")
	q.Set("$limit", strconv.Itoa(limit))
	q.Set("$offset", strconv.Itoa(offset))
	u.RawQuery = q.Encode()

	var page []apiRecord
	if err := c.doJSON(ctx, u.String(), &page); err != nil {
		return nil, err
	}
	return page, nil
}

// doJSON issues a GET with exponential-backoff retry on transport errors
// and 5xx responses. 4xx responses are permanent.
func (c *Client) doJSON(ctx context.Context, rawURL string, target interface{}) error {
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 45 * time.Second

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		if c.token != "" {
			req.Header.Set("X-App-Token", c.token)
		}

		resp, err := httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		body, _ := io.ReadAll(resp.Body)
		if resp.StatusCode >= 500 {
			return fmt.Errorf("server error: %s", body)
		}
		if resp.StatusCode >= 400 {
			return backoff.Permanent(fmt.Errorf("request rejected: %s", body))
		}
		if err := json.Unmarshal(body, target); err != nil {
			return fmt.Errorf("json decode error: %v body=%s", err, truncate(body, 200))
		}
		return nil
	}

	return backoff.Retry(operation, backoff.WithContext(bo, ctx))
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
