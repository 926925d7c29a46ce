package airtable

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/nsventures/dealflow-cli/internal/core/domain"
	"github.com/nsventures/dealflow-cli/internal/core/ports/driven"
	"github.com/nsventures/dealflow-cli/internal/logger"
)

const (
	// DefaultBaseURL is the Airtable REST API root.
	DefaultBaseURL = "https://api.airtable.com/v0"

	// DefaultTimeout is the per-request HTTP timeout.
	DefaultTimeout = 30 * time.Second

	// PageSize is the maximum records per page the API allows.
	PageSize = 100

	// ProactiveRate throttles below Airtable's 5 req/sec per-base limit.
	ProactiveRate = 4.0

	// MaxRetries is the number of attempts per page on 429 or transient errors.
	MaxRetries = 3

	// RetryDelay is the initial delay between retries, doubled each attempt.
	RetryDelay = time.Second
)

// Ensure Client implements the interface.
var _ driven.ExportFetcher = (*Client)(nil)

// Client pulls a full table from the Airtable API.
type Client struct {
	baseURL string
	apiKey  string
	baseID  string
	tableID string
	http    *http.Client
	bucket  *rate.Limiter
}

// NewClient creates an export client for one base/table pair.
func NewClient(apiKey, baseID, tableID string) *Client {
	return &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		baseID:  baseID,
		tableID: tableID,
		http:    &http.Client{Timeout: DefaultTimeout},
		bucket:  rate.NewLimiter(rate.Limit(ProactiveRate), 1),
	}
}

// SetBaseURL overrides the API root, used by tests and the config override.
func (c *Client) SetBaseURL(u string) {
	c.baseURL = u
}

// page mirrors the Airtable list response envelope.
type page struct {
	Records []domain.SourceRecord `json:"records"`
	Offset  string                `json:"offset,omitempty"`
}

// FetchAll returns every record in the table, following the offset cursor
// until the API stops returning one.
func (c *Client) FetchAll(ctx context.Context) ([]domain.SourceRecord, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("airtable: %w: api key is not configured", domain.ErrInvalidInput)
	}
	if c.baseID == "" || c.tableID == "" {
		return nil, fmt.Errorf("airtable: %w: base id and table id are required", domain.ErrInvalidInput)
	}

	var (
		all    []domain.SourceRecord
		offset string
		pages  int
	)

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		p, err := c.fetchPage(ctx, offset)
		if err != nil {
			return nil, err
		}

		all = append(all, p.Records...)
		pages++
		logger.Debug("fetched page %d (%d records, %d total)", pages, len(p.Records), len(all))

		if p.Offset == "" {
			return all, nil
		}
		offset = p.Offset
	}
}

// fetchPage requests a single page, retrying on 429 and transport errors.
func (c *Client) fetchPage(ctx context.Context, offset string) (*page, error) {
	var lastErr error

	delay := RetryDelay
	for attempt := 0; attempt < MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
		}

		if err := c.bucket.Wait(ctx); err != nil {
			return nil, err
		}

		p, retryable, err := c.doRequest(ctx, offset)
		if err == nil {
			return p, nil
		}
		lastErr = err
		if !retryable {
			return nil, err
		}
	}

	return nil, fmt.Errorf("airtable: giving up after %d attempts: %w", MaxRetries, lastErr)
}

func (c *Client) doRequest(ctx context.Context, offset string) (*page, bool, error) {
	q := url.Values{}
	q.Set("pageSize", strconv.Itoa(PageSize))
	if offset != "" {
		q.Set("offset", offset)
	}
	reqURL := fmt.Sprintf("%s/%s/%s?%s", c.baseURL, c.baseID, c.tableID, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, false, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("airtable: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusOK:
		// Fall through to decode.
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, true, fmt.Errorf("airtable: rate limited (status %d)", resp.StatusCode)
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, false, fmt.Errorf("airtable: authentication failed (status %d)", resp.StatusCode)
	case resp.StatusCode == http.StatusNotFound:
		return nil, false, fmt.Errorf("airtable: base or table not found: %w", domain.ErrNotFound)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, resp.StatusCode >= 500, fmt.Errorf("airtable: unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var p page
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, false, fmt.Errorf("airtable: decoding response: %w", err)
	}
	return &p, false, nil
}
