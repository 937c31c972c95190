// Package ledgerapi implements the ledger.Gateway port against the
// external billing ledger's REST API.
package ledgerapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/crm/backend/internal/domain/ledger"
	"go.uber.org/zap"
)

const (
	defaultPageSize  = 100
	defaultTimeout   = 30 * time.Second
	maxResponseBytes = 10 << 20
	// maxPages bounds pagination in case the ledger keeps answering
	// has_more=true
	maxPages = 1000
)

// Config holds the connection settings for the billing ledger API
type Config struct {
	BaseURL   string
	APIKey    string
	AccountID string
	PageSize  int
	Timeout   time.Duration
}

// Validate checks that the config is usable
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("ledger base URL is required")
	}
	if _, err := url.Parse(c.BaseURL); err != nil {
		return fmt.Errorf("invalid ledger base URL: %w", err)
	}
	if c.APIKey == "" {
		return fmt.Errorf("ledger API key is required")
	}
	if c.AccountID == "" {
		return fmt.Errorf("ledger account ID is required")
	}
	return nil
}

// Client talks to the billing ledger over HTTP. It implements
// ledger.Gateway.
type Client struct {
	config     Config
	httpClient *http.Client
	logger     *zap.Logger
}

var _ ledger.Gateway = (*Client)(nil)

// NewClient creates a ledger API client
func NewClient(config Config, logger *zap.Logger) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.PageSize <= 0 {
		config.PageSize = defaultPageSize
	}
	if config.Timeout <= 0 {
		config.Timeout = defaultTimeout
	}

	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		logger:     logger.Named("ledgerapi"),
	}, nil
}

// FetchInvoices retrieves every invoice the ledger holds for the
// account, following pagination until the ledger reports no more
// pages. Returns an error on any failed page; never a partial set.
func (c *Client) FetchInvoices(ctx context.Context) ([]ledger.InvoiceRecord, error) {
	var records []ledger.InvoiceRecord

	for page := 1; page <= maxPages; page++ {
		body, err := c.get(ctx, "/v1/invoices", url.Values{
			"page":     {strconv.Itoa(page)},
			"per_page": {strconv.Itoa(c.config.PageSize)},
		})
		if err != nil {
			return nil, err
		}

		var payload invoicePage
		if err := json.Unmarshal(body, &payload); err != nil {
			return nil, fmt.Errorf("%w: %v", ledger.ErrGatewayResponse, err)
		}

		for _, inv := range payload.Invoices {
			rec, err := inv.toRecord()
			if err != nil {
				return nil, err
			}
			records = append(records, rec)
		}

		if !payload.HasMore {
			c.logger.Debug("invoice fetch complete",
				zap.Int("pages", page),
				zap.Int("records", len(records)))
			return records, nil
		}
	}

	return nil, fmt.Errorf("%w: pagination did not terminate", ledger.ErrGatewayResponse)
}

// TestConnection probes the account endpoint to verify credentials
func (c *Client) TestConnection(ctx context.Context) (*ledger.ConnectionCheck, error) {
	body, err := c.get(ctx, "/v1/account", nil)
	if err != nil {
		return nil, err
	}

	var payload accountPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ledger.ErrGatewayResponse, err)
	}

	return &ledger.ConnectionCheck{
		OK:          true,
		AccountName: payload.Name,
	}, nil
}

// get performs an authenticated GET and returns the response body.
// Non-2xx answers become gateway errors with the body captured.
func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	endpoint := strings.TrimRight(c.config.BaseURL, "/") + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ledger.ErrGatewayRequest, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	req.Header.Set("X-Account-ID", c.config.AccountID)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ledger.ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ledger.ErrGatewayResponse, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: status %d: %s",
			ledger.ErrGatewayAuth, resp.StatusCode, summarize(body))
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("%w: status %d: %s",
			ledger.ErrGatewayRequest, resp.StatusCode, summarize(body))
	}

	return body, nil
}

// summarize trims a response body for inclusion in an error message
func summarize(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > 256 {
		s = s[:256] + "..."
	}
	return s
}
