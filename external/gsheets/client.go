package gsheets

import (
	"bytes"
	"context"
	"encoding/csv"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/courtsidelive/courtside/internal/ingest/grid"
	"github.com/courtsidelive/courtside/internal/platform/logging"
	"github.com/courtsidelive/courtside/internal/platform/resilience"
	"github.com/courtsidelive/courtside/internal/usecase"
)

const defaultBaseURL = "https://docs.google.com/spreadsheets"

var errSheetsTransient = crerr.New("sheets transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client fetches published spreadsheet tabs through the CSV export endpoint.
// No credentials are involved: the sheets are link-shared read-only.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		maxRetries:     cfg.MaxRetries,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// FetchGrid downloads one tab as CSV and returns it as a row-major cell grid.
// Rows keep their original ragged lengths; cell cleanup happens downstream.
func (c *Client) FetchGrid(ctx context.Context, sheetID, gid string) (grid.Grid, error) {
	if strings.TrimSpace(sheetID) == "" {
		return nil, fmt.Errorf("%w: sheet id is required", usecase.ErrInvalidInput)
	}

	fullURL := fmt.Sprintf("%s/d/%s/export?format=csv&gid=%s", c.baseURL, url.PathEscape(sheetID), url.QueryEscape(gid))
	raw, err := c.fetchCSV(ctx, fullURL)
	if err != nil {
		return nil, fmt.Errorf("fetch sheet %s gid=%s: %w", sheetID, gid, err)
	}

	reader := csv.NewReader(bytes.NewReader(raw))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var g grid.Grid
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse sheet csv %s gid=%s: %w", sheetID, gid, err)
		}
		g = append(g, record)
	}

	c.logger.DebugContext(ctx, "fetched sheet tab", "sheet_id", sheetID, "gid", gid, "rows", len(g))
	return g, nil
}

func (c *Client) fetchCSV(ctx context.Context, fullURL string) ([]byte, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "sheets circuit breaker rejected request", "state", c.breaker.State())
			return nil, fmt.Errorf("%w: sheet export is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && stderrors.Is(reqErr, errSheetsTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return nil, err
	}

	raw, ok := out.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected response payload type %T", out)
	}
	return raw, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "text/csv")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errSheetsTransient, err)
		} else {
			buf := bytebufferpool.Get()
			_, readErr := io.Copy(buf, io.LimitReader(resp.Body, 6<<20))
			raw := append([]byte(nil), buf.Bytes()...)
			bytebufferpool.Put(buf)
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errSheetsTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				// A private or deleted sheet comes back as an HTML page
				// with status 200.
				if looksLikeHTML(raw) {
					return nil, fmt.Errorf("sheet export returned html, is the sheet link-shared?")
				}
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: sheet export status=%d", errSheetsTransient, resp.StatusCode)
			default:
				return nil, fmt.Errorf("sheet export status=%d", resp.StatusCode)
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("sheet export request failed")
	}
	c.logger.WarnContext(ctx, "sheets request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func looksLikeHTML(body []byte) bool {
	head := strings.ToLower(string(bytes.TrimSpace(body)))
	return strings.HasPrefix(head, "<!doctype") || strings.HasPrefix(head, "<html")
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}
