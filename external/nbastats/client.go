package nbastats

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/courtsidelive/courtside/internal/domain/stats"
	"github.com/courtsidelive/courtside/internal/platform/logging"
	"github.com/courtsidelive/courtside/internal/platform/resilience"
	"github.com/courtsidelive/courtside/internal/usecase"
)

const defaultBaseURL = "https://stats.nba.com/stats"

var errStatsTransient = crerr.New("nba stats transient failure")

// measureRequest describes how one measure maps onto the stats API.
type measureRequest struct {
	path  string
	query map[string]string
}

func measureRequests(season string) map[stats.Measure]measureRequest {
	base := map[string]string{
		"LeagueID":   "00",
		"Season":     season,
		"SeasonType": "Regular Season",
		"PerMode":    "PerGame",
	}
	withBase := func(extra map[string]string) map[string]string {
		out := make(map[string]string, len(base)+len(extra))
		for k, v := range base {
			out[k] = v
		}
		for k, v := range extra {
			out[k] = v
		}
		return out
	}

	return map[stats.Measure]measureRequest{
		stats.MeasureTotals: {
			path:  "/leaguedashplayerstats",
			query: withBase(map[string]string{"MeasureType": "Base"}),
		},
		stats.MeasureAdvanced: {
			path:  "/leaguedashplayerstats",
			query: withBase(map[string]string{"MeasureType": "Advanced"}),
		},
		stats.MeasureDefense: {
			path:  "/leaguedashptdefend",
			query: withBase(map[string]string{"DefenseCategory": "Overall"}),
		},
		stats.MeasureClutch: {
			path: "/leaguedashplayerclutch",
			query: withBase(map[string]string{
				"MeasureType": "Base",
				"ClutchTime":  "Last 5 Minutes",
				"AheadBehind": "Ahead or Behind",
				"PointDiff":   "5",
			}),
		},
		stats.MeasureHustle: {
			path:  "/leaguehustlestatsplayer",
			query: withBase(nil),
		},
	}
}

type resultSetEnvelope struct {
	ResultSets []resultSet `json:"resultSets"`
}

type resultSet struct {
	Name    string   `json:"name"`
	Headers []string `json:"headers"`
	RowSet  [][]any  `json:"rowSet"`
}

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client reads the stats API's leaguedash family of endpoints. The API
// requires the same header set the site's own frontend sends or it hangs
// the connection.
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
		httpClient.Timeout = 15 * time.Second
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

// FetchSet loads every measure for the season. A measure that fails is
// logged and omitted; the call errors only when no measure loaded at all.
func (c *Client) FetchSet(ctx context.Context, season string) (stats.Set, error) {
	if strings.TrimSpace(season) == "" {
		return nil, fmt.Errorf("%w: season is required", usecase.ErrInvalidInput)
	}

	set := make(stats.Set, len(stats.AllMeasures))
	requests := measureRequests(season)

	var lastErr error
	for _, measure := range stats.AllMeasures {
		req := requests[measure]

		var envelope resultSetEnvelope
		if err := c.doJSON(ctx, req.path, req.query, &envelope); err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			c.logger.WarnContext(ctx, "measure fetch failed", "measure", string(measure), "error", err)
			continue
		}

		table := buildTable(envelope)
		if len(table) == 0 {
			lastErr = fmt.Errorf("measure %s returned no rows", measure)
			c.logger.WarnContext(ctx, "measure returned no rows", "measure", string(measure))
			continue
		}
		set[measure] = table
	}

	if len(set) == 0 {
		if lastErr == nil {
			lastErr = fmt.Errorf("no measures configured")
		}
		return nil, fmt.Errorf("fetch stat measures season=%s: %w", season, lastErr)
	}

	c.logger.InfoContext(ctx, "fetched stat measures", "season", season, "measures", len(set))
	return set, nil
}

// buildTable converts the positional resultSet rows into per-player bags.
// Non-numeric columns are skipped; the player name column becomes the key.
func buildTable(envelope resultSetEnvelope) stats.Table {
	if len(envelope.ResultSets) == 0 {
		return nil
	}
	rs := envelope.ResultSets[0]

	nameIdx := -1
	for i, header := range rs.Headers {
		if header == "PLAYER_NAME" {
			nameIdx = i
			break
		}
	}
	if nameIdx < 0 {
		return nil
	}

	table := make(stats.Table, len(rs.RowSet))
	for _, row := range rs.RowSet {
		if nameIdx >= len(row) {
			continue
		}
		name, ok := row[nameIdx].(string)
		if !ok || strings.TrimSpace(name) == "" {
			continue
		}

		bag := make(stats.Bag, len(rs.Headers))
		for i, cell := range row {
			if i >= len(rs.Headers) {
				break
			}
			if v, ok := cell.(float64); ok {
				bag[rs.Headers[i]] = v
			}
		}
		table[strings.TrimSpace(name)] = bag
	}
	return table
}

func (c *Client) doJSON(ctx context.Context, path string, query map[string]string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "nba stats circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: stats provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}
	fullURL := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && stderrors.Is(reqErr, errStatsTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode stats payload: %w", err)
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
		req.Header.Set("Referer", "https://stats.nba.com/")
		req.Header.Set("Accept", "application/json")
		req.Header.Set("x-nba-stats-origin", "stats")
		req.Header.Set("x-nba-stats-token", "true")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errStatsTransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errStatsTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: provider status=%d", errStatsTransient, resp.StatusCode)
			default:
				return nil, fmt.Errorf("provider status=%d", resp.StatusCode)
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
		lastErr = fmt.Errorf("stats request failed")
	}
	c.logger.WarnContext(ctx, "nba stats request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}
