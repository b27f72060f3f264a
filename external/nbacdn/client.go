package nbacdn

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"

	"github.com/courtsidelive/courtside/internal/domain/game"
	"github.com/courtsidelive/courtside/internal/platform/logging"
	"github.com/courtsidelive/courtside/internal/platform/resilience"
	"github.com/courtsidelive/courtside/internal/usecase"
)

const (
	defaultBaseURL     = "https://cdn.nba.com/static/json/liveData"
	scoreboardPath     = "/scoreboard/todaysScoreboard_00.json"
	boxscorePathFmt    = "/boxscore/boxscore_%s.json"
	boxscoreMaxWorkers = 10
)

var errCDNTransient = crerr.New("nba cdn transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client reads the public liveData CDN. The CDN rejects requests without
// browser-looking headers, so every request carries a referer and user agent.
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
		httpClient.Timeout = 10 * time.Second
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

// FetchGames returns today's games with boxscore detail hydrated for every
// game that has started. An empty slice with a nil error means no games are
// scheduled today, which is a valid payload, not a failure.
func (c *Client) FetchGames(ctx context.Context) ([]game.Game, error) {
	var envelope scoreboardEnvelope
	if err := c.doJSON(ctx, scoreboardPath, &envelope); err != nil {
		return nil, fmt.Errorf("fetch scoreboard: %w", err)
	}

	raw := envelope.Scoreboard.Games
	if len(raw) == 0 {
		c.logger.InfoContext(ctx, "no games on today's scoreboard")
		return []game.Game{}, nil
	}

	boxscores := c.fetchBoxscores(ctx, raw)

	games := make([]game.Game, 0, len(raw))
	for _, sb := range raw {
		games = append(games, transformGame(sb, boxscores[sb.GameID]))
	}

	c.logger.InfoContext(ctx, "fetched scoreboard",
		"games", len(games),
		"boxscores", len(boxscores),
		"has_live", game.AnyLive(games),
	)
	return games, nil
}

// fetchBoxscores hydrates live and final games in parallel. A failed worker
// leaves its game without detail rather than failing the batch.
func (c *Client) fetchBoxscores(ctx context.Context, raw []sbGame) map[string]*boxGame {
	needing := make([]string, 0, len(raw))
	for _, sb := range raw {
		if sb.GameStatus >= 2 {
			needing = append(needing, sb.GameID)
		}
	}
	if len(needing) == 0 {
		return nil
	}

	workerCount := boxscoreMaxWorkers
	if len(needing) < workerCount {
		workerCount = len(needing)
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		c.logger.WarnContext(ctx, "create boxscore worker pool failed", "error", err)
		return nil
	}
	defer pool.Release()

	var mu sync.Mutex
	out := make(map[string]*boxGame, len(needing))

	var workers sync.WaitGroup
	for _, gameID := range needing {
		gameID := gameID
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			var envelope boxscoreEnvelope
			path := fmt.Sprintf(boxscorePathFmt, gameID)
			if err := c.doJSON(ctx, path, &envelope); err != nil {
				c.logger.DebugContext(ctx, "boxscore fetch failed", "game_id", gameID, "error", err)
				return
			}
			box := envelope.Game

			mu.Lock()
			out[gameID] = &box
			mu.Unlock()
		}); err != nil {
			workers.Done()
			c.logger.WarnContext(ctx, "submit boxscore fetch failed", "game_id", gameID, "error", err)
		}
	}
	workers.Wait()

	return out
}

func (c *Client) doJSON(ctx context.Context, path string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "nba cdn circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: score data is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	fullURL := c.baseURL + path
	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && stderrors.Is(reqErr, errCDNTransient) {
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
		return fmt.Errorf("decode cdn payload: %w", err)
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
		req.Header.Set("Referer", "https://www.nba.com/")
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errCDNTransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errCDNTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: cdn status=%d", errCDNTransient, resp.StatusCode)
			default:
				return nil, fmt.Errorf("cdn status=%d", resp.StatusCode)
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
		lastErr = fmt.Errorf("cdn request failed")
	}
	c.logger.WarnContext(ctx, "nba cdn request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}
