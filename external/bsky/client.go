package bsky

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"

	"github.com/courtsidelive/courtside/internal/domain/social"
	"github.com/courtsidelive/courtside/internal/platform/logging"
	"github.com/courtsidelive/courtside/internal/platform/resilience"
	"github.com/courtsidelive/courtside/internal/usecase"
)

const (
	defaultBaseURL  = "https://public.api.bsky.app"
	feedMaxWorkers  = 20
	postsPerAccount = 5
	defaultMaxPosts = 10
)

var errBskyTransient = crerr.New("bsky transient failure")

type feedEnvelope struct {
	Feed []feedItem `json:"feed"`
}

type feedItem struct {
	Reason *struct {
		Type string `json:"$type"`
	} `json:"reason"`
	Post struct {
		Author struct {
			Handle      string `json:"handle"`
			DisplayName string `json:"displayName"`
			Avatar      string `json:"avatar"`
		} `json:"author"`
		Record struct {
			Text      string `json:"text"`
			CreatedAt string `json:"createdAt"`
			Reply     *struct {
				Parent struct {
					URI string `json:"uri"`
				} `json:"parent"`
			} `json:"reply"`
		} `json:"record"`
	} `json:"post"`
}

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Accounts       []string
	MaxPosts       int
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client pulls author feeds from the public AppView. The public host needs
// no auth, unlike the PDS xrpc endpoints.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	accounts       []string
	maxPosts       int
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
		httpClient.Timeout = 8 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	maxPosts := cfg.MaxPosts
	if maxPosts <= 0 {
		maxPosts = defaultMaxPosts
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		accounts:       cfg.Accounts,
		maxPosts:       maxPosts,
		maxRetries:     cfg.MaxRetries,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// FetchPosts pulls every configured account's feed in parallel, drops
// reposts, replies and empty posts, and returns the newest posts across all
// accounts. A failed account simply contributes nothing.
func (c *Client) FetchPosts(ctx context.Context) ([]social.Post, error) {
	if len(c.accounts) == 0 {
		return []social.Post{}, nil
	}

	workerCount := feedMaxWorkers
	if len(c.accounts) < workerCount {
		workerCount = len(c.accounts)
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return nil, fmt.Errorf("create feed worker pool: %w", err)
	}
	defer pool.Release()

	var mu sync.Mutex
	all := make([]social.Post, 0, len(c.accounts)*postsPerAccount)
	var failed int

	var workers sync.WaitGroup
	for _, handle := range c.accounts {
		handle := handle
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			posts, err := c.fetchAuthorFeed(ctx, handle)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failed++
				c.logger.DebugContext(ctx, "author feed fetch failed", "handle", handle, "error", err)
				return
			}
			all = append(all, posts...)
		}); err != nil {
			workers.Done()
			c.logger.WarnContext(ctx, "submit feed fetch failed", "handle", handle, "error", err)
		}
	}
	workers.Wait()

	sort.SliceStable(all, func(i, j int) bool { return all[i].Timestamp > all[j].Timestamp })
	if len(all) > c.maxPosts {
		all = all[:c.maxPosts]
	}

	c.logger.InfoContext(ctx, "fetched social feed",
		"accounts", len(c.accounts),
		"failed", failed,
		"posts", len(all),
	)
	return all, nil
}

func (c *Client) fetchAuthorFeed(ctx context.Context, handle string) ([]social.Post, error) {
	values := url.Values{}
	values.Set("actor", handle)
	values.Set("limit", fmt.Sprintf("%d", postsPerAccount))
	values.Set("filter", "posts_no_replies")
	fullURL := c.baseURL + "/xrpc/app.bsky.feed.getAuthorFeed?" + values.Encode()

	raw, err := c.fetchJSON(ctx, fullURL)
	if err != nil {
		return nil, err
	}

	var envelope feedEnvelope
	if err := sonic.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decode feed payload: %w", err)
	}

	posts := make([]social.Post, 0, len(envelope.Feed))
	for _, item := range envelope.Feed {
		if item.Reason != nil {
			continue
		}
		// The filter param should exclude replies already, but the
		// AppView has served replies through it before.
		if item.Post.Record.Reply != nil {
			continue
		}
		text := strings.TrimSpace(item.Post.Record.Text)
		if text == "" {
			continue
		}

		author := item.Post.Author.DisplayName
		if author == "" {
			author = handle
		}
		postHandle := item.Post.Author.Handle
		if postHandle == "" {
			postHandle = handle
		}
		created := item.Post.Record.CreatedAt

		posts = append(posts, social.Post{
			Author:    author,
			Handle:    "@" + postHandle,
			Avatar:    initials(author),
			AvatarURL: item.Post.Author.Avatar,
			Text:      text,
			Time:      timeAgo(created, time.Now()),
			Timestamp: created,
		})
	}
	return posts, nil
}

func (c *Client) fetchJSON(ctx context.Context, fullURL string) ([]byte, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "bsky circuit breaker rejected request", "state", c.breaker.State())
			return nil, fmt.Errorf("%w: social feed is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && stderrors.Is(reqErr, errBskyTransient) {
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
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errBskyTransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 2<<20))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errBskyTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: appview status=%d", errBskyTransient, resp.StatusCode)
			default:
				return nil, fmt.Errorf("appview status=%d", resp.StatusCode)
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
		lastErr = fmt.Errorf("appview request failed")
	}
	c.logger.WarnContext(ctx, "bsky request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

// timeAgo renders an ISO timestamp relative to now: "now", "5m", "2h", "3d".
func timeAgo(isoTime string, now time.Time) string {
	ts, err := time.Parse(time.RFC3339, isoTime)
	if err != nil {
		return ""
	}
	diff := now.Sub(ts)
	switch {
	case diff < time.Minute:
		return "now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh", int(diff.Hours()))
	default:
		return fmt.Sprintf("%dd", int(diff.Hours()/24))
	}
}

// initials derives a two-letter avatar fallback from a display name.
func initials(name string) string {
	parts := strings.Fields(name)
	switch {
	case len(parts) >= 2:
		return strings.ToUpper(parts[0][:1] + parts[len(parts)-1][:1])
	case len(parts) == 1:
		if len(parts[0]) >= 2 {
			return strings.ToUpper(parts[0][:2])
		}
		return strings.ToUpper(parts[0])
	}
	return "??"
}
