package newswire

import (
	"bytes"
	"context"
	"encoding/xml"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"

	"github.com/courtsidelive/courtside/internal/domain/headline"
	"github.com/courtsidelive/courtside/internal/platform/logging"
	"github.com/courtsidelive/courtside/internal/platform/resilience"
	"github.com/courtsidelive/courtside/internal/usecase"
)

const (
	defaultFeedURL     = "https://hoopshype.com/rumors/feed/"
	defaultFallbackURL = "https://hoopshype.com/feed/"
	defaultMaxItems    = 20
	minTitleLength     = 10
)

var errWireTransient = crerr.New("newswire transient failure")

type rssDocument struct {
	XMLName xml.Name   `xml:"rss"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Items []rssItem `xml:"item"`
}

type rssItem struct {
	Title   string `xml:"title"`
	PubDate string `xml:"pubDate"`
}

type ClientConfig struct {
	HTTPClient      *http.Client
	FeedURL         string
	FallbackFeedURL string
	MaxItems        int
	NewThreshold    time.Duration
	Timeout         time.Duration
	MaxRetries      int
	Logger          *logging.Logger
	CircuitBreaker  resilience.CircuitBreakerConfig
}

// Client reads headline tickers from WordPress RSS feeds. The rumor-specific
// feed is preferred; the site-wide feed backs it up when the rumor feed is
// empty or serving HTML.
type Client struct {
	httpClient     *http.Client
	feedURLs       []string
	maxItems       int
	newThreshold   time.Duration
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

	feedURL := strings.TrimSpace(cfg.FeedURL)
	if feedURL == "" {
		feedURL = defaultFeedURL
	}
	fallbackURL := strings.TrimSpace(cfg.FallbackFeedURL)
	if fallbackURL == "" {
		fallbackURL = defaultFallbackURL
	}
	maxItems := cfg.MaxItems
	if maxItems <= 0 {
		maxItems = defaultMaxItems
	}
	newThreshold := cfg.NewThreshold
	if newThreshold <= 0 {
		newThreshold = time.Hour
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		feedURLs:       []string{feedURL, fallbackURL},
		maxItems:       maxItems,
		newThreshold:   newThreshold,
		maxRetries:     cfg.MaxRetries,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// FetchHeadlines tries each feed URL in order and returns the first that
// parses into at least one usable item.
func (c *Client) FetchHeadlines(ctx context.Context) ([]headline.Headline, error) {
	var lastErr error
	for _, feedURL := range c.feedURLs {
		raw, err := c.fetchFeed(ctx, feedURL)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			c.logger.WarnContext(ctx, "feed fetch failed", "url", feedURL, "error", err)
			continue
		}

		items, err := parseFeed(raw, c.maxItems, c.newThreshold, time.Now())
		if err != nil {
			lastErr = err
			c.logger.WarnContext(ctx, "feed parse failed", "url", feedURL, "error", err)
			continue
		}
		if len(items) == 0 {
			lastErr = fmt.Errorf("feed contained no usable items")
			c.logger.WarnContext(ctx, "feed contained no usable items", "url", feedURL)
			continue
		}

		c.logger.InfoContext(ctx, "fetched headlines", "url", feedURL, "count", len(items))
		return items, nil
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("no feed urls configured")
	}
	return nil, fmt.Errorf("fetch headlines: %w", lastErr)
}

// parseFeed extracts deduplicated headlines from an RSS body. Short titles
// are noise from category stubs and are skipped.
func parseFeed(raw []byte, maxItems int, newThreshold time.Duration, now time.Time) ([]headline.Headline, error) {
	var doc rssDocument
	if err := xml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse rss: %w", err)
	}

	seen := make(map[string]struct{}, maxItems)
	items := make([]headline.Headline, 0, maxItems)
	for _, item := range doc.Channel.Items {
		title := strings.TrimSpace(item.Title)
		if len(title) < minTitleLength {
			continue
		}
		if _, dup := seen[title]; dup {
			continue
		}
		seen[title] = struct{}{}

		entry := headline.Headline{Text: title}
		if pubDate := strings.TrimSpace(item.PubDate); pubDate != "" {
			if ts, err := parsePubDate(pubDate); err == nil {
				entry.Time = relativeTime(now.Sub(ts))
				entry.IsNew = now.Sub(ts) <= newThreshold
			}
		}

		items = append(items, entry)
		if len(items) >= maxItems {
			break
		}
	}
	return items, nil
}

// parsePubDate handles the RFC 822 variants WordPress emits.
func parsePubDate(value string) (time.Time, error) {
	for _, layout := range []string{time.RFC1123Z, time.RFC1123, time.RFC822Z, time.RFC822} {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized pubDate %q", value)
}

func relativeTime(diff time.Duration) string {
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

func (c *Client) fetchFeed(ctx context.Context, feedURL string) ([]byte, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "newswire circuit breaker rejected request", "state", c.breaker.State())
			return nil, fmt.Errorf("%w: headline feed is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	out, err, _ := c.flight.Do(feedURL, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, feedURL)
		if c.circuitEnabled {
			if reqErr != nil && stderrors.Is(reqErr, errWireTransient) {
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

func (c *Client) executeRequest(ctx context.Context, feedURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errWireTransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errWireTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				// Some CDN error pages come back as 200 with an HTML
				// body where XML should be.
				if isHTMLBody(raw) {
					return nil, fmt.Errorf("feed returned html instead of xml")
				}
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: feed status=%d", errWireTransient, resp.StatusCode)
			default:
				return nil, fmt.Errorf("feed status=%d", resp.StatusCode)
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
		lastErr = fmt.Errorf("feed request failed")
	}
	c.logger.WarnContext(ctx, "newswire request failed", "url", feedURL, "error", lastErr)
	return nil, lastErr
}

func isHTMLBody(body []byte) bool {
	head := bytes.ToLower(bytes.TrimSpace(body))
	if len(head) > 20 {
		head = head[:20]
	}
	return bytes.HasPrefix(head, []byte("<!doctype"))
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}
