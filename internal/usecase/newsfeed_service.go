package usecase

import (
	"context"
	"time"

	"github.com/courtsidelive/courtside/internal/domain/headline"
	"github.com/courtsidelive/courtside/internal/domain/social"
	"github.com/courtsidelive/courtside/internal/platform/cache"
	"github.com/courtsidelive/courtside/internal/platform/logging"
)

// HeadlinesService runs the headline ticker pipeline.
type HeadlinesService struct {
	source HeadlineSource
	cache  *cache.Fallback[[]headline.Headline]
}

func NewHeadlinesService(source HeadlineSource, ttl time.Duration, logger *logging.Logger) *HeadlinesService {
	if logger == nil {
		logger = logging.Default()
	}
	return &HeadlinesService{
		source: source,
		cache: cache.NewFallback[[]headline.Headline](
			"headlines",
			cache.StaticTTL[[]headline.Headline](ttl),
			logger,
			cache.WithEmptyCheck(func(items []headline.Headline) bool { return len(items) == 0 }),
		),
	}
}

func (s *HeadlinesService) Refresh(ctx context.Context) []headline.Headline {
	ctx, span := startUsecaseSpan(ctx, "HeadlinesService.Refresh")
	defer span.End()

	return s.cache.GetOrFetch(ctx, func(ctx context.Context) ([]headline.Headline, error) {
		return s.source.FetchHeadlines(ctx)
	})
}

func (s *HeadlinesService) Headlines() []headline.Headline {
	items, _ := s.cache.Peek()
	return items
}

func (s *HeadlinesService) Status() cache.Status {
	return s.cache.Status()
}

// FeedService runs the social feed pipeline.
type FeedService struct {
	source SocialSource
	cache  *cache.Fallback[[]social.Post]
}

func NewFeedService(source SocialSource, ttl time.Duration, logger *logging.Logger) *FeedService {
	if logger == nil {
		logger = logging.Default()
	}
	return &FeedService{
		source: source,
		cache: cache.NewFallback[[]social.Post](
			"feed",
			cache.StaticTTL[[]social.Post](ttl),
			logger,
			cache.WithEmptyCheck(func(posts []social.Post) bool { return len(posts) == 0 }),
		),
	}
}

func (s *FeedService) Refresh(ctx context.Context) []social.Post {
	ctx, span := startUsecaseSpan(ctx, "FeedService.Refresh")
	defer span.End()

	return s.cache.GetOrFetch(ctx, func(ctx context.Context) ([]social.Post, error) {
		return s.source.FetchPosts(ctx)
	})
}

func (s *FeedService) Posts() []social.Post {
	posts, _ := s.cache.Peek()
	return posts
}

func (s *FeedService) Status() cache.Status {
	return s.cache.Status()
}
