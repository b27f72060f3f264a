package app

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/courtsidelive/courtside/external/bsky"
	"github.com/courtsidelive/courtside/external/gsheets"
	"github.com/courtsidelive/courtside/external/nbacdn"
	"github.com/courtsidelive/courtside/external/nbastats"
	"github.com/courtsidelive/courtside/external/newswire"
	"github.com/courtsidelive/courtside/internal/config"
	"github.com/courtsidelive/courtside/internal/interfaces/httpapi"
	"github.com/courtsidelive/courtside/internal/merge"
	"github.com/courtsidelive/courtside/internal/platform/logging"
	"github.com/courtsidelive/courtside/internal/platform/resilience"
	"github.com/courtsidelive/courtside/internal/resolve"
	"github.com/courtsidelive/courtside/internal/usecase"
)

// App bundles the wired service graph: the HTTP server plus the refresh
// orchestrator the caller prewarms and exposes to the internal job route.
type App struct {
	Server       *http.Server
	Orchestrator *usecase.Orchestrator
}

func New(cfg config.Config, logger *logging.Logger, httpLogger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	breakerCfg := resilience.CircuitBreakerConfig{
		Enabled:          cfg.SourceCircuitEnabled,
		FailureThreshold: cfg.SourceCircuitFailureCount,
		OpenTimeout:      cfg.SourceCircuitOpenTimeout,
		HalfOpenMaxReq:   cfg.SourceCircuitHalfOpenMaxReq,
	}

	sheets := gsheets.NewClient(gsheets.ClientConfig{
		BaseURL:        cfg.SheetsBaseURL,
		Timeout:        cfg.SourceTimeout,
		MaxRetries:     cfg.SourceMaxRetries,
		Logger:         logger,
		CircuitBreaker: breakerCfg,
	})
	scoresClient := nbacdn.NewClient(nbacdn.ClientConfig{
		BaseURL:        cfg.ScoresBaseURL,
		Timeout:        cfg.SourceTimeout,
		MaxRetries:     cfg.SourceMaxRetries,
		Logger:         logger,
		CircuitBreaker: breakerCfg,
	})
	statsClient := nbastats.NewClient(nbastats.ClientConfig{
		BaseURL:        cfg.StatsBaseURL,
		Timeout:        cfg.SourceTimeout,
		MaxRetries:     cfg.SourceMaxRetries,
		Logger:         logger,
		CircuitBreaker: breakerCfg,
	})
	bskyClient := bsky.NewClient(bsky.ClientConfig{
		BaseURL:        cfg.BskyBaseURL,
		Accounts:       cfg.BskyAccounts,
		MaxPosts:       cfg.BskyMaxPosts,
		Timeout:        cfg.SourceTimeout,
		MaxRetries:     cfg.SourceMaxRetries,
		Logger:         logger,
		CircuitBreaker: breakerCfg,
	})
	wireClient := newswire.NewClient(newswire.ClientConfig{
		FeedURL:         cfg.NewsFeedURL,
		FallbackFeedURL: cfg.NewsFallbackFeedURL,
		MaxItems:        cfg.NewsMaxItems,
		NewThreshold:    cfg.NewsNewThreshold,
		Timeout:         cfg.SourceTimeout,
		MaxRetries:      cfg.SourceMaxRetries,
		Logger:          logger,
		CircuitBreaker:  breakerCfg,
	})

	holder := resolve.NewHolder()
	salarySvc := usecase.NewSalaryService(sheets, usecase.SalarySheetConfig{
		SheetID:   cfg.SheetID,
		GID:       cfg.SalaryGID,
		NameCol:   cfg.SalaryNameCol,
		SalaryCol: cfg.SalaryCol,
		TeamCol:   cfg.SalaryTeamCol,
	}, holder, cfg.SalaryTTL, logger)
	rosterSvc := usecase.NewRosterService(sheets, usecase.DepthChartConfig{
		SheetID: cfg.SheetID,
		GID:     cfg.DepthChartGID,
	}, holder, cfg.RosterTTL, logger)
	statsSvc := usecase.NewStatsService(statsClient, cfg.StatsSeason, cfg.StatsTTL, logger)
	scoresSvc := usecase.NewScoresService(scoresClient, cfg.ScoresLiveTTL, cfg.ScoresIdleTTL, logger)
	headlinesSvc := usecase.NewHeadlinesService(wireClient, cfg.HeadlinesTTL, logger)
	feedSvc := usecase.NewFeedService(bskyClient, cfg.FeedTTL, logger)

	rankingsSvc := usecase.NewRankingsService(merge.NewEngine(logger), salarySvc, rosterSvc, statsSvc, logger)
	statusSvc := usecase.NewStatusService(holder, salarySvc, rosterSvc, statsSvc, scoresSvc, headlinesSvc, feedSvc)
	orchestrator := usecase.NewOrchestrator(salarySvc, rosterSvc, statsSvc, scoresSvc, headlinesSvc, feedSvc, logger)

	handler := httpapi.NewHandler(scoresSvc, headlinesSvc, feedSvc, rosterSvc, rankingsSvc, statusSvc, orchestrator, httpLogger)
	router := httpapi.NewRouter(handler, httpLogger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &App{Server: server, Orchestrator: orchestrator}, nil
}
