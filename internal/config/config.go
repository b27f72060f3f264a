package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/courtsidelive/courtside/internal/platform/logging"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv             string
	ServiceName        string
	ServiceVersion     string
	HTTPAddr           string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	CORSAllowedOrigins []string
	InternalJobToken   string
	LogLevel           logging.Level

	SheetsBaseURL string
	SheetID       string
	SalaryGID     string
	DepthChartGID string
	SalaryNameCol int
	SalaryCol     int
	SalaryTeamCol int

	ScoresBaseURL string
	StatsBaseURL  string
	StatsSeason   string

	BskyBaseURL  string
	BskyAccounts []string
	BskyMaxPosts int

	NewsFeedURL         string
	NewsFallbackFeedURL string
	NewsMaxItems        int
	NewsNewThreshold    time.Duration

	SourceTimeout               time.Duration
	SourceMaxRetries            int
	SourceCircuitEnabled        bool
	SourceCircuitFailureCount   int
	SourceCircuitOpenTimeout    time.Duration
	SourceCircuitHalfOpenMaxReq int

	SalaryTTL     time.Duration
	RosterTTL     time.Duration
	StatsTTL      time.Duration
	ScoresLiveTTL time.Duration
	ScoresIdleTTL time.Duration
	HeadlinesTTL  time.Duration
	FeedTTL       time.Duration
	PrewarmDelay  time.Duration

	PprofEnabled               bool
	PprofAddr                  string
	UptraceEnabled             bool
	UptraceDSN                 string
	UptraceLogsEnabled         bool
	BetterStackEnabled         bool
	BetterStackEndpoint        string
	BetterStackToken           string
	BetterStackTimeout         time.Duration
	BetterStackMinLevel        logging.Level
	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	readTimeout, err := getEnvAsDuration("APP_READ_TIMEOUT", "10s")
	if err != nil {
		return Config{}, err
	}
	writeTimeout, err := getEnvAsDuration("APP_WRITE_TIMEOUT", "15s")
	if err != nil {
		return Config{}, err
	}

	salaryNameCol, err := getEnvAsInt("SALARY_NAME_COL", 0)
	if err != nil {
		return Config{}, fmt.Errorf("parse SALARY_NAME_COL: %w", err)
	}
	salaryCol, err := getEnvAsInt("SALARY_VALUE_COL", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse SALARY_VALUE_COL: %w", err)
	}
	salaryTeamCol, err := getEnvAsInt("SALARY_TEAM_COL", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse SALARY_TEAM_COL: %w", err)
	}
	if salaryNameCol < 0 || salaryCol < 0 || salaryTeamCol < 0 {
		return Config{}, fmt.Errorf("salary sheet columns must be >= 0")
	}

	bskyMaxPosts, err := getEnvAsInt("BSKY_MAX_POSTS", 10)
	if err != nil {
		return Config{}, fmt.Errorf("parse BSKY_MAX_POSTS: %w", err)
	}
	if bskyMaxPosts < 1 {
		return Config{}, fmt.Errorf("BSKY_MAX_POSTS must be >= 1")
	}

	newsMaxItems, err := getEnvAsInt("NEWS_MAX_ITEMS", 20)
	if err != nil {
		return Config{}, fmt.Errorf("parse NEWS_MAX_ITEMS: %w", err)
	}
	if newsMaxItems < 1 {
		return Config{}, fmt.Errorf("NEWS_MAX_ITEMS must be >= 1")
	}
	newsNewThreshold, err := getEnvAsDuration("NEWS_NEW_THRESHOLD", "6h")
	if err != nil {
		return Config{}, err
	}

	sourceTimeout, err := getEnvAsDuration("SOURCE_TIMEOUT", "20s")
	if err != nil {
		return Config{}, err
	}
	sourceMaxRetries, err := getEnvAsInt("SOURCE_MAX_RETRIES", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse SOURCE_MAX_RETRIES: %w", err)
	}
	if sourceMaxRetries < 0 {
		return Config{}, fmt.Errorf("SOURCE_MAX_RETRIES must be >= 0")
	}
	sourceCircuitEnabled, err := strconv.ParseBool(getEnv("SOURCE_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SOURCE_CIRCUIT_ENABLED: %w", err)
	}
	sourceCircuitFailureCount, err := getEnvAsInt("SOURCE_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse SOURCE_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if sourceCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("SOURCE_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	sourceCircuitOpenTimeout, err := getEnvAsDuration("SOURCE_CIRCUIT_OPEN_TIMEOUT", "15s")
	if err != nil {
		return Config{}, err
	}
	sourceCircuitHalfOpenMaxReq, err := getEnvAsInt("SOURCE_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse SOURCE_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if sourceCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("SOURCE_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	salaryTTL, err := getEnvAsDuration("SALARY_TTL", "6h")
	if err != nil {
		return Config{}, err
	}
	rosterTTL, err := getEnvAsDuration("ROSTER_TTL", "1h")
	if err != nil {
		return Config{}, err
	}
	statsTTL, err := getEnvAsDuration("STATS_TTL", "1h")
	if err != nil {
		return Config{}, err
	}
	scoresLiveTTL, err := getEnvAsDuration("SCORES_LIVE_TTL", "15s")
	if err != nil {
		return Config{}, err
	}
	scoresIdleTTL, err := getEnvAsDuration("SCORES_IDLE_TTL", "10m")
	if err != nil {
		return Config{}, err
	}
	headlinesTTL, err := getEnvAsDuration("HEADLINES_TTL", "5m")
	if err != nil {
		return Config{}, err
	}
	feedTTL, err := getEnvAsDuration("FEED_TTL", "5m")
	if err != nil {
		return Config{}, err
	}
	prewarmDelay, err := getEnvAsDuration("PREWARM_DELAY", "2s")
	if err != nil {
		return Config{}, err
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	uptraceLogsEnabled, err := strconv.ParseBool(getEnv("UPTRACE_LOGS_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_LOGS_ENABLED: %w", err)
	}

	betterStackEnabled, err := strconv.ParseBool(getEnv("BETTERSTACK_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse BETTERSTACK_ENABLED: %w", err)
	}
	betterStackEndpoint := strings.TrimSpace(getEnv("BETTERSTACK_ENDPOINT", ""))
	if betterStackEnabled && betterStackEndpoint == "" {
		return Config{}, fmt.Errorf("BETTERSTACK_ENDPOINT is required when BETTERSTACK_ENABLED=true")
	}
	betterStackTimeout, err := getEnvAsDuration("BETTERSTACK_TIMEOUT", "3s")
	if err != nil {
		return Config{}, err
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := getEnvAsDuration("PYROSCOPE_UPLOAD_RATE", "15s")
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:             appEnv,
		ServiceName:        getEnv("APP_SERVICE_NAME", "courtside-api"),
		ServiceVersion:     getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:           getEnv("APP_HTTP_ADDR", ":8080"),
		ReadTimeout:        readTimeout,
		WriteTimeout:       writeTimeout,
		CORSAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		InternalJobToken:   strings.TrimSpace(getEnv("INTERNAL_JOB_TOKEN", "")),
		LogLevel:           parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),

		SheetsBaseURL: strings.TrimSpace(getEnv("SHEETS_BASE_URL", "")),
		SheetID:       strings.TrimSpace(getEnv("SHEET_ID", "")),
		SalaryGID:     strings.TrimSpace(getEnv("SALARY_SHEET_GID", "0")),
		DepthChartGID: strings.TrimSpace(getEnv("DEPTH_SHEET_GID", "1")),
		SalaryNameCol: salaryNameCol,
		SalaryCol:     salaryCol,
		SalaryTeamCol: salaryTeamCol,

		ScoresBaseURL: strings.TrimSpace(getEnv("SCORES_BASE_URL", "")),
		StatsBaseURL:  strings.TrimSpace(getEnv("STATS_BASE_URL", "")),
		StatsSeason:   strings.TrimSpace(getEnv("STATS_SEASON", "2025-26")),

		BskyBaseURL:  strings.TrimSpace(getEnv("BSKY_BASE_URL", "")),
		BskyAccounts: splitCSV(getEnv("BSKY_ACCOUNTS", "wojespn.bsky.social,shams.bsky.social,chrisbhaynes.bsky.social")),
		BskyMaxPosts: bskyMaxPosts,

		NewsFeedURL:         strings.TrimSpace(getEnv("NEWS_FEED_URL", "")),
		NewsFallbackFeedURL: strings.TrimSpace(getEnv("NEWS_FALLBACK_FEED_URL", "")),
		NewsMaxItems:        newsMaxItems,
		NewsNewThreshold:    newsNewThreshold,

		SourceTimeout:               sourceTimeout,
		SourceMaxRetries:            sourceMaxRetries,
		SourceCircuitEnabled:        sourceCircuitEnabled,
		SourceCircuitFailureCount:   sourceCircuitFailureCount,
		SourceCircuitOpenTimeout:    sourceCircuitOpenTimeout,
		SourceCircuitHalfOpenMaxReq: sourceCircuitHalfOpenMaxReq,

		SalaryTTL:     salaryTTL,
		RosterTTL:     rosterTTL,
		StatsTTL:      statsTTL,
		ScoresLiveTTL: scoresLiveTTL,
		ScoresIdleTTL: scoresIdleTTL,
		HeadlinesTTL:  headlinesTTL,
		FeedTTL:       feedTTL,
		PrewarmDelay:  prewarmDelay,

		PprofEnabled:               pprofEnabled,
		PprofAddr:                  pprofAddr,
		UptraceEnabled:             uptraceEnabled,
		UptraceDSN:                 uptraceDSN,
		UptraceLogsEnabled:         uptraceLogsEnabled,
		BetterStackEnabled:         betterStackEnabled,
		BetterStackEndpoint:        betterStackEndpoint,
		BetterStackToken:           strings.TrimSpace(getEnv("BETTERSTACK_TOKEN", "")),
		BetterStackTimeout:         betterStackTimeout,
		BetterStackMinLevel:        parseLogLevel(getEnv("BETTERSTACK_MIN_LEVEL", "error")),
		PyroscopeEnabled:           pyroscopeEnabled,
		PyroscopeServerAddress:     pyroscopeServerAddress,
		PyroscopeAuthToken:         strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword: strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:        pyroscopeUploadRate,
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	return cfg, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func getEnvAsDuration(key, fallback string) (time.Duration, error) {
	out, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if out <= 0 {
		return 0, fmt.Errorf("%s must be > 0", key)
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
