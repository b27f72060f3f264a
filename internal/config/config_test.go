package config

import (
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ServiceName != "courtside-api" {
		t.Fatalf("unexpected ServiceName: %q", cfg.ServiceName)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected HTTPAddr: %q", cfg.HTTPAddr)
	}
	if cfg.SalaryGID != "0" || cfg.DepthChartGID != "1" {
		t.Fatalf("unexpected sheet gids: %q %q", cfg.SalaryGID, cfg.DepthChartGID)
	}
	if cfg.SalaryNameCol != 0 || cfg.SalaryCol != 1 || cfg.SalaryTeamCol != 2 {
		t.Fatalf("unexpected salary columns: %d %d %d", cfg.SalaryNameCol, cfg.SalaryCol, cfg.SalaryTeamCol)
	}
	if cfg.ScoresLiveTTL != 15*time.Second {
		t.Fatalf("unexpected ScoresLiveTTL: %s", cfg.ScoresLiveTTL)
	}
	if cfg.ScoresIdleTTL != 10*time.Minute {
		t.Fatalf("unexpected ScoresIdleTTL: %s", cfg.ScoresIdleTTL)
	}
	if cfg.StatsSeason != "2025-26" {
		t.Fatalf("unexpected StatsSeason: %q", cfg.StatsSeason)
	}
	if len(cfg.BskyAccounts) == 0 {
		t.Fatalf("expected default bsky accounts")
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("unexpected CORSAllowedOrigins: %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoad_SheetConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("SHEET_ID", "1AbcDef")
	t.Setenv("SALARY_SHEET_GID", "1177310098")
	t.Setenv("DEPTH_SHEET_GID", "42")
	t.Setenv("SALARY_TEAM_COL", "3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.SheetID != "1AbcDef" {
		t.Fatalf("unexpected SheetID: %q", cfg.SheetID)
	}
	if cfg.SalaryGID != "1177310098" || cfg.DepthChartGID != "42" {
		t.Fatalf("unexpected gids: %q %q", cfg.SalaryGID, cfg.DepthChartGID)
	}
	if cfg.SalaryTeamCol != 3 {
		t.Fatalf("unexpected SalaryTeamCol: %d", cfg.SalaryTeamCol)
	}
}

func TestLoad_RejectsNegativeColumn(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("SALARY_TEAM_COL", "-1")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for negative SALARY_TEAM_COL")
	}
}

func TestLoad_RejectsNonPositiveTTL(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("SCORES_LIVE_TTL", "0s")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for SCORES_LIVE_TTL=0s")
	}
}

func TestLoad_BskyAccountsCSV(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("BSKY_ACCOUNTS", " a.bsky.social , ,b.bsky.social ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if len(cfg.BskyAccounts) != 2 || cfg.BskyAccounts[0] != "a.bsky.social" || cfg.BskyAccounts[1] != "b.bsky.social" {
		t.Fatalf("unexpected BskyAccounts: %v", cfg.BskyAccounts)
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_BetterStackRequiresEndpointWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("BETTERSTACK_ENABLED", "true")
	t.Setenv("BETTERSTACK_ENDPOINT", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when BETTERSTACK_ENABLED=true without BETTERSTACK_ENDPOINT")
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestParseLogLevel(t *testing.T) {
	cases := map[string]string{
		"debug":   "debug",
		"WARN":    "warn",
		"warning": "warn",
		"error":   "error",
		"":        "info",
		"bogus":   "info",
	}
	for in, want := range cases {
		if got := parseLogLevel(in).String(); got != want {
			t.Fatalf("parseLogLevel(%q) = %q, want %q", in, got, want)
		}
	}
}
