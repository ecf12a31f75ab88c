package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type Config struct {
	DBPath     string
	ServerPort string
	LogLevel   string

	// AllowedOrigins is a comma separated CORS allow list.
	AllowedOrigins []string

	// RosterURL points at a JSON squads/fixtures feed. Empty means the
	// embedded season data is used.
	RosterURL    string
	RosterAPIKey string

	// AwardAbsentParticipation scores drafted players with no recorded
	// performance as a zero stat line (which still earns the playing-seven
	// bonus). When false they contribute nothing.
	AwardAbsentParticipation bool
	StrikeRateBanded         bool
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		DBPath:                   getEnv("DB_PATH", "fantasy.db"),
		ServerPort:               getEnv("SERVER_PORT", "8080"),
		LogLevel:                 getEnv("LOG_LEVEL", "info"),
		AllowedOrigins:           getList("CORS_ALLOWED_ORIGINS", "*"),
		RosterURL:                getEnv("ROSTER_URL", ""),
		RosterAPIKey:             getEnv("ROSTER_API_KEY", ""),
		AwardAbsentParticipation: getBool("AWARD_ABSENT_PARTICIPATION", true),
		StrikeRateBanded:         getBool("STRIKE_RATE_BANDED", false),
	}

	logger.Info().
		Str("db_path", cfg.DBPath).
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Strs("allowed_origins", cfg.AllowedOrigins).
		Bool("remote_roster", cfg.RosterURL != "").
		Bool("award_absent_participation", cfg.AwardAbsentParticipation).
		Bool("strike_rate_banded", cfg.StrikeRateBanded).
		Msg("configuration loaded")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getList(key, fallback string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, fallback), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

var Module = fx.Provide(Load)
