package config

import (
	"log/slog"
	"os"
	"strings"
	"time"
)

type APIConfig struct {
	Addr            string
	LogLevel        slog.Level
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

type CLIConfig struct {
	HistoryDir string
}

func LoadAPIFromEnv() APIConfig {
	addr := strings.TrimSpace(os.Getenv("PORT"))
	if addr != "" {
		if !strings.HasPrefix(addr, ":") {
			addr = ":" + addr
		}
	} else {
		addr = envDefault("MERCH_API_ADDR", ":8080")
	}

	return APIConfig{
		Addr:            addr,
		LogLevel:        envLevelDefault("MERCH_LOG_LEVEL", slog.LevelInfo),
		RequestTimeout:  envDurationDefault("MERCH_REQUEST_TIMEOUT", 30*time.Second),
		ShutdownTimeout: envDurationDefault("MERCH_SHUTDOWN_TIMEOUT", 15*time.Second),
	}
}

func LoadCLIFromEnv() CLIConfig {
	return CLIConfig{
		HistoryDir: envDefault("MRC_HISTORY_DIR", ""),
	}
}

func envDefault(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func envDurationDefault(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func envLevelDefault(key string, fallback slog.Level) slog.Level {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return fallback
	}
}
