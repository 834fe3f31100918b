package env

import (
	"os"
	"strconv"

	"roulette_backend/internal/config"
)

const (
	logLevelEnvName  = "LOG_LEVEL"
	logPrettyEnvName = "LOG_PRETTY"
)

type logConfig struct {
	level  string
	pretty bool
}

// NewLogConfig без ошибок: по умолчанию info и JSON
func NewLogConfig() config.LogConfig {
	level := os.Getenv(logLevelEnvName)
	if level == "" {
		level = "info"
	}
	pretty, _ := strconv.ParseBool(os.Getenv(logPrettyEnvName))

	return &logConfig{
		level:  level,
		pretty: pretty,
	}
}

func (cfg *logConfig) Level() string {
	return cfg.level
}

func (cfg *logConfig) Pretty() bool {
	return cfg.pretty
}
