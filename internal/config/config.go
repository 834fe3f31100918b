package config

import (
	"time"

	"roulette_backend/internal/predictor"

	"github.com/joho/godotenv"
)

func Load(path string) error {
	err := godotenv.Load(path)
	if err != nil {
		return err
	}
	return nil
}

type PredictorConfig interface {
	Count() int
	Variant() predictor.Variant
	HistoryLimit() int
	StatsWindow() int
	MaxHotFrequency() int
}

type HTTPConfig interface {
	Address() string
}

type PGConfig interface {
	DSN() string
}

type JWTConfig interface {
	AccessTokenSecretKey() []byte
	AccessTokenDuration() time.Duration
	RefreshTokenDuration() time.Duration
}

type LogConfig interface {
	Level() string
	Pretty() bool
}
