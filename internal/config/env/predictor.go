package env

import (
	"errors"
	"fmt"
	"os"

	"roulette_backend/internal/config"
	"roulette_backend/internal/predictor"

	"gopkg.in/yaml.v3"
)

const (
	defaultHistoryLimit    = 10
	defaultStatsWindow     = 100
	defaultMaxHotFrequency = 10
)

var ErrInvalidPredictorConfig = errors.New("invalid predictor config")

// Секция predictor в config.yaml
type predictorYAML struct {
	Predictor struct {
		Count           *int   `yaml:"count"`
		Variant         string `yaml:"variant"`
		HistoryLimit    *int   `yaml:"history_limit"`
		StatsWindow     *int   `yaml:"stats_window"`
		MaxHotFrequency *int   `yaml:"max_hot_frequency"`
	} `yaml:"predictor"`
}

type predictorConfig struct {
	count           int
	variant         predictor.Variant
	historyLimit    int
	statsWindow     int
	maxHotFrequency int
}

// NewPredictorConfigFromYAML читает config.yaml.
// Если файла нет, используются значения по умолчанию
func NewPredictorConfigFromYAML(path string) (config.PredictorConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ParsePredictorConfig(nil)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return ParsePredictorConfig(data)
}

// ParsePredictorConfig разбирает YAML и проверяет значения
func ParsePredictorConfig(data []byte) (config.PredictorConfig, error) {
	var raw predictorYAML
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPredictorConfig, err)
	}
	p := raw.Predictor

	variant, err := predictor.ParseVariant(p.Variant)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPredictorConfig, err)
	}

	cfg := &predictorConfig{
		count:           intOr(p.Count, predictor.DefaultCount),
		variant:         variant,
		historyLimit:    intOr(p.HistoryLimit, defaultHistoryLimit),
		statsWindow:     intOr(p.StatsWindow, defaultStatsWindow),
		maxHotFrequency: intOr(p.MaxHotFrequency, defaultMaxHotFrequency),
	}

	if cfg.count < 1 || cfg.count > variant.Size() {
		return nil, fmt.Errorf("%w: count must be in 1..%d", ErrInvalidPredictorConfig, variant.Size())
	}
	if cfg.historyLimit < 1 {
		return nil, fmt.Errorf("%w: history_limit must be positive", ErrInvalidPredictorConfig)
	}
	if cfg.statsWindow < 1 {
		return nil, fmt.Errorf("%w: stats_window must be positive", ErrInvalidPredictorConfig)
	}
	if cfg.maxHotFrequency < 1 {
		return nil, fmt.Errorf("%w: max_hot_frequency must be positive", ErrInvalidPredictorConfig)
	}

	return cfg, nil
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

func (c *predictorConfig) Count() int {
	return c.count
}

func (c *predictorConfig) Variant() predictor.Variant {
	return c.variant
}

func (c *predictorConfig) HistoryLimit() int {
	return c.historyLimit
}

func (c *predictorConfig) StatsWindow() int {
	return c.statsWindow
}

func (c *predictorConfig) MaxHotFrequency() int {
	return c.maxHotFrequency
}
