package roulette

import (
	"roulette_backend/internal/config"
	"roulette_backend/internal/metrics"
	"roulette_backend/internal/predictor"
	"roulette_backend/internal/repository"
	"roulette_backend/internal/service"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
)

const (
	// Максимум горячих номеров за один ввод
	maxHotNumbers = 3
	// Сколько последних угаданных номеров показывать
	recentHitsLimit = 10
)

type serv struct {
	cfg            config.PredictorConfig
	engine         *predictor.Engine
	spinRepo       repository.SpinRepository
	predictionRepo repository.PredictionRepository
	accuracyRepo   repository.AccuracyRepository
	txManager      trm.Manager
	metrics        *metrics.Registry
}

// NewRouletteService сервис истории и предсказаний
func NewRouletteService(
	cfg config.PredictorConfig,
	engine *predictor.Engine,
	spinRepo repository.SpinRepository,
	predictionRepo repository.PredictionRepository,
	accuracyRepo repository.AccuracyRepository,
	txManager trm.Manager,
	metrics *metrics.Registry,
) service.RouletteService {
	return &serv{
		cfg:            cfg,
		engine:         engine,
		spinRepo:       spinRepo,
		predictionRepo: predictionRepo,
		accuracyRepo:   accuracyRepo,
		txManager:      txManager,
		metrics:        metrics,
	}
}
