package model

import (
	"time"

	"roulette_backend/internal/predictor"
)

// Prediction текущий набор предсказаний пользователя
type Prediction struct {
	UserID     int
	Outcomes   []predictor.Outcome
	HistoryLen int
	Seed       int64 // Seed случайной добивки, по нему разбивка восстанавливается
	CreatedAt  time.Time
}

// PredictionCheck сверка нового результата с предыдущим предсказанием
type PredictionCheck struct {
	UserID    int
	Outcome   predictor.Outcome
	Predicted bool
	CreatedAt time.Time
}

// PredictionView то, что видит клиент
type PredictionView struct {
	Predictions []predictor.Outcome
	Analyzers   []predictor.AnalyzerResult
	Votes       []predictor.Vote
	HistoryLen  int
	RecentHits  []predictor.Outcome
	Checks      int
	Hits        int
	SuccessRate float64
}

// AddResultOutput результат добавления номера
type AddResultOutput struct {
	Spin       Spin
	Check      *PredictionCheck
	Prediction *PredictionView
}

// AccuracyStats сводка точности по процессу
type AccuracyStats struct {
	TotalChecks   int
	Hits          int
	HitRate       float64
	WindowSize    int
	WindowChecks  int
	WindowHitRate float64
	BaselineRate  float64
}
