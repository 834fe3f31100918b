package roulette

import "roulette_backend/internal/predictor"

type AddSpinRequest struct {
	Number *predictor.Outcome `json:"number"` // Выпавший номер: 0..36 или "00"
}

type HotNumber struct {
	Number *predictor.Outcome `json:"number"`
	Count  int                `json:"count,omitempty"` // Сколько раз добавить, по умолчанию 1
}

type HotNumbersRequest struct {
	Numbers []HotNumber `json:"numbers"` // До трёх горячих номеров
}

type AnalyzerResponse struct {
	Name        string              `json:"name"`
	Weight      float64             `json:"weight"`
	Predictions []predictor.Outcome `json:"predictions"`
}

type VoteResponse struct {
	Number predictor.Outcome `json:"number"`
	Score  float64           `json:"score"`
}

type PredictionResponse struct {
	Predictions []predictor.Outcome `json:"predictions"`  // Итоговый набор по убыванию уверенности
	Analyzers   []AnalyzerResponse  `json:"analyzers"`    // Разбивка по методам
	Votes       []VoteResponse      `json:"votes"`        // Баллы голосования, только ненулевые
	HistoryLen  int                 `json:"history_len"`  // Длина истории с горячими номерами
	RecentHits  []predictor.Outcome `json:"recent_hits"`  // Последние угаданные номера
	Checks      int                 `json:"checks"`       // Всего сверок
	Hits        int                 `json:"hits"`         // Угадано
	SuccessRate float64             `json:"success_rate"` // Доля угаданных, 0..1
}

type CheckResponse struct {
	Number    predictor.Outcome `json:"number"`
	Predicted bool              `json:"predicted"` // Был ли номер в прошлом наборе
}

type AddSpinResponse struct {
	Number     predictor.Outcome  `json:"number"`
	Color      string             `json:"color"`
	Check      *CheckResponse     `json:"check,omitempty"` // Нет, если предсказания ещё не было
	Prediction PredictionResponse `json:"prediction"`
}

type HistoryItem struct {
	Number predictor.Outcome `json:"number"`
	Color  string            `json:"color"`
}

type ColorStats struct {
	Red          int `json:"red"`
	Black        int `json:"black"`
	Total        int `json:"total"`
	RedPercent   int `json:"red_percent"`
	BlackPercent int `json:"black_percent"`
}

type HistoryResponse struct {
	Results    []HistoryItem `json:"results"`
	TotalSpins int           `json:"total_spins"`
	Colors     ColorStats    `json:"colors"`
}

type StatsResponse struct {
	TotalChecks   int     `json:"total_checks"`
	Hits          int     `json:"hits"`
	HitRate       float64 `json:"hit_rate"`
	WindowSize    int     `json:"window_size"`
	WindowChecks  int     `json:"window_checks"`
	WindowHitRate float64 `json:"window_hit_rate"`
	BaselineRate  float64 `json:"baseline_rate"` // Вероятность угадать случайным набором
}
