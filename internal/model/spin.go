package model

import (
	"time"

	"roulette_backend/internal/predictor"
)

// SpinKind откуда пришёл номер
type SpinKind string

const (
	// SpinKindResult реальный результат стола, попадает в историю
	SpinKindResult SpinKind = "result"
	// SpinKindHot горячий номер от казино, участвует только в предсказаниях
	SpinKindHot SpinKind = "hot"
)

type Spin struct {
	ID        int64
	UserID    int
	Outcome   predictor.Outcome
	Kind      SpinKind
	CreatedAt time.Time
}

// HotNumber горячий номер и сколько раз его добавить
type HotNumber struct {
	Outcome predictor.Outcome
	Count   int
}

// HistoryItem номер для отображения
type HistoryItem struct {
	Outcome predictor.Outcome
	Color   predictor.Color
}

// ColorStats статистика красное/чёрное, зеро не учитываются
type ColorStats struct {
	RedCount     int
	BlackCount   int
	Total        int
	RedPercent   int
	BlackPercent int
}

type History struct {
	Results    []HistoryItem
	TotalSpins int
	Colors     ColorStats
}
