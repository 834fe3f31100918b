package accuracy_repo

import (
	"math"
	"sync"
	"time"

	"roulette_backend/internal/model"

	"github.com/rs/zerolog/log"
)

const (
	// periodChecksToInspect Периодичность проверки дрейфа (каждые N сверок)
	periodChecksToInspect = 25
	// maxAllowedDeviation Допустимое отклонение точности окна от базовой, процентные пункты
	maxAllowedDeviation = 10.0
)

// DriftLog запись об отклонении точности
type DriftLog struct {
	Timestamp     time.Time
	WindowHitRate float64
	BaselineRate  float64
	Direction     string
}

// state Состояние точности предсказаний
type state struct {
	TotalChecks int // Сколько всего сверок
	Hits        int // Сколько из них угадано

	Window     []bool // Окно последних сверок
	WindowSize int    // Размер окна
	WindowHits int

	BaselineRate float64 // Точность случайного угадывания count/|space|

	Drifts []DriftLog
}

// StatsRepo потокобезопасное хранилище статистики точности
type StatsRepo struct {
	mtx   sync.RWMutex
	state state
}

// NewAccuracyRepository baseline - вероятность угадать случайным набором (count/|space|)
func NewAccuracyRepository(windowSize int, baseline float64) *StatsRepo {
	if windowSize <= 0 {
		windowSize = 1
	}
	return &StatsRepo{
		state: state{
			Window:       make([]bool, 0, windowSize),
			WindowSize:   windowSize,
			BaselineRate: baseline,
			Drifts:       make([]DriftLog, 0),
		},
	}
}

// Record Обновление статистики после сверки
func (r *StatsRepo) Record(predicted bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.state.TotalChecks++
	if predicted {
		r.state.Hits++
		r.state.WindowHits++
	}

	r.state.Window = append(r.state.Window, predicted)

	// Поддерживаем размер окна
	if len(r.state.Window) > r.state.WindowSize {
		if r.state.Window[0] {
			r.state.WindowHits--
		}
		r.state.Window = r.state.Window[1:]
	}
}

// Stats Возвращает копию сводки
func (r *StatsRepo) Stats() model.AccuracyStats {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	res := model.AccuracyStats{
		TotalChecks:  r.state.TotalChecks,
		Hits:         r.state.Hits,
		WindowSize:   r.state.WindowSize,
		WindowChecks: len(r.state.Window),
		BaselineRate: r.state.BaselineRate,
	}
	if r.state.TotalChecks > 0 {
		res.HitRate = float64(r.state.Hits) / float64(r.state.TotalChecks)
	}
	if len(r.state.Window) > 0 {
		res.WindowHitRate = float64(r.state.WindowHits) / float64(len(r.state.Window))
	}
	return res
}

// CheckDrift Каждые periodChecksToInspect сверок сравнивает точность окна с базовой.
// Возвращает true, если отклонение превысило допустимое
func (r *StatsRepo) CheckDrift() bool {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	if r.state.TotalChecks == 0 || r.state.TotalChecks%periodChecksToInspect != 0 {
		return false
	}

	windowRate := float64(r.state.WindowHits) / float64(len(r.state.Window))
	diff := (windowRate - r.state.BaselineRate) * 100
	if math.Abs(diff) <= maxAllowedDeviation {
		return false
	}

	direction := "above"
	if diff < 0 {
		direction = "below"
	}

	r.state.Drifts = append(r.state.Drifts, DriftLog{
		Timestamp:     time.Now(),
		WindowHitRate: windowRate,
		BaselineRate:  r.state.BaselineRate,
		Direction:     direction,
	})

	log.Info().
		Float64("window_hit_rate", windowRate).
		Float64("baseline_rate", r.state.BaselineRate).
		Str("direction", direction).
		Msg("prediction accuracy drifted from baseline")

	return true
}

// Drifts история отклонений
func (r *StatsRepo) Drifts() []DriftLog {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	res := make([]DriftLog, len(r.state.Drifts))
	copy(res, r.state.Drifts)
	return res
}
