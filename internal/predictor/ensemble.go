package predictor

import (
	"math/rand"
	"sort"
	"time"
)

const (
	// DefaultCount размер набора предсказаний по умолчанию
	DefaultCount = 6
	// MinHistory меньше этого предсказаний нет
	MinHistory = 10

	// Пороги истории для подключения методов
	advancedMinHistory = 15
	sectorGateHistory  = 20
)

// Веса доверия к методам
const (
	weightBayesian = 1.0
	weightMarkov   = 0.8
	weightSector   = 0.7
	weightHotCold  = 0.9
	weightPattern  = 0.8
)

// AnalyzerResult ранжированный ответ одного метода
type AnalyzerResult struct {
	Name        string
	Weight      float64
	Predictions []Outcome
}

// Vote итоговый балл исхода
type Vote struct {
	Outcome Outcome
	Score   float64
}

// Result набор предсказаний и разбивка по методам
type Result struct {
	Predictions []Outcome
	Analyzers   []AnalyzerResult
	Votes       []Vote
	// Seed случайной добивки, PredictWithSeed с ним повторит результат
	Seed int64
}

// Engine ансамбль методов со взвешенным голосованием.
// Безопасен для конкурентного использования: всё состояние вызова локально.
type Engine struct {
	seed  func() int64
	prior map[Outcome]float64
}

type Option func(*Engine)

// WithSeed фиксирует seed случайной добивки, результаты воспроизводимы
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.seed = func() int64 { return seed }
	}
}

// WithPrior априорное распределение для байесовского метода
func WithPrior(prior map[Outcome]float64) Option {
	return func(e *Engine) {
		e.prior = make(map[Outcome]float64, len(prior))
		for o, p := range prior {
			e.prior[o] = p
		}
	}
}

func New(opts ...Option) *Engine {
	e := &Engine{
		seed: func() int64 { return time.Now().UnixNano() },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// GeneratePredictions ансамбль с настройками по умолчанию
func GeneratePredictions(seq []Outcome, count int, v Variant) []Outcome {
	return New().Predict(seq, count, v).Predictions
}

type stage struct {
	analyzer   Analyzer
	weight     float64
	minHistory int
}

// Predict возвращает до count исходов по убыванию уверенности.
// При истории короче MinHistory результат пустой, это не ошибка.
func (e *Engine) Predict(seq []Outcome, count int, v Variant) Result {
	return e.PredictWithSeed(seq, count, v, e.seed())
}

// PredictWithSeed как Predict, но с явным seed случайной добивки
func (e *Engine) PredictWithSeed(seq []Outcome, count int, v Variant, seed int64) Result {
	if len(seq) < MinHistory || count <= 0 {
		return Result{Predictions: []Outcome{}, Seed: seed}
	}

	rnd := rand.New(rand.NewSource(seed))

	stages := []stage{
		{analyzer: Bayesian{Prior: e.prior}, weight: weightBayesian},
		{analyzer: Markov{}, weight: weightMarkov, minHistory: advancedMinHistory},
		{analyzer: Sector{}, weight: weightSector, minHistory: sectorGateHistory},
		{analyzer: HotCold{}, weight: weightHotCold, minHistory: advancedMinHistory},
		{analyzer: Pattern{Rand: rnd}, weight: weightPattern, minHistory: advancedMinHistory},
	}

	space := v.Space()
	tally := make(map[Outcome]float64, len(space))
	for _, o := range space {
		tally[o] = 0
	}

	res := Result{Analyzers: make([]AnalyzerResult, 0, len(stages)), Seed: seed}
	for _, st := range stages {
		var predictions []Outcome
		if len(seq) >= st.minHistory {
			predictions = st.analyzer.Predict(seq, count, v)
		}
		addVotes(tally, predictions, st.weight)

		res.Analyzers = append(res.Analyzers, AnalyzerResult{
			Name:        st.analyzer.Name(),
			Weight:      st.weight,
			Predictions: predictions,
		})
	}

	votes := make([]Vote, 0, len(space))
	for _, o := range space {
		votes = append(votes, Vote{Outcome: o, Score: tally[o]})
	}
	sort.SliceStable(votes, func(i, j int) bool {
		return votes[i].Score > votes[j].Score
	})
	res.Votes = votes

	selected := newOrderedSet()
	for _, vt := range votes {
		if selected.len() >= count || vt.Score <= 0 {
			break
		}
		selected.add(vt.Outcome)
	}

	// Добивка случайными исходами, если голосов не хватило
	if selected.len() < count {
		for _, o := range shuffledRemainder(space, selected, rnd) {
			if selected.len() >= count {
				break
			}
			selected.add(o)
		}
	}

	res.Predictions = selected.items
	return res
}

// addVotes позиционный вес (len-rank)/len, умноженный на доверие к методу.
// Исходы вне стола игнорируются.
func addVotes(tally map[Outcome]float64, predictions []Outcome, weight float64) {
	total := float64(len(predictions))
	for rank, o := range predictions {
		if _, ok := tally[o]; !ok {
			continue
		}
		// (len-rank)/len считается до умножения на доверие
		tally[o] += weight * ((total - float64(rank)) / total)
	}
}
