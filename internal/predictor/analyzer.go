package predictor

import "sort"

// Analyzer независимый метод предсказания.
// Не хранит состояние между вызовами и не изменяет seq.
type Analyzer interface {
	Name() string
	Predict(seq []Outcome, count int, v Variant) []Outcome
}

const (
	NameBayesian = "bayesian"
	NameMarkov   = "markov"
	NameSector   = "sector"
	NameHotCold  = "hot_cold"
	NamePattern  = "pattern"
)

type scored struct {
	outcome Outcome
	score   float64
}

// rankTop стабильно сортирует по убыванию и возвращает первые count исходов.
// Вход должен быть в каноническом порядке, тогда ничьи детерминированы.
func rankTop(items []scored, count int) []Outcome {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].score > items[j].score
	})

	if count > len(items) {
		count = len(items)
	}
	if count < 0 {
		count = 0
	}

	res := make([]Outcome, count)
	for i := 0; i < count; i++ {
		res[i] = items[i].outcome
	}
	return res
}

// scoresInSpace раскладывает map очков в канонический порядок стола
func scoresInSpace(scores map[Outcome]float64, v Variant) []scored {
	space := v.Space()
	items := make([]scored, 0, len(space))
	for _, o := range space {
		items = append(items, scored{outcome: o, score: scores[o]})
	}
	return items
}

func lastN(seq []Outcome, n int) []Outcome {
	if len(seq) <= n {
		return seq
	}
	return seq[len(seq)-n:]
}

// orderedSet множество с сохранением порядка добавления
type orderedSet struct {
	items []Outcome
	seen  map[Outcome]struct{}
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: make(map[Outcome]struct{})}
}

func (s *orderedSet) add(o Outcome) {
	if _, ok := s.seen[o]; ok {
		return
	}
	s.seen[o] = struct{}{}
	s.items = append(s.items, o)
}

func (s *orderedSet) has(o Outcome) bool {
	_, ok := s.seen[o]
	return ok
}

func (s *orderedSet) len() int {
	return len(s.items)
}
