package predictor

const (
	// Окно последних результатов для байесовского обновления
	bayesWindow = 30
	// Буст для исходов из последовательных паттернов
	sequenceBoost = 1.2
)

// Bayesian байесовская оценка с весом по свежести.
// Prior опционален, по умолчанию равномерное распределение по столу.
type Bayesian struct {
	Prior map[Outcome]float64
}

func (b Bayesian) Name() string {
	return NameBayesian
}

func (b Bayesian) Predict(seq []Outcome, count int, v Variant) []Outcome {
	return BayesianPredictions(seq, count, v, b.Prior)
}

// distribution распределение вероятностей в каноническом порядке стола
type distribution struct {
	items []scored
	index map[Outcome]int
}

func newDistribution(v Variant, prior map[Outcome]float64) *distribution {
	d := &distribution{index: make(map[Outcome]int)}
	space := v.Space()

	for _, o := range space {
		p := 1 / float64(len(space))
		if prior != nil {
			var ok bool
			p, ok = prior[o]
			if !ok {
				continue
			}
		}
		d.index[o] = len(d.items)
		d.items = append(d.items, scored{outcome: o, score: p})
	}
	return d
}

func (d *distribution) multiply(o Outcome, k float64) bool {
	i, ok := d.index[o]
	if !ok {
		return false
	}
	d.items[i].score *= k
	return true
}

func (d *distribution) normalize() {
	var total float64
	for _, it := range d.items {
		total += it.score
	}
	if total <= 0 {
		return
	}
	for i := range d.items {
		d.items[i].score /= total
	}
}

// BayesianPredictions возвращает count исходов с наибольшей апостериорной вероятностью
func BayesianPredictions(seq []Outcome, count int, v Variant, prior map[Outcome]float64) []Outcome {
	if len(seq) == 0 {
		return []Outcome{}
	}

	posterior := newDistribution(v, prior)
	recent := lastN(seq, bayesWindow)
	windowLen := float64(len(recent))

	// Нормализация после каждого отдельного обновления
	for i, o := range recent {
		w := 0.5 + 0.5*(float64(i)/windowLen)
		if !posterior.multiply(o, 1+w) {
			continue
		}
		posterior.normalize()
	}

	sequences := newOrderedSet()
	for _, o := range sequentialPatterns(seq) {
		sequences.add(o)
	}

	recentCount := make(map[Outcome]int)
	for _, o := range recent {
		recentCount[o]++
	}

	for _, it := range posterior.items {
		o := it.outcome
		if sequences.has(o) {
			posterior.multiply(o, sequenceBoost)
		}
		if c := recentCount[o]; c > 1 {
			posterior.multiply(o, 1+float64(c)/windowLen)
		}
	}
	posterior.normalize()

	items := make([]scored, len(posterior.items))
	copy(items, posterior.items)
	return rankTop(items, count)
}

// sequentialPatterns исходы, идущие подряд за ненулевыми номерами (без 0 и 00)
func sequentialPatterns(seq []Outcome) []Outcome {
	n := len(seq)
	if n < 3 {
		return nil
	}

	set := newOrderedSet()
	for i := 0; i < n-2; i++ {
		if seq[i].IsGreen() || seq[i+1].IsGreen() {
			continue
		}
		set.add(seq[i+1])

		if i < n-3 && !seq[i+2].IsGreen() {
			set.add(seq[i+2])
		}
	}
	return set.items
}
