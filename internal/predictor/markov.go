package predictor

// Минимальная длина истории для цепи Маркова
const markovMinHistory = 5

// Markov предсказывает продолжение последнего исхода по таблице переходов
type Markov struct{}

func (Markov) Name() string {
	return NameMarkov
}

func (Markov) Predict(seq []Outcome, count int, v Variant) []Outcome {
	if len(seq) < markovMinHistory {
		return []Outcome{}
	}

	space := v.Space()
	index := make(map[Outcome]int, len(space))
	for i, o := range space {
		index[o] = i
	}

	// Полная таблица |space| x |space|
	table := make([][]float64, len(space))
	for i := range table {
		table[i] = make([]float64, len(space))
	}

	for i := 0; i < len(seq)-1; i++ {
		from, okFrom := index[seq[i]]
		to, okTo := index[seq[i+1]]
		if !okFrom || !okTo {
			continue
		}
		table[from][to]++
	}

	// Счётчики в вероятности, пустые строки остаются нулевыми
	for _, row := range table {
		var total float64
		for _, c := range row {
			total += c
		}
		if total == 0 {
			continue
		}
		for j := range row {
			row[j] /= total
		}
	}

	last, ok := index[seq[len(seq)-1]]
	if !ok {
		return []Outcome{}
	}

	items := make([]scored, 0)
	for j, p := range table[last] {
		if p > 0 {
			items = append(items, scored{outcome: space[j], score: p})
		}
	}
	return rankTop(items, count)
}
