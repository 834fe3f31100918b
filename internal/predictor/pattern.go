package predictor

import "math/rand"

const (
	patternMinHistory = 15
	minPatternLength  = 2
	maxPatternLength  = 5
	// Ближайшие номера по значению, не по колесу
	neighborSpread = 3
)

// Pattern ищет повтор хвоста истории и голосует за то, что шло после него.
// Rand используется только для добивки недостающих кандидатов.
type Pattern struct {
	Rand *rand.Rand
}

func (Pattern) Name() string {
	return NamePattern
}

func (p Pattern) Predict(seq []Outcome, count int, v Variant) []Outcome {
	n := len(seq)
	if n < patternMinHistory || count <= 0 {
		return []Outcome{}
	}

	candidates := newOrderedSet()
	for length := minPatternLength; length <= maxPatternLength; length++ {
		tail := seq[n-length:]

		for i := 0; i <= n-2*length; i++ {
			if !matchAt(seq, i, tail) {
				continue
			}
			if next := seq[i+length]; v.Contains(next) {
				candidates.add(next)
			}
		}
	}

	// Соседи последнего номера: -1, +1, -2, +2, -3, +3
	if candidates.len() < count {
		if last, ok := seq[n-1].Int(); ok {
			for d := 1; d <= neighborSpread; d++ {
				for _, num := range []int{last - d, last + d} {
					if num >= 1 && num <= maxNumber {
						candidates.add(Number(num))
					}
				}
			}
		}
	}

	if candidates.len() < count {
		for _, o := range shuffledRemainder(v.Space(), candidates, p.rand()) {
			if candidates.len() >= count {
				break
			}
			candidates.add(o)
		}
	}

	res := candidates.items
	if len(res) > count {
		res = res[:count]
	}
	return res
}

func (p Pattern) rand() *rand.Rand {
	if p.Rand != nil {
		return p.Rand
	}
	return rand.New(rand.NewSource(rand.Int63()))
}

func matchAt(seq []Outcome, start int, tail []Outcome) bool {
	for j, o := range tail {
		if seq[start+j] != o {
			return false
		}
	}
	return true
}

// shuffledRemainder исходы стола, которых ещё нет в selected, в случайном порядке
func shuffledRemainder(space []Outcome, selected *orderedSet, rnd *rand.Rand) []Outcome {
	rest := make([]Outcome, 0, len(space))
	for _, o := range space {
		if !selected.has(o) {
			rest = append(rest, o)
		}
	}
	rnd.Shuffle(len(rest), func(i, j int) {
		rest[i], rest[j] = rest[j], rest[i]
	})
	return rest
}
