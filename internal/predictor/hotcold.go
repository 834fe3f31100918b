package predictor

import "math"

const (
	hotColdMinHistory = 10
	hotColdWindow     = 50
	// Ожидание для номеров, которых нет в окне
	maxExpectation = 5.0

	frequencyShare   = 0.4
	expectationShare = 0.6
)

// HotCold смешивает взвешенную частоту и "просроченность" номера
type HotCold struct{}

func (HotCold) Name() string {
	return NameHotCold
}

func (HotCold) Predict(seq []Outcome, count int, v Variant) []Outcome {
	if len(seq) < hotColdMinHistory {
		return []Outcome{}
	}

	recent := lastN(seq, hotColdWindow)
	windowLen := float64(len(recent))

	frequency := make(map[Outcome]float64, v.Size())
	lastIndex := make(map[Outcome]int, v.Size())
	for i, o := range recent {
		frequency[o] += 1 + float64(i)/windowLen
		lastIndex[o] = i
	}

	scores := make(map[Outcome]float64, v.Size())
	for _, o := range v.Space() {
		expectation := maxExpectation
		if idx, ok := lastIndex[o]; ok {
			gap := windowLen - float64(idx)
			expectation = math.Log(gap + 1)
		}
		scores[o] = frequencyShare*frequency[o] + expectationShare*expectation
	}

	return rankTop(scoresInSpace(scores, v), count)
}
