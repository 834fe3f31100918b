package predictor

const (
	sectorMinHistory = 10
	// Соседи с каждой стороны, сектор из 5 ячеек
	sectorRadius = 2
)

// Sector оценивает исходы по попаданиям в соседние ячейки на колесе
type Sector struct{}

func (Sector) Name() string {
	return NameSector
}

func (Sector) Predict(seq []Outcome, count int, v Variant) []Outcome {
	if len(seq) < sectorMinHistory {
		return []Outcome{}
	}

	scores := make(map[Outcome]float64, v.Size())
	for o, sum := range SectorScores(seq, v) {
		scores[o] = float64(sum)
	}

	return rankTop(scoresInSpace(scores, v), count)
}

// SectorScores сумма попаданий по сектору для каждой ячейки колеса
func SectorScores(seq []Outcome, v Variant) map[Outcome]int {
	wheel := v.Wheel()
	hits := make(map[Outcome]int, len(wheel))
	for _, o := range seq {
		if v.Contains(o) {
			hits[o]++
		}
	}

	res := make(map[Outcome]int, len(wheel))
	for i, o := range wheel {
		for d := -sectorRadius; d <= sectorRadius; d++ {
			res[o] += hits[wheel[(i+d+len(wheel))%len(wheel)]]
		}
	}
	return res
}
