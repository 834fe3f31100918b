package predictor

import (
	"fmt"
	"strings"
)

// Variant тип стола
type Variant uint8

const (
	// American 0, 00, 1-36
	American Variant = iota
	// European 0, 1-36
	European
)

// Color цвет ячейки
type Color string

const (
	Green Color = "green"
	Red   Color = "red"
	Black Color = "black"
)

// Физический порядок ячеек американского колеса.
// Европейский стол использует тот же цикл без 00.
var americanWheel = []Outcome{
	Number(0), Number(28), Number(9), Number(26), Number(30), Number(11), Number(7),
	Number(20), Number(32), Number(17), Number(5), Number(22), Number(34), Number(15),
	Number(3), Number(24), Number(36), Number(13), Number(1), DoubleZero, Number(27),
	Number(10), Number(25), Number(29), Number(12), Number(8), Number(19), Number(31),
	Number(18), Number(6), Number(21), Number(33), Number(16), Number(4), Number(23),
	Number(35), Number(14), Number(2),
}

var redNumbers = map[int]struct{}{
	1: {}, 3: {}, 5: {}, 7: {}, 9: {}, 12: {}, 14: {}, 16: {}, 18: {},
	19: {}, 21: {}, 23: {}, 25: {}, 27: {}, 30: {}, 32: {}, 34: {}, 36: {},
}

// ParseVariant "american" или "european"
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "american", "us":
		return American, nil
	case "european", "eu":
		return European, nil
	}
	return American, fmt.Errorf("unknown roulette variant %q", s)
}

func (v Variant) String() string {
	if v == European {
		return "european"
	}
	return "american"
}

// Size размер активного пространства исходов
func (v Variant) Size() int {
	if v == European {
		return maxNumber + 1
	}
	return maxNumber + 2
}

// Space возвращает все исходы в каноническом порядке 0..36[, 00].
// Этот порядок используется для разрешения ничьих при сортировке.
func (v Variant) Space() []Outcome {
	space := make([]Outcome, 0, v.Size())
	for n := 0; n <= maxNumber; n++ {
		space = append(space, Number(n))
	}
	if v == American {
		space = append(space, DoubleZero)
	}
	return space
}

// Wheel возвращает копию физического порядка колеса
func (v Variant) Wheel() []Outcome {
	wheel := make([]Outcome, 0, len(americanWheel))
	for _, o := range americanWheel {
		if v == European && o.IsDoubleZero() {
			continue
		}
		wheel = append(wheel, o)
	}
	return wheel
}

// Contains проверяет принадлежность исхода активному пространству
func (v Variant) Contains(o Outcome) bool {
	if o.IsDoubleZero() {
		return v == American
	}
	return o.Valid()
}

// Color цвет ячейки на столе
func (o Outcome) Color() Color {
	if o.IsGreen() {
		return Green
	}
	if _, ok := redNumbers[o.number]; ok {
		return Red
	}
	return Black
}
