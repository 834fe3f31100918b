package predictor

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	// Максимальный обычный номер на колесе
	maxNumber = 36
	// Строковое представление двойного зеро
	doubleZeroText = "00"
)

var ErrInvalidOutcome = errors.New("invalid roulette outcome")

// Outcome результат одного спина: обычный номер 0..36 или двойное зеро.
// 00 и 0 разные исходы, сравнение только через ==.
type Outcome struct {
	number     int
	doubleZero bool
}

// DoubleZero сентинел 00 (только американский стол)
var DoubleZero = Outcome{doubleZero: true}

// Number создаёт обычный исход. Значение не проверяется, см. Valid.
func Number(n int) Outcome {
	return Outcome{number: n}
}

// Numbers удобный конструктор последовательности из обычных номеров
func Numbers(ns ...int) []Outcome {
	res := make([]Outcome, len(ns))
	for i, n := range ns {
		res[i] = Number(n)
	}
	return res
}

// ParseOutcome нормализует сырой ввод: "00" или целое 0..36
func ParseOutcome(s string) (Outcome, error) {
	s = strings.TrimSpace(s)
	if s == doubleZeroText {
		return DoubleZero, nil
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return Outcome{}, fmt.Errorf("%w: %q", ErrInvalidOutcome, s)
	}

	o := Number(n)
	if !o.Valid() {
		return Outcome{}, fmt.Errorf("%w: %d", ErrInvalidOutcome, n)
	}

	return o, nil
}

// IsDoubleZero true только для 00
func (o Outcome) IsDoubleZero() bool {
	return o.doubleZero
}

// Int возвращает номер; ok=false для 00
func (o Outcome) Int() (n int, ok bool) {
	if o.doubleZero {
		return 0, false
	}
	return o.number, true
}

// IsGreen 0 или 00
func (o Outcome) IsGreen() bool {
	return o.doubleZero || o.number == 0
}

func (o Outcome) Valid() bool {
	return o.doubleZero || (o.number >= 0 && o.number <= maxNumber)
}

func (o Outcome) String() string {
	if o.doubleZero {
		return doubleZeroText
	}
	return strconv.Itoa(o.number)
}

// MarshalJSON: обычные номера числом, 00 строкой "00"
func (o Outcome) MarshalJSON() ([]byte, error) {
	if o.doubleZero {
		return json.Marshal(doubleZeroText)
	}
	return json.Marshal(o.number)
}

// UnmarshalJSON принимает число или строку
func (o *Outcome) UnmarshalJSON(data []byte) error {
	var raw string
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
	} else {
		raw = string(data)
	}

	parsed, err := ParseOutcome(raw)
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}
