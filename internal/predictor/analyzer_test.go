package predictor_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roulette_backend/internal/predictor"
)

func repeat(seq []predictor.Outcome, times int) []predictor.Outcome {
	res := make([]predictor.Outcome, 0, len(seq)*times)
	for i := 0; i < times; i++ {
		res = append(res, seq...)
	}
	return res
}

func TestParseOutcome(t *testing.T) {
	cases := []struct {
		in      string
		want    predictor.Outcome
		wantErr bool
	}{
		{in: "00", want: predictor.DoubleZero},
		{in: "0", want: predictor.Number(0)},
		{in: " 36 ", want: predictor.Number(36)},
		{in: "37", wantErr: true},
		{in: "-1", wantErr: true},
		{in: "000", want: predictor.Number(0)},
		{in: "x", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := predictor.ParseOutcome(tc.in)
			if tc.wantErr {
				require.ErrorIs(t, err, predictor.ErrInvalidOutcome)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDoubleZeroIsNotZero(t *testing.T) {
	assert.NotEqual(t, predictor.DoubleZero, predictor.Number(0))
	assert.True(t, predictor.DoubleZero.IsGreen())
	assert.True(t, predictor.Number(0).IsGreen())

	_, ok := predictor.DoubleZero.Int()
	assert.False(t, ok)
}

func TestOutcomeJSON(t *testing.T) {
	b, err := predictor.DoubleZero.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"00"`, string(b))

	var o predictor.Outcome
	require.NoError(t, o.UnmarshalJSON([]byte(`17`)))
	assert.Equal(t, predictor.Number(17), o)
	require.NoError(t, o.UnmarshalJSON([]byte(`"00"`)))
	assert.Equal(t, predictor.DoubleZero, o)
	require.Error(t, o.UnmarshalJSON([]byte(`40`)))
}

func TestVariantSpaceAndWheel(t *testing.T) {
	us := predictor.American.Space()
	eu := predictor.European.Space()
	require.Len(t, us, 38)
	require.Len(t, eu, 37)
	assert.Equal(t, predictor.DoubleZero, us[37])
	assert.NotContains(t, eu, predictor.DoubleZero)

	assert.Len(t, predictor.American.Wheel(), 38)
	assert.Len(t, predictor.European.Wheel(), 37)
	assert.ElementsMatch(t, us, predictor.American.Wheel())
	assert.ElementsMatch(t, eu, predictor.European.Wheel())

	assert.False(t, predictor.European.Contains(predictor.DoubleZero))
	assert.False(t, predictor.American.Contains(predictor.Number(37)))
}

func TestColors(t *testing.T) {
	assert.Equal(t, predictor.Green, predictor.DoubleZero.Color())
	assert.Equal(t, predictor.Green, predictor.Number(0).Color())
	assert.Equal(t, predictor.Red, predictor.Number(1).Color())
	assert.Equal(t, predictor.Black, predictor.Number(2).Color())
	assert.Equal(t, predictor.Red, predictor.Number(36).Color())
}

func TestBayesian(t *testing.T) {
	t.Run("empty history", func(t *testing.T) {
		assert.Empty(t, predictor.BayesianPredictions(nil, 6, predictor.American, nil))
	})

	t.Run("later occurrences rank higher", func(t *testing.T) {
		seq := repeat(predictor.Numbers(1, 2, 3, 4, 5, 6, 7, 8, 9, 10), 2)
		got := predictor.BayesianPredictions(seq, 6, predictor.European, nil)
		assert.Equal(t, predictor.Numbers(10, 9, 8, 7, 6, 5), got)
	})

	t.Run("outcomes missing from prior are skipped", func(t *testing.T) {
		prior := map[predictor.Outcome]float64{
			predictor.Number(1): 0.5,
			predictor.Number(2): 0.5,
		}
		seq := predictor.Numbers(7, 7, 7, 2)
		got := predictor.BayesianPredictions(seq, 6, predictor.American, prior)
		assert.Equal(t, predictor.Numbers(2, 1), got)
	})

	t.Run("uses analyzer interface", func(t *testing.T) {
		var a predictor.Analyzer = predictor.Bayesian{}
		assert.Equal(t, predictor.NameBayesian, a.Name())
		assert.Len(t, a.Predict(predictor.Numbers(3, 3, 3), 4, predictor.American), 4)
	})
}

func TestMarkov(t *testing.T) {
	t.Run("short history", func(t *testing.T) {
		assert.Empty(t, predictor.Markov{}.Predict(predictor.Numbers(1, 2, 3, 4), 6, predictor.American))
	})

	t.Run("A always followed by B", func(t *testing.T) {
		seq := predictor.Numbers(4, 22, 8, 4, 22, 1, 4, 22, 4)
		got := predictor.Markov{}.Predict(seq, 6, predictor.American)
		assert.Equal(t, []predictor.Outcome{predictor.Number(22)}, got)
	})

	t.Run("equal probabilities keep table order", func(t *testing.T) {
		seq := predictor.Numbers(5, 17, 21, 17, 9, 17, 3, 17)
		got := predictor.Markov{}.Predict(seq, 6, predictor.European)
		assert.Equal(t, predictor.Numbers(3, 9, 21), got)
	})

	t.Run("double zero transitions", func(t *testing.T) {
		seq := []predictor.Outcome{
			predictor.DoubleZero, predictor.Number(0), predictor.DoubleZero, predictor.Number(0),
			predictor.Number(5), predictor.DoubleZero,
		}
		got := predictor.Markov{}.Predict(seq, 6, predictor.American)
		assert.Equal(t, []predictor.Outcome{predictor.Number(0)}, got)
	})

	t.Run("last outcome outside space", func(t *testing.T) {
		seq := []predictor.Outcome{
			predictor.Number(1), predictor.Number(2), predictor.Number(1),
			predictor.Number(2), predictor.DoubleZero,
		}
		assert.Empty(t, predictor.Markov{}.Predict(seq, 6, predictor.European))
	})
}

func TestSector(t *testing.T) {
	t.Run("short history", func(t *testing.T) {
		assert.Empty(t, predictor.Sector{}.Predict(predictor.Numbers(1, 2, 3), 6, predictor.American))
	})

	t.Run("neighbours of a hot pocket outscore the far side", func(t *testing.T) {
		seq := repeat(predictor.Numbers(17), 12)
		scores := predictor.SectorScores(seq, predictor.American)

		// 17 на колесе между 32 и 5, напротив лежат 10 и 25
		assert.Equal(t, 12, scores[predictor.Number(32)])
		assert.Equal(t, 12, scores[predictor.Number(5)])
		assert.Equal(t, 12, scores[predictor.Number(20)])
		assert.Equal(t, 0, scores[predictor.Number(10)])
		assert.Equal(t, 0, scores[predictor.Number(25)])

		got := predictor.Sector{}.Predict(seq, 5, predictor.American)
		assert.Equal(t, predictor.Numbers(5, 17, 20, 22, 32), got)
	})

	t.Run("wraps around the wheel", func(t *testing.T) {
		seq := repeat(predictor.Numbers(2), 10)
		scores := predictor.SectorScores(seq, predictor.American)
		assert.Equal(t, 10, scores[predictor.Number(0)])
		assert.Equal(t, 10, scores[predictor.Number(28)])
		assert.Equal(t, 0, scores[predictor.Number(9)])
	})
}

func TestHotCold(t *testing.T) {
	t.Run("short history", func(t *testing.T) {
		assert.Empty(t, predictor.HotCold{}.Predict(predictor.Numbers(1, 2, 3), 6, predictor.American))
	})

	t.Run("absent numbers are due", func(t *testing.T) {
		seq := repeat(predictor.Numbers(1, 2, 3, 4, 5, 6, 7, 8, 9, 10), 2)
		got := predictor.HotCold{}.Predict(seq, 6, predictor.European)
		assert.Equal(t, predictor.Numbers(0, 11, 12, 13, 14, 15), got)
	})

	t.Run("american space includes double zero", func(t *testing.T) {
		seq := predictor.European.Space()
		got := predictor.HotCold{}.Predict(seq, 1, predictor.American)
		assert.Equal(t, []predictor.Outcome{predictor.DoubleZero}, got)
	})
}

func TestPattern(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))

	t.Run("short history", func(t *testing.T) {
		got := predictor.Pattern{Rand: rnd}.Predict(predictor.Numbers(1, 2, 3), 6, predictor.American)
		assert.Empty(t, got)
	})

	t.Run("repeated tail votes for its successor", func(t *testing.T) {
		// [X, Y] уже встречалось и за ним шло Z
		seq := predictor.Numbers(30, 31, 32, 4, 9, 22, 33, 34, 35, 36, 14, 15, 16, 4, 9, 4, 9)
		got := predictor.Pattern{Rand: rnd}.Predict(seq, 6, predictor.American)
		require.Len(t, got, 6)
		assert.Contains(t, got, predictor.Number(22))
		assert.Equal(t, predictor.Number(22), got[0])
	})

	t.Run("numeric neighbours of the last result", func(t *testing.T) {
		seq := predictor.Numbers(11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24, 36)
		got := predictor.Pattern{Rand: rnd}.Predict(seq, 3, predictor.American)
		assert.Equal(t, predictor.Numbers(35, 34, 33), got)
	})

	t.Run("random fill is unique and inside space", func(t *testing.T) {
		seq := append(predictor.Numbers(11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24), predictor.DoubleZero)
		got := predictor.Pattern{Rand: rand.New(rand.NewSource(7))}.Predict(seq, 10, predictor.European)
		require.Len(t, got, 10)
		seen := map[predictor.Outcome]bool{}
		for _, o := range got {
			assert.True(t, predictor.European.Contains(o))
			assert.False(t, seen[o])
			seen[o] = true
		}
	})

	t.Run("same seed same fill", func(t *testing.T) {
		seq := predictor.Numbers(11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24, 25)
		a := predictor.Pattern{Rand: rand.New(rand.NewSource(3))}.Predict(seq, 12, predictor.American)
		b := predictor.Pattern{Rand: rand.New(rand.NewSource(3))}.Predict(seq, 12, predictor.American)
		assert.Equal(t, a, b)
	})
}
