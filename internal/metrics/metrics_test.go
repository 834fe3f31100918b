package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roulette_backend/internal/metrics"
	"roulette_backend/internal/model"
)

func TestRegistry(t *testing.T) {
	r := metrics.NewRegistry()

	r.ObservePredict(time.Now(), true)
	r.ObservePredict(time.Now(), false)
	r.ObserveCheck(true)
	r.ObserveCheck(false)
	r.ObserveCheck(false)
	r.ObserveSpins(model.SpinKindHot, 3)
	r.SetAccuracy(model.AccuracyStats{HitRate: 0.25, WindowHitRate: 0.5, BaselineRate: 6.0 / 38})

	assert.Equal(t, 1.0, testutil.ToFloat64(r.Predictions.WithLabelValues("made")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.Checks.WithLabelValues("miss")))
	assert.Equal(t, 3.0, testutil.ToFloat64(r.SpinsRecorded.WithLabelValues("hot")))
	assert.Equal(t, 0.25, testutil.ToFloat64(r.HitRate))

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "roulette_prediction_window_hit_rate 0.5")
}
