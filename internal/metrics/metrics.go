package metrics

import (
	"net/http"
	"time"

	"roulette_backend/internal/model"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "roulette"

// Registry метрики сервиса предсказаний
type Registry struct {
	reg *prometheus.Registry

	PredictDuration prometheus.Histogram
	Predictions     *prometheus.CounterVec
	Checks          *prometheus.CounterVec
	SpinsRecorded   *prometheus.CounterVec

	HitRate       prometheus.Gauge
	WindowHitRate prometheus.Gauge
	BaselineRate  prometheus.Gauge
}

func NewRegistry() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),

		PredictDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "predict_duration_seconds",
			Help:      "Time spent in the ensemble engine per call",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}),
		Predictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "predictions_total",
			Help:      "Prediction runs by outcome (made or not_enough_data)",
		}, []string{"result"}),
		Checks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "prediction_checks_total",
			Help:      "Observed results compared with the previous prediction set",
		}, []string{"result"}),
		SpinsRecorded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "spins_recorded_total",
			Help:      "Spins appended to histories by kind",
		}, []string{"kind"}),

		HitRate: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "prediction_hit_rate",
			Help:      "Share of checks where the result was in the prediction set",
		}),
		WindowHitRate: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "prediction_window_hit_rate",
			Help:      "Hit rate over the rolling window of recent checks",
		}),
		BaselineRate: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "prediction_baseline_rate",
			Help:      "Hit rate of a random set of the same size",
		}),
	}

	r.reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.PredictDuration,
		r.Predictions,
		r.Checks,
		r.SpinsRecorded,
		r.HitRate,
		r.WindowHitRate,
		r.BaselineRate,
	)

	return r
}

// ObservePredict время работы движка и факт выдачи
func (r *Registry) ObservePredict(started time.Time, made bool) {
	r.PredictDuration.Observe(time.Since(started).Seconds())
	if made {
		r.Predictions.WithLabelValues("made").Inc()
		return
	}
	r.Predictions.WithLabelValues("not_enough_data").Inc()
}

func (r *Registry) ObserveCheck(predicted bool) {
	if predicted {
		r.Checks.WithLabelValues("hit").Inc()
		return
	}
	r.Checks.WithLabelValues("miss").Inc()
}

func (r *Registry) ObserveSpins(kind model.SpinKind, n int) {
	r.SpinsRecorded.WithLabelValues(string(kind)).Add(float64(n))
}

// SetAccuracy переносит сводку точности в gauge
func (r *Registry) SetAccuracy(stats model.AccuracyStats) {
	r.HitRate.Set(stats.HitRate)
	r.WindowHitRate.Set(stats.WindowHitRate)
	r.BaselineRate.Set(stats.BaselineRate)
}

// Handler /metrics
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{Registry: r.reg})
}

