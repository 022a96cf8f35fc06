package metrics

import (
	"errors"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// GeneratorMetrics captures order generation health signals.
type GeneratorMetrics struct {
	runs          prometheus.Counter
	runDuration   prometheus.Histogram
	ordersCreated prometheus.Counter
	ordersSkipped prometheus.Counter
	ordersFailed  prometheus.Counter
}

var (
	generatorMetricsOnce sync.Once
	generatorMetrics     *GeneratorMetrics
)

// Generator returns the singleton generator metrics registry.
func Generator() *GeneratorMetrics {
	generatorMetricsOnce.Do(func() {
		generatorMetrics = newGeneratorMetrics(prometheus.DefaultRegisterer)
	})
	return generatorMetrics
}

// ResetGeneratorMetricsForTest resets the singleton for tests.
func ResetGeneratorMetricsForTest() {
	generatorMetricsOnce = sync.Once{}
	generatorMetrics = nil
}

func newGeneratorMetrics(registerer prometheus.Registerer) *GeneratorMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	runs := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "freshbowl_generator_runs_total",
		Help: "Order generator runs.",
	})
	runDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "freshbowl_generator_run_duration_seconds",
		Help:    "Order generator run latency.",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
	})
	ordersCreated := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "freshbowl_generator_orders_created_total",
		Help: "Orders created by the generator.",
	})
	ordersSkipped := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "freshbowl_generator_orders_skipped_total",
		Help: "Subscriptions skipped because the cycle order already existed.",
	})
	ordersFailed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "freshbowl_generator_orders_failed_total",
		Help: "Subscriptions whose order generation failed.",
	})

	return &GeneratorMetrics{
		runs:          register(registerer, runs).(prometheus.Counter),
		runDuration:   register(registerer, runDuration).(prometheus.Histogram),
		ordersCreated: register(registerer, ordersCreated).(prometheus.Counter),
		ordersSkipped: register(registerer, ordersSkipped).(prometheus.Counter),
		ordersFailed:  register(registerer, ordersFailed).(prometheus.Counter),
	}
}

func register(registerer prometheus.Registerer, collector prometheus.Collector) prometheus.Collector {
	if err := registerer.Register(collector); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			return already.ExistingCollector
		}
		panic(err)
	}
	return collector
}

// ObserveRun records one generator run and its aggregate result.
func (m *GeneratorMetrics) ObserveRun(d time.Duration, created, skipped, failed int) {
	if m == nil {
		return
	}
	m.runs.Inc()
	m.runDuration.Observe(d.Seconds())
	m.ordersCreated.Add(float64(created))
	m.ordersSkipped.Add(float64(skipped))
	m.ordersFailed.Add(float64(failed))
}
