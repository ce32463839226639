package world

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Метрики генерации:
// * reef_generation_duration_seconds — histogram
// * reef_generation_runs_total — counter
// * reef_generation_formations — gauge (последний прогон)
var (
	genDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "reef",
		Name:      "generation_duration_seconds",
		Help:      "Длительность полного прогона генерации.",
		Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	})
	genRuns = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "reef",
		Name:      "generation_runs_total",
		Help:      "Общее число прогонов генерации.",
	})
	genFormations = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "reef",
		Name:      "generation_formations",
		Help:      "Число размещенных формаций в последнем прогоне.",
	})
)

func init() {
	prometheus.MustRegister(genDuration, genRuns, genFormations)
}

// observeGeneration фиксирует метрики завершенного прогона
func observeGeneration(result *Result) {
	genDuration.Observe(result.Duration.Seconds())
	genRuns.Inc()
	genFormations.Set(float64(result.FormationCount))
}
