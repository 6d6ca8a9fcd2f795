// Package metrics exposes Prometheus counters for the quiz flow.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	submissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "drivequiz_submissions_total",
			Help: "Graded quiz submissions by phase and caller kind",
		},
		[]string{"phase", "caller"},
	)

	bookkeepingWarnings = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "drivequiz_bookkeeping_warnings_total",
			Help: "Ledger or progress writes that failed after the attempt was stored",
		},
		[]string{"component"},
	)

	submitDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "drivequiz_submit_duration_seconds",
			Help:    "Time to grade and record a submission",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"status"},
	)

	questionsLoaded = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "drivequiz_questions_loaded",
			Help: "Questions in the in-memory bank per phase",
		},
		[]string{"phase"},
	)
)

// ObserveSubmission counts one submission. phase must come from a
// bounded set of values.
func ObserveSubmission(phase string, authenticated bool, status string, started time.Time) {
	caller := "guest"
	if authenticated {
		caller = "user"
	}
	submissions.WithLabelValues(phase, caller).Inc()
	submitDuration.WithLabelValues(status).Observe(time.Since(started).Seconds())
}

func BookkeepingWarning(component string) {
	bookkeepingWarnings.WithLabelValues(component).Inc()
}

func SetQuestionsLoaded(phase, n int) {
	questionsLoaded.WithLabelValues(strconv.Itoa(phase)).Set(float64(n))
}

func Handler() http.Handler {
	return promhttp.Handler()
}
