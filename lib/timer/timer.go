package timer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var callDuration = promauto.NewSummaryVec(prometheus.SummaryOpts{
	Name: "sagemaker_call_duration_seconds",
	Help: "Duration of individual sagemaker calls",
	Objectives: map[float64]float64{
		0.25: 0.05,
		0.50: 0.05,
		0.75: 0.05,
		0.90: 0.05,
		0.95: 0.02,
		0.99: 0.01,
	},
}, []string{"operation"})

var callErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "sagemaker_call_errors_total",
	Help: "Number of sagemaker calls that returned an error",
}, []string{"operation"})

type Timer struct {
	operation string
	timer     *prometheus.Timer
}

func (t Timer) Stop() {
	t.timer.ObserveDuration()
}

// Done stops the timer, counts err against the operation if non-nil and
// returns err unchanged.
func (t Timer) Done(err error) error {
	t.Stop()
	if err != nil {
		callErrors.WithLabelValues(t.operation).Inc()
	}
	return err
}

func Start(operation string) Timer {
	return Timer{
		operation: operation,
		timer:     prometheus.NewTimer(callDuration.WithLabelValues(operation)),
	}
}
