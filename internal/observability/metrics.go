package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts onboarding workflow activity.
type Metrics struct {
	OnboardingRuns *prometheus.CounterVec
	StageFailures  *prometheus.CounterVec
	CommandsTotal  *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	return &Metrics{
		OnboardingRuns: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "portcullis_onboarding_runs_total",
			Help: "Onboarding workflow runs by outcome.",
		}, []string{"outcome"}),
		StageFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "portcullis_onboarding_stage_failures_total",
			Help: "Onboarding workflow failures by stage.",
		}, []string{"stage"}),
		CommandsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "portcullis_commands_total",
			Help: "Slash command invocations by command and result.",
		}, []string{"command", "result"}),
	}
}
