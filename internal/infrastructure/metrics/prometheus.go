package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"ArticleGate/internal/domain"
	"ArticleGate/internal/ports"
)

const namespace = "article_gate"

// Prometheus records gate outcomes as Prometheus counters.
type Prometheus struct {
	verdicts *prometheus.CounterVec
	reasons  *prometheus.CounterVec
	failures prometheus.Counter
}

var _ ports.GateMetrics = (*Prometheus)(nil)

// NewPrometheus registers the gate collectors with reg.
func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	p := &Prometheus{
		verdicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "verdicts_total",
			Help:      "Terminal gate verdicts by stage and outcome.",
		}, []string{"stage", "outcome"}),
		reasons: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reasons_total",
			Help:      "Reasons and uncited-claim entries recorded per stage.",
		}, []string{"stage"}),
		failures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generation_failures_total",
			Help:      "Generation backend calls that failed.",
		}),
	}
	if reg != nil {
		reg.MustRegister(p.verdicts, p.reasons, p.failures)
	}
	return p
}

// ObserveVerdict counts one verdict and its findings.
func (p *Prometheus) ObserveVerdict(stage domain.Stage, verdict domain.GateVerdict) {
	outcome := "accepted"
	if verdict.Blocked {
		outcome = "blocked"
	}
	p.verdicts.WithLabelValues(string(stage), outcome).Inc()
	p.reasons.WithLabelValues(string(stage)).Add(float64(len(verdict.Reasons) + len(verdict.ClaimsNeedingCitations)))
}

// ObserveGenerationFailure counts a failed generation call.
func (p *Prometheus) ObserveGenerationFailure() {
	p.failures.Inc()
}
