package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "sitecfg"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	generateDuration prom.Histogram
	generateOutcome  *prom.CounterVec
	groupPages       *prom.GaugeVec
	watchEvents      *prom.CounterVec
	contentChecks    *prom.CounterVec
}

// NewPrometheusRecorder constructs the metrics and registers them with reg
// (a fresh registry when nil).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		generateDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "generate_duration_seconds",
			Help:      "Duration of site configuration generation runs",
			Buckets:   prom.DefBuckets,
		}),
		generateOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "generate_outcomes_total",
			Help:      "Generation runs by outcome",
		}, []string{"outcome"}),
		groupPages: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "sidebar_group_pages",
			Help:      "Pages discovered per sidebar group on the last run",
		}, []string{"group"}),
		watchEvents: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "watch_events_total",
			Help:      "Filesystem events that triggered regeneration, by source",
		}, []string{"source"}),
		contentChecks: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "content_checks_total",
			Help:      "Content tree checks by result",
		}, []string{"result"}),
	}
	reg.MustRegister(pr.generateDuration, pr.generateOutcome, pr.groupPages, pr.watchEvents, pr.contentChecks)
	return pr
}

func (p *PrometheusRecorder) ObserveGenerateDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.generateDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncGenerateOutcome(outcome Outcome) {
	if p == nil {
		return
	}
	p.generateOutcome.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) SetGroupPages(group string, n int) {
	if p == nil {
		return
	}
	p.groupPages.WithLabelValues(group).Set(float64(n))
}

func (p *PrometheusRecorder) IncWatchEvent(source string) {
	if p == nil {
		return
	}
	p.watchEvents.WithLabelValues(source).Inc()
}

func (p *PrometheusRecorder) IncContentCheck(ok bool) {
	if p == nil {
		return
	}
	res := "failed"
	if ok {
		res = "ok"
	}
	p.contentChecks.WithLabelValues(res).Inc()
}
