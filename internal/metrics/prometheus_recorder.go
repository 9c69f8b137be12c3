package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "shalinks"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	links            *prom.CounterVec
	documents        *prom.CounterVec
	documentDuration *prom.HistogramVec
}

// NewPrometheusRecorder constructs the metrics and registers them on reg.
// A nil registry gets a private one.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		links: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "links_total",
			Help:      "Links accepted by a filter, by what the filter did with them",
		}, []string{"filter", "result"}),
		documents: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "documents_total",
			Help:      "Processed documents by kind and result",
		}, []string{"kind", "result"}),
		documentDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "document_duration_seconds",
			Help:      "Time spent rendering and filtering one document",
			Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"kind"}),
	}
	reg.MustRegister(pr.links, pr.documents, pr.documentDuration)
	return pr
}

func (p *PrometheusRecorder) IncLinkResult(filter string, result LinkResult) {
	if p == nil || p.links == nil {
		return
	}
	p.links.WithLabelValues(filter, string(result)).Inc()
}

func (p *PrometheusRecorder) IncDocumentResult(kind string, result ResultLabel) {
	if p == nil || p.documents == nil {
		return
	}
	p.documents.WithLabelValues(kind, string(result)).Inc()
}

func (p *PrometheusRecorder) ObserveDocumentDuration(kind string, d time.Duration) {
	if p == nil || p.documentDuration == nil {
		return
	}
	p.documentDuration.WithLabelValues(kind).Observe(d.Seconds())
}
