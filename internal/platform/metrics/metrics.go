package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the bot.
type Metrics struct {
	ClaimsStarted      prometheus.Counter
	DocumentsGenerated prometheus.Counter
	PriceParseFailures prometheus.Counter
	ReceiptScans       prometheus.Counter
	RenderDuration     prometheus.Histogram
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		ClaimsStarted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "claimbot_claims_started_total",
			Help: "Total number of claim wizards started",
		}),
		DocumentsGenerated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "claimbot_documents_generated_total",
			Help: "Total number of claim documents rendered and delivered",
		}),
		PriceParseFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "claimbot_price_parse_failures_total",
			Help: "Total number of rejected price inputs",
		}),
		ReceiptScans: promauto.NewCounter(prometheus.CounterOpts{
			Name: "claimbot_receipt_scans_total",
			Help: "Total number of completed receipt scans",
		}),
		RenderDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "claimbot_render_duration_ms",
			Help:    "Latency of document rendering in milliseconds",
			Buckets: []float64{1, 2.5, 5, 10, 25, 50, 100, 250},
		}),
	}
}

// IncClaimsStarted increments the started-claims counter by 1.
func (m *Metrics) IncClaimsStarted() {
	m.ClaimsStarted.Inc()
}

// IncDocumentsGenerated increments the generated-documents counter by 1.
func (m *Metrics) IncDocumentsGenerated() {
	m.DocumentsGenerated.Inc()
}

// IncPriceParseFailures increments the rejected-price counter by 1.
func (m *Metrics) IncPriceParseFailures() {
	m.PriceParseFailures.Inc()
}

// IncReceiptScans increments the receipt-scan counter by 1.
func (m *Metrics) IncReceiptScans() {
	m.ReceiptScans.Inc()
}

// ObserveRenderDuration records one document render latency.
func (m *Metrics) ObserveRenderDuration(d time.Duration) {
	m.RenderDuration.Observe(float64(d.Microseconds()) / 1000.0)
}
