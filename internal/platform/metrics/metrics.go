package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	registry *prometheus.Registry

	requests    *prometheus.CounterVec
	duration    prometheus.Histogram
	rateLimited prometheus.Counter
	recomputes  *prometheus.CounterVec
	capWarnings prometheus.Counter
	payslips    prometheus.Counter
}

// New registers the collectors on a private registry so tests can build as
// many collectors as they like.
func New() *Collector {
	reg := prometheus.NewRegistry()
	c := &Collector{
		registry: reg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "contracheque_http_requests_total",
			Help: "HTTP requests served, by status class.",
		}, []string{"class"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "contracheque_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}),
		rateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "contracheque_http_rate_limited_total",
			Help: "Requests rejected by the rate limiter.",
		}),
		recomputes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "contracheque_recomputes_total",
			Help: "Payslip recomputations, by entry point.",
		}, []string{"source"}),
		capWarnings: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "contracheque_cap_warnings_total",
			Help: "Time-in-service cap warnings raised.",
		}),
		payslips: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "contracheque_payslips_rendered_total",
			Help: "Payslip PDFs rendered.",
		}),
	}
	reg.MustRegister(
		c.requests, c.duration, c.rateLimited, c.recomputes, c.capWarnings, c.payslips,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

func (c *Collector) Record(status int, duration time.Duration) {
	c.requests.WithLabelValues(statusClass(status)).Inc()
	if status == http.StatusTooManyRequests {
		c.rateLimited.Inc()
	}
	c.duration.Observe(duration.Seconds())
}

func (c *Collector) Recompute(source string, capWarning bool) {
	c.recomputes.WithLabelValues(source).Inc()
	if capWarning {
		c.capWarnings.Inc()
	}
}

func (c *Collector) PayslipRendered() {
	c.payslips.Inc()
}

func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

func statusClass(status int) string {
	if status < 100 || status > 599 {
		return "other"
	}
	return strconv.Itoa(status/100) + "xx"
}
