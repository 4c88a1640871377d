// Package observability provides core.Hooks implementations for File API calls.
package observability

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"smartling/core"
)

const namespace = "fileapi"

// Outcome label values.
const (
	OutcomeSuccess         = "success"
	OutcomeValidationError = "validation_error"
	OutcomeAPIError        = "api_error"
	OutcomeTransportError  = "transport_error"
)

// PrometheusHooks records request counts, latencies and in-flight calls.
type PrometheusHooks struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inFlight *prometheus.GaugeVec
}

// NewPrometheusHooks creates the collectors and registers them with reg.
// A nil reg uses prometheus.DefaultRegisterer.
func NewPrometheusHooks(reg prometheus.Registerer) (*PrometheusHooks, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	h := &PrometheusHooks{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "File API requests by operation and outcome.",
		}, []string{"operation", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "File API request latency by operation.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		inFlight: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "requests_in_flight",
			Help:      "File API requests currently waiting for a response.",
		}, []string{"operation"}),
	}

	for _, c := range []prometheus.Collector{h.requests, h.duration, h.inFlight} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return h, nil
}

// OnRequestStart implements core.Hooks.
func (h *PrometheusHooks) OnRequestStart(ctx context.Context, info core.RequestInfo) context.Context {
	h.inFlight.WithLabelValues(info.Operation).Inc()
	return ctx
}

// OnRequestEnd implements core.Hooks.
func (h *PrometheusHooks) OnRequestEnd(_ context.Context, info core.ResponseInfo) {
	h.inFlight.WithLabelValues(info.Operation).Dec()
	h.duration.WithLabelValues(info.Operation).Observe(info.Duration.Seconds())
	h.requests.WithLabelValues(info.Operation, Outcome(info)).Inc()
}

// Outcome classifies a finished call.
func Outcome(info core.ResponseInfo) string {
	switch {
	case info.Err != nil:
		return OutcomeTransportError
	case info.Code == core.CodeSuccess:
		return OutcomeSuccess
	case info.Code == core.CodeValidationError:
		return OutcomeValidationError
	case info.Code == "" && info.StatusCode >= 200 && info.StatusCode < 300:
		// raw file downloads carry no envelope
		return OutcomeSuccess
	default:
		return OutcomeAPIError
	}
}
