// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package metrics owns the service's Prometheus collectors. Every method
// is safe on a nil *Metrics, which records nothing.
package metrics

import (
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors and the registry they are exposed from.
type Metrics struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	storeDuration   *prometheus.HistogramVec
	storeErrors     *prometheus.CounterVec
	chatReplies     *prometheus.CounterVec
	chatDuration    prometheus.Histogram
}

// New registers the collectors on a private registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tero_http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tero_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "route", "status"})

	storeDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tero_store_operation_duration_seconds",
		Help:    "Duration of persistent store operations",
		Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
	}, []string{"op"})

	storeErrors := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tero_store_errors_total",
		Help: "Persistent store operations that failed, not counting missing keys",
	}, []string{"op"})

	chatReplies := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tero_chat_replies_total",
		Help: "Assistant replies by outcome",
	}, []string{"outcome"})

	chatDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "tero_chat_provider_duration_seconds",
		Help:    "Time spent waiting for the chat provider",
		Buckets: []float64{.25, .5, 1, 2, 4, 8, 16, 32, 60},
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "tero_goroutines",
		Help: "Number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, storeDuration, storeErrors, chatReplies, chatDuration, goroutines)

	return &Metrics{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		storeDuration:   storeDuration,
		storeErrors:     storeErrors,
		chatReplies:     chatReplies,
		chatDuration:    chatDuration,
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records one served request. route is the matched
// route pattern, not the raw path, to keep label cardinality bounded.
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	code := strconv.Itoa(status)
	m.requestDuration.WithLabelValues(method, route, code).Observe(d.Seconds())
	m.requestTotal.WithLabelValues(method, route, code).Inc()
}

// ObserveStoreOp implements store.Observer. Missing keys are reported by
// the caller as a nil error.
func (m *Metrics) ObserveStoreOp(op string, d time.Duration, err error) {
	if m == nil {
		return
	}
	m.storeDuration.WithLabelValues(op).Observe(d.Seconds())
	if err != nil {
		m.storeErrors.WithLabelValues(op).Inc()
	}
}

// ObserveChat records one assistant reply. Its signature matches
// chat.Observer.
func (m *Metrics) ObserveChat(outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.chatReplies.WithLabelValues(outcome).Inc()
	m.chatDuration.Observe(d.Seconds())
}
