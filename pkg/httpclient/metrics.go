package httpclient

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const outcomeSuccess = "success"

var (
	registerOnce sync.Once

	requestsTotal *prometheus.CounterVec
	retriesTotal  *prometheus.CounterVec
)

func initMetrics() {
	registerOnce.Do(func() {
		requestsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "n2bot_http_requests_total",
				Help: "Backend requests by method and outcome",
			},
			[]string{"method", "outcome"},
		)
		retriesTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "n2bot_http_retries_total",
				Help: "Timeout retries by method",
			},
			[]string{"method"},
		)

		prometheus.MustRegister(requestsTotal, retriesTotal)
	})
}

func observeRequest(method, outcome string) {
	initMetrics()
	if requestsTotal != nil {
		requestsTotal.WithLabelValues(method, outcome).Inc()
	}
}

func observeRetry(method string) {
	initMetrics()
	if retriesTotal != nil {
		retriesTotal.WithLabelValues(method).Inc()
	}
}
