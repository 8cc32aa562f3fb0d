// Package metrics exposes call counters for Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	zlog "github.com/rs/zerolog/log"
)

var (
	CallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "callsim_calls_total",
		Help: "Simulated calls that left the session, partitioned by outcome",
	}, []string{"outcome"})

	CallDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "callsim_call_duration_seconds",
		Help:    "Duration of answered calls",
		Buckets: prometheus.ExponentialBuckets(5, 2, 10),
	})

	PlaybackFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "callsim_playback_failures_total",
		Help: "Ringtone playback attempts refused by the audio backend",
	})

	Contacts = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "callsim_contacts",
		Help: "Number of saved contacts",
	})
)

// Handler returns the /metrics mux.
func Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

// Serve starts the metrics server on addr. It blocks until the listener fails.
func Serve(addr string) error {
	zlog.Info().Str("addr", addr).Msg("Starting metrics server")
	return http.ListenAndServe(addr, Handler())
}
