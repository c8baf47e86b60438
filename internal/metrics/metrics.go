// Package metrics collects and exposes Prometheus metrics for the game service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Guess outcome labels
const (
	OutcomeProgress  = "progress"
	OutcomeWon       = "won"
	OutcomeTimedOut  = "timed_out"
	OutcomeDuplicate = "duplicate"
	OutcomeRejected  = "rejected"
)

// Recorder is the metrics surface used by services and middleware
type Recorder interface {
	RecordGameCreated()
	RecordGameDeleted()
	RecordGuess(outcome string)
	RecordRankingSize(n int)
	RecordHTTPRequest(method string, status int, duration time.Duration)
	RecordRateLimited()
}

// Collector is the Prometheus implementation of Recorder
type Collector struct {
	gamesCreated prometheus.Counter
	gamesDeleted prometheus.Counter
	guesses      *prometheus.CounterVec
	rankingSize  prometheus.Gauge
	httpRequests *prometheus.CounterVec
	httpLatency  prometheus.Histogram
	rateLimited  prometheus.Counter
}

var _ Recorder = (*Collector)(nil)

// NewCollector creates a Collector and registers its metrics with reg
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		gamesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "toros_games_created_total",
			Help: "Number of game sessions created",
		}),
		gamesDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "toros_games_deleted_total",
			Help: "Number of game sessions deleted",
		}),
		guesses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "toros_guesses_total",
			Help: "Guesses submitted, by outcome",
		}, []string{"outcome"}),
		rankingSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "toros_ranking_sessions",
			Help: "Sessions included in the most recent ranking",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "toros_http_requests_total",
			Help: "HTTP responses by method and status code",
		}, []string{"method", "status_code"}),
		httpLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "toros_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		rateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "toros_rate_limited_total",
			Help: "Requests rejected by the rate limiter",
		}),
	}

	reg.MustRegister(
		c.gamesCreated,
		c.gamesDeleted,
		c.guesses,
		c.rankingSize,
		c.httpRequests,
		c.httpLatency,
		c.rateLimited,
	)

	return c
}

func (c *Collector) RecordGameCreated() {
	c.gamesCreated.Inc()
}

func (c *Collector) RecordGameDeleted() {
	c.gamesDeleted.Inc()
}

// RecordGuess counts one guess under the given outcome label
func (c *Collector) RecordGuess(outcome string) {
	c.guesses.WithLabelValues(outcome).Inc()
}

func (c *Collector) RecordRankingSize(n int) {
	c.rankingSize.Set(float64(n))
}

// RecordHTTPRequest records the status and latency of one request
func (c *Collector) RecordHTTPRequest(method string, status int, duration time.Duration) {
	c.httpRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
	c.httpLatency.Observe(duration.Seconds())
}

func (c *Collector) RecordRateLimited() {
	c.rateLimited.Inc()
}

// Handler returns the Prometheus scrape handler for gatherer
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Nop discards everything. Used where metrics are not wired.
type Nop struct{}

var _ Recorder = Nop{}

func (Nop) RecordGameCreated() {}
func (Nop) RecordGameDeleted() {}
func (Nop) RecordGuess(string) {}
func (Nop) RecordRankingSize(int) {}
func (Nop) RecordHTTPRequest(string, int, time.Duration) {}
func (Nop) RecordRateLimited() {}
