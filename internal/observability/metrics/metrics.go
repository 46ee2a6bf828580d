package metrics

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

type Outcome string

const (
	Success                  Outcome       = "success"
	Error                    Outcome       = "error"
	MetricRequestTimeout     time.Duration = 5 * time.Second
	MetricRequestIdleTimeout time.Duration = 10 * time.Second
)

func (O Outcome) String() string {
	return string(O)
}

var defaultHistogramBucketsSeconds = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30}

// Collectors exist from package load so recording never hits a nil metric;
// Init only registers and serves them.
var (
	once          sync.Once
	metricsRouter *chi.Mux

	dbLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_latency_seconds",
			Help:    "DB latency in seconds splitted by method and execution status",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"method", "status"},
	)

	tokenClientLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "token_client_latency_seconds",
			Help:    "Histogram of token client durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"method", "status"},
	)

	stakeCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stake_instructions_total",
			Help: "Number of processed stake instructions by outcome and error code",
		},
		[]string{"status", "error_code"},
	)

	stakedAmountCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "staked_amount_total",
			Help: "Sum of base units moved into custody by successful stakes",
		},
	)

	queueSendErrorCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "queue_send_error_count",
			Help: "The total number of errors when sending messages to the queue",
		},
	)

	pollerDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "poller_duration_seconds",
			Help:    "Histogram of poller durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"type", "status"},
	)

	pendingEventsGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "outbox_pending_events",
			Help: "Number of stake events fetched as pending in the last relay run",
		},
	)

	mintStakedTotalGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "mint_staked_total",
			Help: "Sum of ledger totals per mint, in base units",
		},
		[]string{"mint"},
	)

	mintStakerCountGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "mint_staker_count",
			Help: "Number of ledger entries per mint",
		},
		[]string{"mint"},
	)

	custodyMismatchGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "mint_custody_mismatch",
			Help: "1 if the custody balance differs from the sum of ledger totals",
		},
		[]string{"mint"},
	)
)

// Init initializes the metrics package.
func Init(metricsPort int) {
	once.Do(func() {
		registerMetrics()
		initMetricsRouter(metricsPort)
	})
}

// initMetricsRouter initializes the metrics router.
func initMetricsRouter(metricsPort int) {
	metricsRouter = chi.NewRouter()
	metricsRouter.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})
	// Create a custom server with timeout settings
	metricsAddr := fmt.Sprintf(":%d", metricsPort)
	server := &http.Server{
		Addr:         metricsAddr,
		Handler:      metricsRouter,
		ReadTimeout:  MetricRequestTimeout,
		WriteTimeout: MetricRequestTimeout,
		IdleTimeout:  MetricRequestIdleTimeout,
	}

	// Start the server in a separate goroutine
	go func() {
		log.Printf("Starting metrics server on %s", metricsAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msgf("Error starting metrics server on %s", metricsAddr)
		}
	}()
}

// registerMetrics registers the Prometheus metrics.
func registerMetrics() {
	prometheus.MustRegister(
		dbLatency,
		tokenClientLatency,
		stakeCounter,
		stakedAmountCounter,
		queueSendErrorCounter,
		pollerDurationHistogram,
		pendingEventsGauge,
		mintStakedTotalGauge,
		mintStakerCountGauge,
		custodyMismatchGauge,
	)
}

func outcome(failure bool) Outcome {
	if failure {
		return Error
	}
	return Success
}

func RecordDbLatency(d time.Duration, method string, failure bool) {
	dbLatency.WithLabelValues(method, outcome(failure).String()).Observe(d.Seconds())
}

func RecordTokenClientLatency(d time.Duration, method string, failure bool) {
	tokenClientLatency.WithLabelValues(method, outcome(failure).String()).Observe(d.Seconds())
}

// RecordStake counts a stake instruction. errorCode is empty on success.
func RecordStake(amount uint64, errorCode string) {
	if errorCode == "" {
		stakeCounter.WithLabelValues(Success.String(), "").Inc()
		stakedAmountCounter.Add(float64(amount))
		return
	}
	stakeCounter.WithLabelValues(Error.String(), errorCode).Inc()
}

func RecordQueueSendError() {
	queueSendErrorCounter.Inc()
}

func RecordPendingEvents(count int) {
	pendingEventsGauge.Set(float64(count))
}

func RecordMintStats(mint string, stakedTotal float64, stakerCount uint64, custodyMismatch bool) {
	mintStakedTotalGauge.WithLabelValues(mint).Set(stakedTotal)
	mintStakerCountGauge.WithLabelValues(mint).Set(float64(stakerCount))
	mismatch := 0.0
	if custodyMismatch {
		mismatch = 1
	}
	custodyMismatchGauge.WithLabelValues(mint).Set(mismatch)
}

// RecordPollerDuration wraps a poll method and records how long each run took.
func RecordPollerDuration(pollerType string, f func(ctx context.Context) error) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		startTime := time.Now()
		err := f(ctx)
		pollerDurationHistogram.
			WithLabelValues(pollerType, outcome(err != nil).String()).
			Observe(time.Since(startTime).Seconds())
		return err
	}
}
