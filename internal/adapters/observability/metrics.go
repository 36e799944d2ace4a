package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "hotelreviews"

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "http_requests_total", Help: "HTTP requests."},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace, Name: "http_request_duration_seconds",
			Help:    "HTTP request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	CacheEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "cache_events_total", Help: "Cache hits/misses/sets/dels."},
		[]string{"cache", "event"}, // event: hit|miss|set|del
	)
	IngestFiles = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "ingest_files_total", Help: "Review files processed."},
		[]string{"result"}, // ok|failed
	)
	IngestRecords = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "ingest_records_total", Help: "Review records seen."},
		[]string{"result"}, // accepted|rejected
	)
	IngestErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "ingest_errors_total", Help: "Contained ingestion errors by kind."},
		[]string{"kind"},
	)
	IngestDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace, Name: "ingest_duration_seconds",
			Help:    "Wall time of one ingestion run.",
			Buckets: prometheus.ExponentialBuckets(0.01, 4, 8),
		},
	)
	IngestOutstanding = prometheus.NewGauge(
		prometheus.GaugeOpts{Namespace: namespace, Name: "ingest_outstanding_tasks", Help: "Registered but unfinished parse tasks."},
	)
	ExportHotels = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "export_hotels_total", Help: "Hotels persisted after ingestion."},
		[]string{"result"}, // ok|failed
	)
)

// Serve exposes reg on addr/metrics in the background and returns the
// server so the caller can shut it down. An empty addr disables it and
// returns nil.
func Serve(addr string, reg *prometheus.Registry) *http.Server {
	if addr == "" {
		return nil // disabled
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", MetricsHandler(reg))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Info().Str("addr", addr).Msg("metrics server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()
	return srv
}

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		HTTPRequests, HTTPLatency, CacheEvents,
		IngestFiles, IngestRecords, IngestErrors, IngestDuration, IngestOutstanding,
		ExportHotels,
	)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

func ObserveCache(cache, event string) { // event: hit|miss|set|del
	CacheEvents.WithLabelValues(cache, event).Inc()
}

func ObserveFile(result string) { IngestFiles.WithLabelValues(result).Inc() }

func ObserveRecords(result string, n int) {
	if n > 0 {
		IngestRecords.WithLabelValues(result).Add(float64(n))
	}
}

func ObserveIngestError(kind string) { IngestErrors.WithLabelValues(kind).Inc() }

func ObserveIngest(dur time.Duration) { IngestDuration.Observe(dur.Seconds()) }

func ObserveOutstanding(delta int) { IngestOutstanding.Add(float64(delta)) }

func ObserveExport(result string) { ExportHotels.WithLabelValues(result).Inc() }
