package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "vouch_http_requests_total",
		Help: "HTTP requests by method, route and status",
	}, []string{"method", "route", "status"})
	HTTPDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "vouch_http_request_duration_seconds",
		Help:    "HTTP request duration seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	ReportsComputed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "vouch_reports_computed_total",
		Help: "Total reports computed",
	})
	ReportDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "vouch_report_duration_seconds",
		Help:    "Report computation duration seconds",
		Buckets: prometheus.DefBuckets,
	})
	InfluencersScored = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "vouch_influencers_scored_total",
		Help: "Total influencer scores produced",
	})
	TrustIndex = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "vouch_trust_index",
		Help:    "Distribution of computed trust indices",
		Buckets: prometheus.LinearBuckets(10, 10, 10),
	})
	ScoringErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "vouch_scoring_errors_total",
		Help: "Scoring failures by reason",
	}, []string{"reason"})
)

func init() {
	prometheus.MustRegister(HTTPRequests, HTTPDuration, ReportsComputed, ReportDuration,
		InfluencersScored, TrustIndex, ScoringErrors)
}

// ObserveRequest records one served HTTP request.
func ObserveRequest(method, route string, status int, start time.Time) {
	HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
}

// ObserveReport records a finished report and the trust index of every row.
func ObserveReport(start time.Time, trustIndices []float64) {
	ReportsComputed.Inc()
	ReportDuration.Observe(time.Since(start).Seconds())
	InfluencersScored.Add(float64(len(trustIndices)))
	for _, ti := range trustIndices {
		TrustIndex.Observe(ti)
	}
}

// IncScoringError increments the failure counter for reason.
func IncScoringError(reason string) { ScoringErrors.WithLabelValues(reason).Inc() }
