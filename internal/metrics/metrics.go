package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Catalog Metrics
var (
	RecipeSearches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRecipeSearches,
			Help: HelpTextRecipeSearches,
		},
		[]string{LabelFilters},
	)

	ReviewsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameReviewsCreated,
			Help: HelpTextReviewsCreated,
		},
	)

	ReviewsDeleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameReviewsDeleted,
			Help: HelpTextReviewsDeleted,
		},
	)

	SavedRecipeChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSavedRecipeChanges,
			Help: HelpTextSavedRecipeChanges,
		},
		[]string{LabelAction},
	)

	ContactMessages = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameContactMessages,
			Help: HelpTextContactMessages,
		},
		[]string{LabelResult},
	)

	RatingReconciled = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameRatingReconciled,
			Help: HelpTextRatingReconciled,
		},
	)
)
