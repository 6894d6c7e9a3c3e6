package metrics

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Catalog metric names
const (
	MetricNameRecipeSearches     = "recipe_searches_total"
	MetricNameReviewsCreated     = "reviews_created_total"
	MetricNameReviewsDeleted     = "reviews_deleted_total"
	MetricNameSavedRecipeChanges = "saved_recipe_changes_total"
	MetricNameContactMessages    = "contact_messages_total"
	MetricNameRatingReconciled   = "rating_reconciled_total"
)

const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Number of HTTP requests currently being served"
	HelpTextRecipeSearches       = "Recipe list requests by number of active filters"
	HelpTextReviewsCreated       = "Reviews written"
	HelpTextReviewsDeleted       = "Reviews removed"
	HelpTextSavedRecipeChanges   = "Saved recipe edges added or removed"
	HelpTextContactMessages      = "Contact form submissions by outcome"
	HelpTextRatingReconciled     = "Recipe ratings corrected while listing reviews"
)

// Labels
const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelFilters = "filters"
	LabelAction  = "action"
	LabelResult  = "result"
)

// Label values
const (
	ActionAdd     = "add"
	ActionRemove  = "remove"
	ResultSent    = "sent"
	ResultFailed  = "failed"
	ResultInvalid = "invalid"
)

var HTTPLatencyBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5}
