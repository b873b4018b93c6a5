package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Values of the "result" label.
const (
	FilesRegistered     = "files_registered_total"
	CompaniesCreated    = "companies_created_total"
	MdsEntriesCreated   = "mds_entries_created_total"
	ConflictsResolved   = "find_or_create_conflicts_total"
	UploadsRejected     = "uploads_rejected_total"
	DirectoryCacheHits  = "directory_cache_hits_total"
	DirectoryCacheMiss  = "directory_cache_misses_total"
	EventsDropped       = "events_dropped_total"
	LoginFailures       = "login_failures_total"
	HTTPRequests        = "http_requests_total"
	HTTPRequestFailures = "http_request_failures_total"
)

var counterOpts = prometheus.CounterOpts{
	Namespace: "mdsregistry",
	Name:      "general_counters",
}

// NewCounter registers the counter with the default registry. Call it once
// per process.
func NewCounter() *prometheus.CounterVec {
	return promauto.NewCounterVec(counterOpts, []string{"result"})
}

// NewUnregisteredCounter is NewCounter without registration, for tests.
func NewUnregisteredCounter() *prometheus.CounterVec {
	return prometheus.NewCounterVec(counterOpts, []string{"result"})
}
