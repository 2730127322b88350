package metrics

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Simple Prometheus-style metrics for HTTP requests and scrapes.
// This is intentionally minimal and in-memory only.

var (
	mu             sync.RWMutex
	requestsTotal  = make(map[reqKey]int64)
	latencyMsSum   = make(map[latKey]int64)
	latencyMsCount = make(map[latKey]int64)
	scrapesTotal   = make(map[scrapeKey]int64)
	csvExports     int64
)

type reqKey struct {
	Method string
	Path   string
	Status int
}

type latKey struct {
	Method string
	Path   string
}

type scrapeKey struct {
	Engine  string
	Success string
}

// RecordRequest increments request counter and records latency.
func RecordRequest(method, path string, status int, latencyMs int64) {
	mu.Lock()
	defer mu.Unlock()

	rk := reqKey{Method: method, Path: path, Status: status}
	requestsTotal[rk]++

	lk := latKey{Method: method, Path: path}
	latencyMsSum[lk] += latencyMs
	latencyMsCount[lk]++
}

// RecordScrape increments scrape counters per engine and outcome.
func RecordScrape(engine string, success bool) {
	mu.Lock()
	defer mu.Unlock()

	s := "false"
	if success {
		s = "true"
	}
	scrapesTotal[scrapeKey{Engine: engine, Success: s}]++
}

// RecordCSVExport counts CSV download requests that completed.
func RecordCSVExport() {
	mu.Lock()
	defer mu.Unlock()
	csvExports++
}

// Export returns Prometheus-style metrics text.
func Export() string {
	mu.RLock()
	defer mu.RUnlock()

	var b strings.Builder

	b.WriteString("# HELP prospect_http_requests_total Total HTTP requests\n")
	b.WriteString("# TYPE prospect_http_requests_total counter\n")

	reqKeys := make([]reqKey, 0, len(requestsTotal))
	for k := range requestsTotal {
		reqKeys = append(reqKeys, k)
	}
	sort.Slice(reqKeys, func(i, j int) bool {
		a, z := reqKeys[i], reqKeys[j]
		if a.Method != z.Method {
			return a.Method < z.Method
		}
		if a.Path != z.Path {
			return a.Path < z.Path
		}
		return a.Status < z.Status
	})
	for _, k := range reqKeys {
		fmt.Fprintf(&b, "prospect_http_requests_total{method=%q,path=%q,status=\"%d\"} %d\n",
			k.Method, k.Path, k.Status, requestsTotal[k])
	}

	b.WriteString("# HELP prospect_http_request_duration_ms_sum Sum of request latencies in ms\n")
	b.WriteString("# TYPE prospect_http_request_duration_ms_sum counter\n")

	latKeys := make([]latKey, 0, len(latencyMsSum))
	for k := range latencyMsSum {
		latKeys = append(latKeys, k)
	}
	sort.Slice(latKeys, func(i, j int) bool {
		a, z := latKeys[i], latKeys[j]
		if a.Method != z.Method {
			return a.Method < z.Method
		}
		return a.Path < z.Path
	})
	for _, k := range latKeys {
		fmt.Fprintf(&b, "prospect_http_request_duration_ms_sum{method=%q,path=%q} %d\n",
			k.Method, k.Path, latencyMsSum[k])
	}

	b.WriteString("# HELP prospect_http_request_duration_ms_count Count of requests with recorded latency\n")
	b.WriteString("# TYPE prospect_http_request_duration_ms_count counter\n")
	for _, k := range latKeys {
		fmt.Fprintf(&b, "prospect_http_request_duration_ms_count{method=%q,path=%q} %d\n",
			k.Method, k.Path, latencyMsCount[k])
	}

	b.WriteString("# HELP prospect_scrapes_total Total scrape operations\n")
	b.WriteString("# TYPE prospect_scrapes_total counter\n")

	scrapeKeys := make([]scrapeKey, 0, len(scrapesTotal))
	for k := range scrapesTotal {
		scrapeKeys = append(scrapeKeys, k)
	}
	sort.Slice(scrapeKeys, func(i, j int) bool {
		a, z := scrapeKeys[i], scrapeKeys[j]
		if a.Engine != z.Engine {
			return a.Engine < z.Engine
		}
		return a.Success < z.Success
	})
	for _, k := range scrapeKeys {
		fmt.Fprintf(&b, "prospect_scrapes_total{engine=%q,success=%q} %d\n",
			k.Engine, k.Success, scrapesTotal[k])
	}

	b.WriteString("# HELP prospect_csv_exports_total Total CSV exports served\n")
	b.WriteString("# TYPE prospect_csv_exports_total counter\n")
	fmt.Fprintf(&b, "prospect_csv_exports_total %d\n", csvExports)

	return b.String()
}
