package metrics

import (
	"strings"
	"testing"
)

func TestRecordRequestAndExport(t *testing.T) {
	RecordRequest("POST", "/api/scrape", 200, 42)

	out := Export()
	if !strings.Contains(out, "prospect_http_requests_total{method=\"POST\",path=\"/api/scrape\",status=\"200\"}") {
		t.Fatalf("expected HTTP request metric for POST /api/scrape in export, got:\n%s", out)
	}
	if !strings.Contains(out, "prospect_http_request_duration_ms_sum") || !strings.Contains(out, "prospect_http_request_duration_ms_count") {
		t.Fatalf("expected latency metrics headers in export, got:\n%s", out)
	}
}

func TestRecordScrape(t *testing.T) {
	RecordScrape("browser", true)
	RecordScrape("browser", false)
	RecordScrape("http", true)

	out := Export()
	if !strings.Contains(out, "prospect_scrapes_total{engine=\"browser\",success=\"true\"}") {
		t.Fatalf("expected browser success counter, got:\n%s", out)
	}
	if !strings.Contains(out, "prospect_scrapes_total{engine=\"browser\",success=\"false\"}") {
		t.Fatalf("expected browser failure counter, got:\n%s", out)
	}
	if !strings.Contains(out, "prospect_scrapes_total{engine=\"http\",success=\"true\"}") {
		t.Fatalf("expected http success counter, got:\n%s", out)
	}
}

func TestRecordCSVExport(t *testing.T) {
	RecordCSVExport()

	out := Export()
	if !strings.Contains(out, "prospect_csv_exports_total") {
		t.Fatalf("expected csv export counter in export, got:\n%s", out)
	}
}
