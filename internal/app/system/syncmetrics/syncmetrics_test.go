package syncmetrics_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/huddle/internal/app/system/syncmetrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollector_Counts(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := syncmetrics.NewCollector(reg)

	c.RecordScan("sync_profile", 5)
	c.RecordRewrite("sync_profile")
	c.RecordRewrite("sync_profile")
	c.RecordFailure("ensure_creator")
	c.RecordDuration("sync_profile", 20*time.Millisecond)

	if n, err := testutil.GatherAndCount(reg, "huddle_membersync_groups_rewritten_total"); err != nil || n != 1 {
		t.Fatalf("GatherAndCount: n=%d err=%v", n, err)
	}

	want := `
# HELP huddle_membersync_groups_scanned_total Groups examined by member synchronization.
# TYPE huddle_membersync_groups_scanned_total counter
huddle_membersync_groups_scanned_total{op="sync_profile"} 5
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(want), "huddle_membersync_groups_scanned_total"); err != nil {
		t.Errorf("scanned mismatch: %v", err)
	}
}

func TestHandler_ServesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := syncmetrics.NewCollector(reg)
	c.RecordFailure("sync_profile")

	rec := httptest.NewRecorder()
	syncmetrics.Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), `huddle_membersync_failures_total{op="sync_profile"} 1`) {
		t.Errorf("failures counter missing from output:\n%s", rec.Body.String())
	}
}
