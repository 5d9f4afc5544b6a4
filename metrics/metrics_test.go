package metrics

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()
	m.ObserveFetch("ball", nil)
	m.ObserveFetch("ball", errors.New("boom"))
	m.ObservePush("bg", nil)
	m.ObservePersist(errors.New("disk"))
	m.ObserveFrame("cameraImage", ResultStale)

	if got := testutil.ToFloat64(m.SettingsFetch.WithLabelValues("ball", ResultError)); got != 1 {
		t.Fatalf("fetch error count=%v", got)
	}
	if got := testutil.ToFloat64(m.SettingsPush.WithLabelValues("bg", ResultOK)); got != 1 {
		t.Fatalf("push ok count=%v", got)
	}
	if got := testutil.ToFloat64(m.SettingsPersist.WithLabelValues(ResultError)); got != 1 {
		t.Fatalf("persist error count=%v", got)
	}
	if got := testutil.ToFloat64(m.PreviewFrames.WithLabelValues("cameraImage", ResultStale)); got != 1 {
		t.Fatalf("stale frame count=%v", got)
	}
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	m.ObserveFetch("ball", nil)
	m.ObservePush("ball", nil)
	m.ObservePersist(nil)
	m.ObserveFrame("x", ResultOK)
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.ObservePush("ball", nil)
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	if !strings.Contains(rec.Body.String(), `tuner_settings_push_total{result="ok",type="ball"} 1`) {
		t.Fatalf("push counter missing from exposition:\n%s", rec.Body.String())
	}
}
