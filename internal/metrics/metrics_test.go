package metrics

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordMutation(t *testing.T) {
	before := testutil.ToFloat64(HabitMutations.WithLabelValues("add"))
	RecordMutation("add")
	RecordMutation("add")
	if got := testutil.ToFloat64(HabitMutations.WithLabelValues("add")); got != before+2 {
		t.Errorf("add mutations = %v, want %v", got, before+2)
	}
}

func TestRecordKVLoad(t *testing.T) {
	before := testutil.ToFloat64(KVLoads.WithLabelValues("memory", "miss"))
	RecordKVLoad("memory", "miss")
	if got := testutil.ToFloat64(KVLoads.WithLabelValues("memory", "miss")); got != before+1 {
		t.Errorf("loads = %v, want %v", got, before+1)
	}
}

func TestHandlerExposesCollectors(t *testing.T) {
	RecordKVSave("memory", nil, time.Millisecond)
	RecordKVSave("memory", errors.New("boom"), time.Millisecond)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body := rec.Body.String()
	for _, name := range []string{"habits_kv_save_duration_seconds", `status="error"`} {
		if !strings.Contains(body, name) {
			t.Errorf("metrics output missing %q", name)
		}
	}
}
