package store

import (
	"time"

	"github.com/dukerupert/habits/internal/metrics"
)

type instrumentedKV struct {
	next    KV
	backend string
}

// Instrumented wraps kv so loads and saves are recorded in Prometheus under
// the given backend label.
func Instrumented(kv KV, backend string) KV {
	return &instrumentedKV{next: kv, backend: backend}
}

func (i *instrumentedKV) Load(key string) (string, bool, error) {
	value, ok, err := i.next.Load(key)
	switch {
	case err != nil:
		metrics.RecordKVLoad(i.backend, "error")
	case ok:
		metrics.RecordKVLoad(i.backend, "hit")
	default:
		metrics.RecordKVLoad(i.backend, "miss")
	}
	return value, ok, err
}

func (i *instrumentedKV) Save(key, value string) error {
	start := time.Now()
	err := i.next.Save(key, value)
	metrics.RecordKVSave(i.backend, err, time.Since(start))
	return err
}
