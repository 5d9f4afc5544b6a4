package debug

// Debug runtime logger. Started only when config.Debug is true.
// Emits goroutine count, heap and stack usage, and the preview poller counters at a
// fixed interval, so leaked poll goroutines or a backlog of slow requests show up early.

import (
	"context"
	"log/slog"
	"runtime"
	"runtime/metrics"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/soocke/threshold-tuner/domain/preview"
)

// StatsSource reports the poll loop counters.
type StatsSource interface {
	Stats() preview.Stats
}

// StartRuntimeLogger launches a ticker that logs runtime and poller stats until ctx is done.
// src may be nil.
func StartRuntimeLogger(ctx context.Context, interval time.Duration, logger *slog.Logger, src StatsSource) {
	if interval <= 0 {
		interval = time.Second
	}
	if logger == nil {
		return
	}

	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		samples := []metrics.Sample{{Name: "/sched/goroutines:goroutines"}}
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
			}
			logger.Info("runtime-stats", runtimeAttrs(samples, src)...)
		}
	}()
}

func runtimeAttrs(samples []metrics.Sample, src StatsSource) []any {
	metrics.Read(samples)
	var goroutines uint64
	if samples[0].Value.Kind() == metrics.KindUint64 {
		goroutines = samples[0].Value.Uint64()
	}
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	attrs := []any{
		slog.Uint64("goroutines", goroutines),
		slog.String("stack_inuse", humanize.Bytes(ms.StackInuse)),
		slog.String("heap_alloc", humanize.Bytes(ms.HeapAlloc)),
	}
	if src != nil {
		st := src.Stats()
		attrs = append(attrs,
			slog.Uint64("poll_ticks", st.Ticks),
			slog.Uint64("poll_requests", st.Requests),
			slog.Uint64("poll_delivered", st.Delivered),
			slog.Uint64("poll_failed", st.Failed),
			slog.Uint64("poll_stale", st.Stale),
			slog.Uint64("poll_in_flight", inFlight(st)),
		)
	}
	return attrs
}

// inFlight derives outstanding requests. Counters are read one by one, so completions
// may briefly outnumber requests.
func inFlight(st preview.Stats) uint64 {
	done := st.Delivered + st.Failed + st.Stale
	if done > st.Requests {
		return 0
	}
	return st.Requests - done
}
