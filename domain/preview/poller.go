package preview

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/time/rate"

	"github.com/soocke/threshold-tuner/domain/backend"
	"github.com/soocke/threshold-tuner/metrics"
)

const (
	defaultRequestTimeout = 2 * time.Second
	failureLogInterval    = 5 * time.Second
)

// Poller periodically fetches a fixed set of image resources and hands each decoded
// frame to a Sink. Requests within a tick are independent: a slow or failing target
// neither delays the others nor the next tick. Use NewPoller to construct an instance.
type Poller struct {
	fetcher Fetcher
	sink    Sink
	targets []string
	timeout time.Duration
	logger  *slog.Logger
	metrics *metrics.Metrics

	mu      sync.Mutex
	running bool
	gen     uint64
	done    chan struct{}
	issued  map[string]uint64
	shown   map[string]uint64
	warn    map[string]*rate.Sometimes

	ticks     atomic.Uint64
	requests  atomic.Uint64
	delivered atomic.Uint64
	failed    atomic.Uint64
	stale     atomic.Uint64
}

// NewPoller constructs a stopped poller for targets. timeout bounds each request; zero
// selects a 2s default.
func NewPoller(fetcher Fetcher, sink Sink, targets []string, timeout time.Duration, logger *slog.Logger, m *metrics.Metrics) *Poller {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	p := &Poller{
		fetcher: fetcher,
		sink:    sink,
		targets: append([]string(nil), targets...),
		timeout: timeout,
		logger:  logger,
		metrics: m,
		issued:  make(map[string]uint64),
		shown:   make(map[string]uint64),
		warn:    make(map[string]*rate.Sometimes),
	}
	for _, t := range p.targets {
		p.warn[t] = &rate.Sometimes{First: 1, Interval: failureLogInterval}
	}
	return p
}

// Start begins polling every interval. The first round is issued immediately.
// Calling Start on a running poller is a no-op.
func (p *Poller) Start(interval time.Duration) {
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		return
	}
	p.running = true
	p.gen++
	p.done = make(chan struct{})
	go p.loop(p.gen, p.done, interval)
}

// Stop cancels the timer. Requests already in flight are not aborted but their results
// are discarded: once Stop returns the sink receives nothing further.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.running {
		return
	}
	p.running = false
	p.gen++
	close(p.done)
}

// Running reports whether the timer is active.
func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

// Stats returns a snapshot of the loop counters.
func (p *Poller) Stats() Stats {
	return Stats{
		Ticks:     p.ticks.Load(),
		Requests:  p.requests.Load(),
		Delivered: p.delivered.Load(),
		Failed:    p.failed.Load(),
		Stale:     p.stale.Load(),
	}
}

func (p *Poller) loop(gen uint64, done <-chan struct{}, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	p.tick(gen)
	for {
		select {
		case <-ticker.C:
			p.tick(gen)
		case <-done:
			return
		}
	}
}

func (p *Poller) tick(gen uint64) {
	p.ticks.Add(1)
	for _, target := range p.targets {
		p.mu.Lock()
		if gen != p.gen {
			p.mu.Unlock()
			return
		}
		p.issued[target]++
		seq := p.issued[target]
		p.mu.Unlock()

		p.requests.Add(1)
		go p.fetch(gen, target, seq)
	}
}

func (p *Poller) fetch(gen uint64, target string, seq uint64) {
	defer func() {
		if r := recover(); r != nil && p.logger != nil {
			p.logger.Error("preview fetch panic", "target", target, "error", r, "stack", string(debug.Stack()))
		}
	}()
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	body, err := p.fetcher.FetchImage(ctx, target)
	if err != nil {
		p.fail(target, metrics.ResultError, err)
		return
	}
	img, err := DecodeFrame(body)
	if err != nil {
		p.fail(target, metrics.ResultDecodeError, err)
		return
	}
	p.deliver(gen, Frame{Target: target, Image: img, Bytes: len(body), Sequence: seq, At: time.Now()})
}

func (p *Poller) deliver(gen uint64, f Frame) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.running || gen != p.gen || f.Sequence <= p.shown[f.Target] {
		p.stale.Add(1)
		p.metrics.ObserveFrame(f.Target, metrics.ResultStale)
		return
	}
	p.shown[f.Target] = f.Sequence
	p.delivered.Add(1)
	p.metrics.ObserveFrame(f.Target, metrics.ResultOK)
	if p.logger != nil {
		p.logger.Debug("preview frame", "target", f.Target, "seq", f.Sequence, "bytes", humanize.Bytes(uint64(f.Bytes)))
	}
	if p.sink != nil {
		p.sink.ShowFrame(f)
	}
}

// fail records a failed response. The sink is not touched so the previous frame stays up.
func (p *Poller) fail(target, result string, err error) {
	p.failed.Add(1)
	p.metrics.ObserveFrame(target, result)
	if p.logger == nil {
		return
	}
	var se *backend.StatusError
	if errors.As(err, &se) && se.Code == http.StatusServiceUnavailable {
		p.logger.Debug("preview not ready", "target", target, "error", err)
		return
	}
	if s := p.warn[target]; s != nil {
		s.Do(func() { p.logger.Warn("preview fetch failed", "target", target, "result", result, "error", err) })
	}
}
