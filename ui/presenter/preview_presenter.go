package presenter

import (
	"image"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/soocke/threshold-tuner/domain/preview"
)

// PreviewView displays one decoded frame per target.
type PreviewView interface {
	ShowPreview(target string, img image.Image)
}

// Poller is the subset of preview.Poller the presenter drives.
type Poller interface {
	Start(interval time.Duration)
	Stop()
	Running() bool
}

// FrameBuffer keeps the newest frame per target until the UI thread drains it.
// It is the poller's sink: ShowFrame runs on poller goroutines.
type FrameBuffer struct {
	mu      sync.Mutex
	pending map[string]preview.Frame
	order   []string
}

// NewFrameBuffer returns an empty buffer. order fixes the drain order for known targets.
func NewFrameBuffer(order []string) *FrameBuffer {
	return &FrameBuffer{pending: make(map[string]preview.Frame), order: append([]string(nil), order...)}
}

// ShowFrame replaces any undrained frame for f.Target.
func (b *FrameBuffer) ShowFrame(f preview.Frame) {
	b.mu.Lock()
	if _, known := b.pending[f.Target]; !known && !slices.Contains(b.order, f.Target) {
		b.order = append(b.order, f.Target)
	}
	b.pending[f.Target] = f
	b.mu.Unlock()
}

// Drain removes and returns the pending frames in target order.
func (b *FrameBuffer) Drain() []preview.Frame {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.pending) == 0 {
		return nil
	}
	out := make([]preview.Frame, 0, len(b.pending))
	for _, t := range b.order {
		if f, ok := b.pending[t]; ok {
			out = append(out, f)
		}
	}
	clear(b.pending)
	return out
}

// Discard drops everything not yet drained.
func (b *FrameBuffer) Discard() {
	b.mu.Lock()
	clear(b.pending)
	b.mu.Unlock()
}

// PreviewPresenter starts and stops the poll loop and moves buffered frames to the view.
type PreviewPresenter struct {
	poller   Poller
	buffer   *FrameBuffer
	view     PreviewView
	interval time.Duration
	logger   *slog.Logger
}

// NewPreviewPresenter wires poller output through buffer to view. Polling starts on Start.
func NewPreviewPresenter(poller Poller, buffer *FrameBuffer, view PreviewView, interval time.Duration, logger *slog.Logger) *PreviewPresenter {
	return &PreviewPresenter{poller: poller, buffer: buffer, view: view, interval: interval, logger: logger}
}

// Start begins polling. Safe to call when already running.
func (p *PreviewPresenter) Start() {
	if p == nil || p.poller == nil {
		return
	}
	p.poller.Start(p.interval)
	if p.logger != nil {
		p.logger.Info("preview polling started", "interval", p.interval.String())
	}
}

// Stop halts polling and drops frames that arrived but were not shown yet.
func (p *PreviewPresenter) Stop() {
	if p == nil || p.poller == nil {
		return
	}
	wasRunning := p.poller.Running()
	p.poller.Stop()
	p.buffer.Discard()
	if wasRunning && p.logger != nil {
		p.logger.Info("preview polling stopped")
	}
}

// Toggle flips between running and stopped and reports the new state.
func (p *PreviewPresenter) Toggle() bool {
	if p == nil || p.poller == nil {
		return false
	}
	if p.poller.Running() {
		p.Stop()
		return false
	}
	p.Start()
	return true
}

// Running reports whether the poller is active.
func (p *PreviewPresenter) Running() bool {
	return p != nil && p.poller != nil && p.poller.Running()
}

// Tick pushes buffered frames to the view. UI thread only.
func (p *PreviewPresenter) Tick() {
	if p == nil || p.buffer == nil || p.view == nil {
		return
	}
	for _, f := range p.buffer.Drain() {
		p.view.ShowPreview(f.Target, f.Image)
	}
}
