package preview

import (
	"context"
	"image"
	"time"
)

// Fetcher returns the raw body for one image resource.
type Fetcher interface {
	FetchImage(ctx context.Context, resource string) ([]byte, error)
}

// Sink receives decoded frames. ShowFrame is called with the poller's delivery lock
// held, so it must return quickly and must not call back into the Poller.
type Sink interface {
	ShowFrame(f Frame)
}

// Frame is one decoded preview image for a target.
type Frame struct {
	Target   string
	Image    image.Image
	Bytes    int
	Sequence uint64
	At       time.Time
}

// Stats summarises poll loop behaviour for instrumentation.
type Stats struct {
	Ticks     uint64
	Requests  uint64
	Delivered uint64
	Failed    uint64
	Stale     uint64
}
