package presenter

import "sync"

// Loop drives periodic UI-thread work: calls posted from background goroutines, then
// preview frames, then the scheduler callback. The zero value is usable (methods are nil-safe).
type Loop struct {
	Preview  *PreviewPresenter
	Schedule func()

	mu     sync.Mutex
	posted []func()
}

func NewLoop(prev *PreviewPresenter, schedule func()) *Loop {
	return &Loop{Preview: prev, Schedule: schedule}
}

// Post queues f to run on the next Tick. Safe from any goroutine.
func (l *Loop) Post(f func()) {
	if l == nil || f == nil {
		return
	}
	l.mu.Lock()
	l.posted = append(l.posted, f)
	l.mu.Unlock()
}

func (l *Loop) Tick() {
	if l == nil {
		return
	}
	l.mu.Lock()
	posted := l.posted
	l.posted = nil
	l.mu.Unlock()
	for _, f := range posted {
		f()
	}
	if l.Preview != nil {
		l.Preview.Tick()
	}
	if l.Schedule != nil {
		l.Schedule()
	}
}
