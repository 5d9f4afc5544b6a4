package presenter

import (
	"context"
	"errors"
	"image"
	"sync"
	"time"

	"github.com/soocke/threshold-tuner/domain/settings"
)

// mockForm stores control text. Notify forwards to onChange the way a Tk binding would.
type mockForm struct {
	values   map[Control]string
	sets     int
	notifies int
	onChange func()
}

func newMockForm() *mockForm { return &mockForm{values: make(map[Control]string)} }

func (f *mockForm) Value(c Control) string       { return f.values[c] }
func (f *mockForm) SetValue(c Control, v string) { f.sets++; f.values[c] = v }
func (f *mockForm) Notify(c Control) {
	f.notifies++
	if f.onChange != nil {
		f.onChange()
	}
}

// edit simulates the user changing one control.
func (f *mockForm) edit(c Control, v string) {
	f.values[c] = v
	f.Notify(c)
}

func (f *mockForm) snapshot() map[Control]string {
	out := make(map[Control]string, len(f.values))
	for k, v := range f.values {
		out[k] = v
	}
	return out
}

type mockService struct {
	mu         sync.Mutex
	records    map[string]settings.Record
	fetchErr   map[string]error
	fetches    int
	pushes     []settings.Record
	persists   int
	persistErr error
}

func (s *mockService) Fetch(ctx context.Context, name string) (settings.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetches++
	if err := s.fetchErr[name]; err != nil {
		return settings.Record{}, err
	}
	rec, ok := s.records[name]
	if !ok {
		return settings.Record{}, errors.New("not found")
	}
	return rec, nil
}

func (s *mockService) Push(ctx context.Context, rec settings.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pushes = append(s.pushes, rec)
	return nil
}

func (s *mockService) Persist(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.persists++
	return s.persistErr
}

func (s *mockService) pushCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pushes)
}

type mockStatus struct{ texts []string }

func (s *mockStatus) SetStatus(text string) { s.texts = append(s.texts, text) }

func (s *mockStatus) last() string {
	if len(s.texts) == 0 {
		return ""
	}
	return s.texts[len(s.texts)-1]
}

type mockPoller struct {
	running bool
	starts  int
	stops   int
}

func (p *mockPoller) Start(interval time.Duration) {
	p.starts++
	p.running = true
}
func (p *mockPoller) Stop()         { p.stops++; p.running = false }
func (p *mockPoller) Running() bool { return p.running }

type mockPreviewView struct {
	shown []string
}

func (v *mockPreviewView) ShowPreview(target string, img image.Image) {
	v.shown = append(v.shown, target)
}
