package backend

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/soocke/threshold-tuner/domain/settings"
)

// fakeBackend mimics the thresholding server's GET/POST surface.
type fakeBackend struct {
	mu       sync.Mutex
	settings map[string]string
	images   map[string]string
	posts    []url.Values
	status   int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{settings: map[string]string{}, images: map[string]string{}}
}

func (f *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.status != 0 {
		http.Error(w, "Invalid number", f.status)
		return
	}
	switch r.Method {
	case http.MethodPost:
		body, _ := io.ReadAll(r.Body)
		v, _ := url.ParseQuery(string(body))
		f.posts = append(f.posts, v)
		w.WriteHeader(http.StatusOK)
	case http.MethodGet:
		name := r.URL.Path[len("/get/"):]
		if s, ok := f.settings[name]; ok {
			w.Header().Set("Content-Type", "text/plain")
			_, _ = io.WriteString(w, s)
			return
		}
		if img, ok := f.images[name]; ok {
			_, _ = io.WriteString(w, img)
			return
		}
		http.Error(w, "Frame not ready", http.StatusServiceUnavailable)
	}
}

func (f *fakeBackend) lastPost(t *testing.T) url.Values {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.posts) == 0 {
		t.Fatalf("no POST received")
	}
	return f.posts[len(f.posts)-1]
}

func TestClient_Fetch(t *testing.T) {
	fb := newFakeBackend()
	fb.settings["ballSettings"] = `{"hueMax":30,"hueMin":0,"satMax":200,"satMin":50,"valMax":220,"valMin":20,"erosions":1,"dilations":2}`
	srv := httptest.NewServer(fb)
	defer srv.Close()

	c := NewClient(srv.URL+"/", PerType, time.Second, nil, nil)
	rec, err := c.Fetch(context.Background(), "ball")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	want := settings.Record{Name: "ball", Hue: settings.Range{Min: 0, Max: 30}, Sat: settings.Range{Min: 50, Max: 200}, Val: settings.Range{Min: 20, Max: 220}, Erosions: 1, Dilations: 2}
	if rec != want {
		t.Fatalf("record mismatch: got %+v want %+v", rec, want)
	}
}

func TestClient_FetchFailures(t *testing.T) {
	fb := newFakeBackend()
	fb.settings["bgSettings"] = `{"hueMin":0}`
	srv := httptest.NewServer(fb)
	defer srv.Close()
	c := NewClient(srv.URL, PerType, time.Second, nil, nil)

	_, err := c.Fetch(context.Background(), "bg")
	var pe *settings.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError for partial body, got %v", err)
	}

	_, err = c.Fetch(context.Background(), "hand")
	var se *StatusError
	if !errors.As(err, &se) || se.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 StatusError, got %v", err)
	}

	srv.Close()
	if _, err = c.Fetch(context.Background(), "ball"); err == nil {
		t.Fatalf("expected transport error after server close")
	}
}

func TestClient_PushPerType(t *testing.T) {
	fb := newFakeBackend()
	srv := httptest.NewServer(fb)
	defer srv.Close()
	c := NewClient(srv.URL, PerType, time.Second, nil, nil)

	rec := settings.DefaultRecord("bg")
	rec.Hue = settings.Range{Min: 10, Max: 40}
	rec.Erosions = 3
	if err := c.Push(context.Background(), rec); err != nil {
		t.Fatalf("push: %v", err)
	}
	v := fb.lastPost(t)
	if v.Get("callback") != "setBgSettings" || v.Has("type") {
		t.Fatalf("per-type dialect wrong: %v", v)
	}
	if v.Get("hueMin") != "10" || v.Get("hueMax") != "40" || v.Get("erosions") != "3" || v.Get("valMax") != "255" {
		t.Fatalf("fields wrong: %v", v)
	}
}

func TestClient_PushTyped(t *testing.T) {
	fb := newFakeBackend()
	srv := httptest.NewServer(fb)
	defer srv.Close()
	c := NewClient(srv.URL, Typed, time.Second, nil, nil)

	if err := c.Push(context.Background(), settings.DefaultRecord("hand")); err != nil {
		t.Fatalf("push: %v", err)
	}
	v := fb.lastPost(t)
	if v.Get("callback") != "settings" || v.Get("type") != "hand" {
		t.Fatalf("typed dialect wrong: %v", v)
	}
}

func TestClient_PersistAndStatus(t *testing.T) {
	fb := newFakeBackend()
	srv := httptest.NewServer(fb)
	defer srv.Close()
	c := NewClient(srv.URL, PerType, time.Second, nil, nil)

	if err := c.Persist(context.Background()); err != nil {
		t.Fatalf("persist: %v", err)
	}
	if v := fb.lastPost(t); v.Get("callback") != "save" || len(v) != 1 {
		t.Fatalf("save command wrong: %v", v)
	}

	fb.mu.Lock()
	fb.status = http.StatusUnprocessableEntity
	fb.mu.Unlock()
	err := c.Push(context.Background(), settings.DefaultRecord("ball"))
	var se *StatusError
	if !errors.As(err, &se) || se.Code != http.StatusUnprocessableEntity || se.Body != "Invalid number" {
		t.Fatalf("expected 422 StatusError, got %v", err)
	}
}

func TestClient_FetchImage(t *testing.T) {
	fb := newFakeBackend()
	fb.images["cameraImage"] = "aGVsbG8="
	srv := httptest.NewServer(fb)
	defer srv.Close()
	c := NewClient(srv.URL, PerType, time.Second, nil, nil)

	body, err := c.FetchImage(context.Background(), "cameraImage")
	if err != nil || string(body) != "aGVsbG8=" {
		t.Fatalf("image body=%q err=%v", body, err)
	}
	if _, err := c.FetchImage(context.Background(), "ballMask"); err == nil {
		t.Fatalf("expected 503 for unready mask")
	}
}

func TestDialect_Callback(t *testing.T) {
	if got := PerType.Callback("ball"); got != "setBallSettings" {
		t.Fatalf("got %q", got)
	}
	if got := Typed.Callback("ball"); got != "settings" {
		t.Fatalf("got %q", got)
	}
	if PerType.Type("ball") != "" || Typed.Type("ball") != "ball" {
		t.Fatalf("type field mapping wrong")
	}
}
