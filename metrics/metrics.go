package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Result label values.
const (
	ResultOK          = "ok"
	ResultError       = "error"
	ResultStale       = "stale"
	ResultDecodeError = "decode_error"
)

// Metrics holds the tuner's client-side counters. A nil *Metrics is valid and records nothing.
type Metrics struct {
	SettingsFetch   *prometheus.CounterVec
	SettingsPush    *prometheus.CounterVec
	SettingsPersist *prometheus.CounterVec
	PreviewFrames   *prometheus.CounterVec

	registry *prometheus.Registry
}

// New creates a new Metrics instance with its own registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		SettingsFetch: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tuner_settings_fetch_total",
			Help: "Settings fetches by type and result",
		}, []string{"type", "result"}),
		SettingsPush: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tuner_settings_push_total",
			Help: "Settings pushes by type and result",
		}, []string{"type", "result"}),
		SettingsPersist: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tuner_settings_persist_total",
			Help: "Save-to-disk commands by result",
		}, []string{"result"}),
		PreviewFrames: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tuner_preview_frames_total",
			Help: "Preview image responses by target and result",
		}, []string{"target", "result"}),
	}
	m.registry.MustRegister(m.SettingsFetch, m.SettingsPush, m.SettingsPersist, m.PreviewFrames)
	return m
}

// ObserveFetch counts one settings fetch.
func (m *Metrics) ObserveFetch(typ string, err error) {
	if m == nil {
		return
	}
	m.SettingsFetch.WithLabelValues(typ, resultOf(err)).Inc()
}

// ObservePush counts one settings push.
func (m *Metrics) ObservePush(typ string, err error) {
	if m == nil {
		return
	}
	m.SettingsPush.WithLabelValues(typ, resultOf(err)).Inc()
}

// ObservePersist counts one save command.
func (m *Metrics) ObservePersist(err error) {
	if m == nil {
		return
	}
	m.SettingsPersist.WithLabelValues(resultOf(err)).Inc()
}

// ObserveFrame counts one preview response with an explicit result label.
func (m *Metrics) ObserveFrame(target, result string) {
	if m == nil {
		return
	}
	m.PreviewFrames.WithLabelValues(target, result).Inc()
}

func resultOf(err error) string {
	if err != nil {
		return ResultError
	}
	return ResultOK
}

// Handler returns the Prometheus HTTP handler
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// StartServer serves /metrics on addr. It blocks like http.ListenAndServe.
func (m *Metrics) StartServer(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	return http.ListenAndServe(addr, mux)
}
