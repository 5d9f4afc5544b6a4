package model

import (
	"slices"

	"github.com/soocke/threshold-tuner/domain/settings"
)

// SettingsStore owns one record per settings type and tracks which one is bound to the form.
// No synchronization needed: it is only touched from the UI thread.
type SettingsStore struct {
	order   []string
	records map[string]*settings.Record
	active  string
}

// NewSettingsStore returns a store holding a default record for each type, in order.
// No type is active until SetActive is called.
func NewSettingsStore(types []string) *SettingsStore {
	s := &SettingsStore{records: make(map[string]*settings.Record, len(types))}
	for _, t := range types {
		if _, dup := s.records[t]; dup || t == "" {
			continue
		}
		rec := settings.DefaultRecord(t)
		s.records[t] = &rec
		s.order = append(s.order, t)
	}
	return s
}

// Types returns the known type names in configuration order.
func (s *SettingsStore) Types() []string {
	if s == nil {
		return nil
	}
	return slices.Clone(s.order)
}

// Record returns the live record for name.
func (s *SettingsStore) Record(name string) (*settings.Record, bool) {
	if s == nil {
		return nil, false
	}
	rec, ok := s.records[name]
	return rec, ok
}

// Store overwrites the values of the record named rec.Name. Unknown names are ignored.
func (s *SettingsStore) Store(rec settings.Record) bool {
	cur, ok := s.Record(rec.Name)
	if !ok {
		return false
	}
	*cur = rec
	return true
}

// SetActive marks name as the record bound to the form.
func (s *SettingsStore) SetActive(name string) bool {
	if _, ok := s.Record(name); !ok {
		return false
	}
	s.active = name
	return true
}

// ActiveName returns the active type, empty before the first SetActive.
func (s *SettingsStore) ActiveName() string {
	if s == nil {
		return ""
	}
	return s.active
}

// Active returns the active record or nil.
func (s *SettingsStore) Active() *settings.Record {
	rec, _ := s.Record(s.ActiveName())
	return rec
}
