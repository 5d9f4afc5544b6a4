package presenter

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/soocke/threshold-tuner/domain/settings"
)

// Control identifies one tuning control on the form.
type Control int

const (
	ControlHue Control = iota
	ControlSat
	ControlVal
	ControlErosions
	ControlDilations
)

// Controls lists every control in form order.
var Controls = []Control{ControlHue, ControlSat, ControlVal, ControlErosions, ControlDilations}

func (c Control) String() string {
	switch c {
	case ControlHue:
		return "hue"
	case ControlSat:
		return "sat"
	case ControlVal:
		return "val"
	case ControlErosions:
		return "erosions"
	case ControlDilations:
		return "dilations"
	default:
		return "unknown"
	}
}

// Separator returns the pair delimiter for range controls and 0 for scalar ones.
func (c Control) Separator() rune {
	switch c {
	case ControlHue:
		return settings.SepHue
	case ControlSat, ControlVal:
		return settings.SepLinear
	default:
		return 0
	}
}

// Form is the subset of the view the binder reads and writes. Values are the text the
// control holds; Notify fires the control's change notification as a user edit would.
type Form interface {
	Value(c Control) string
	SetValue(c Control, v string)
	Notify(c Control)
}

// BindState is the form binding state. Change notifications are only accepted in
// Bound or Editing; Applying covers the span in which the binder itself writes the form.
type BindState int

const (
	StateUninitialized BindState = iota
	StateLoading
	StateBound
	StateApplying
	StateEditing
)

func (s BindState) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateLoading:
		return "loading"
	case StateBound:
		return "bound"
	case StateApplying:
		return "applying"
	case StateEditing:
		return "editing"
	default:
		return "unknown"
	}
}

// Binder keeps one record and one form in sync in both directions without feedback loops.
type Binder struct {
	form   Form
	state  BindState
	logger *slog.Logger
}

// NewBinder returns a binder in StateUninitialized.
func NewBinder(form Form, logger *slog.Logger) *Binder {
	return &Binder{form: form, logger: logger}
}

// State reports the current binding state.
func (b *Binder) State() BindState {
	if b == nil {
		return StateUninitialized
	}
	return b.state
}

// SetLoading marks that a fetch is in flight; form changes are ignored until Apply.
func (b *Binder) SetLoading() { b.transition(StateLoading) }

// Apply writes rec into the form and fires each control's change notification so
// dependent widgets redraw. Notifications arriving while applying are ignored by Read.
func (b *Binder) Apply(rec settings.Record) {
	if b == nil || b.form == nil {
		return
	}
	b.transition(StateApplying)
	defer b.transition(StateBound)
	for _, c := range Controls {
		b.form.SetValue(c, formatControl(c, rec))
	}
	for _, c := range Controls {
		b.form.Notify(c)
	}
}

// Accepting reports whether form notifications are currently treated as user edits.
func (b *Binder) Accepting() bool {
	return b != nil && (b.state == StateBound || b.state == StateEditing)
}

// Read copies the form's values into rec and reports whether any field differs from
// what rec held. It returns false without touching rec when the gate is closed (loading,
// applying, or never bound). On a parse error rec is left unchanged and the state stays
// where it was. Only a changed read moves the binder to Editing.
func (b *Binder) Read(rec *settings.Record) (bool, error) {
	if b == nil || b.form == nil || rec == nil || !b.Accepting() {
		return false, nil
	}
	next := *rec
	var errs []error
	for _, c := range Controls {
		if err := parseControl(c, b.form.Value(c), &next); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", c, err))
		}
	}
	if len(errs) > 0 {
		return false, errors.Join(errs...)
	}
	if next == *rec {
		return false, nil
	}
	*rec = next
	b.transition(StateEditing)
	return true, nil
}

// Committed returns the binder to Bound once the edit has been handed to the backend.
func (b *Binder) Committed() {
	if b != nil && b.state == StateEditing {
		b.transition(StateBound)
	}
}

func (b *Binder) transition(next BindState) {
	if b == nil || b.state == next {
		return
	}
	prev := b.state
	b.state = next
	if b.logger != nil {
		b.logger.Debug("form binding transition", "from", prev.String(), "to", next.String())
	}
}

func formatControl(c Control, rec settings.Record) string {
	switch c {
	case ControlHue:
		return settings.FormatRange(rec.Hue, c.Separator())
	case ControlSat:
		return settings.FormatRange(rec.Sat, c.Separator())
	case ControlVal:
		return settings.FormatRange(rec.Val, c.Separator())
	case ControlErosions:
		return strconv.Itoa(rec.Erosions)
	case ControlDilations:
		return strconv.Itoa(rec.Dilations)
	}
	return ""
}

func parseControl(c Control, text string, rec *settings.Record) error {
	switch c {
	case ControlHue, ControlSat, ControlVal:
		r, err := settings.ParseRange(text, c.Separator())
		if err != nil {
			return err
		}
		switch c {
		case ControlHue:
			rec.Hue = r
		case ControlSat:
			rec.Sat = r
		default:
			rec.Val = r
		}
	case ControlErosions, ControlDilations:
		n, err := strconv.Atoi(strings.TrimSpace(text))
		if err != nil {
			return settings.ErrNotNumeric
		}
		if c == ControlErosions {
			rec.Erosions = n
		} else {
			rec.Dilations = n
		}
	}
	return nil
}
