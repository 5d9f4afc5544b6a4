package settings

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
)

var (
	ErrMissingField = errors.New("missing field")
	ErrNotNumeric   = errors.New("not numeric")
	ErrNotString    = errors.New("not a string")
)

// ParseError reports the wire field that could not be decoded.
type ParseError struct {
	Field string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Field == "" {
		return "settings: " + e.Err.Error()
	}
	return fmt.Sprintf("settings: field %q: %v", e.Field, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Wire is the flat shape exchanged with the backend. Callback and Type are only
// meaningful on writes; the backend dispatches on them.
type Wire struct {
	Callback  string `json:"callback,omitempty"`
	Type      string `json:"type,omitempty"`
	HueMin    int    `json:"hueMin"`
	HueMax    int    `json:"hueMax"`
	SatMin    int    `json:"satMin"`
	SatMax    int    `json:"satMax"`
	ValMin    int    `json:"valMin"`
	ValMax    int    `json:"valMax"`
	Erosions  int    `json:"erosions"`
	Dilations int    `json:"dilations"`
}

// wireFields lists the numeric keys in the order the form encoder emits them.
var wireFields = []string{"hueMin", "hueMax", "satMin", "satMax", "valMin", "valMax", "erosions", "dilations"}

func (w *Wire) field(name string) *int {
	switch name {
	case "hueMin":
		return &w.HueMin
	case "hueMax":
		return &w.HueMax
	case "satMin":
		return &w.SatMin
	case "satMax":
		return &w.SatMax
	case "valMin":
		return &w.ValMin
	case "valMax":
		return &w.ValMax
	case "erosions":
		return &w.Erosions
	case "dilations":
		return &w.Dilations
	}
	return nil
}

// ParseWire decodes a flat JSON object. Each numeric field may be a JSON number or a
// numeric string; anything else, or a missing field, yields a *ParseError.
func ParseWire(data []byte) (Wire, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(bytes.TrimSpace(data), &raw); err != nil {
		return Wire{}, &ParseError{Err: err}
	}
	var w Wire
	for _, name := range wireFields {
		msg, ok := raw[name]
		if !ok {
			return Wire{}, &ParseError{Field: name, Err: ErrMissingField}
		}
		n, err := coerceInt(msg)
		if err != nil {
			return Wire{}, &ParseError{Field: name, Err: err}
		}
		*w.field(name) = n
	}
	for name, dst := range map[string]*string{"callback": &w.Callback, "type": &w.Type} {
		msg, ok := raw[name]
		if !ok {
			continue
		}
		if err := json.Unmarshal(msg, dst); err != nil {
			return Wire{}, &ParseError{Field: name, Err: ErrNotString}
		}
	}
	return w, nil
}

func coerceInt(msg json.RawMessage) (int, error) {
	var v any
	if err := json.Unmarshal(msg, &v); err != nil {
		return 0, ErrNotNumeric
	}
	switch x := v.(type) {
	case float64:
		// -MinInt is a power of two, so both bounds are exact as float64
		if x != math.Trunc(x) || x < float64(math.MinInt) || x >= -float64(math.MinInt) {
			return 0, ErrNotNumeric
		}
		return int(x), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(x))
		if err != nil {
			return 0, ErrNotNumeric
		}
		return n, nil
	default:
		return 0, ErrNotNumeric
	}
}

// Values form-encodes w for POST /post. Type is omitted when empty.
func (w Wire) Values() url.Values {
	v := url.Values{}
	if w.Callback != "" {
		v.Set("callback", w.Callback)
	}
	if w.Type != "" {
		v.Set("type", w.Type)
	}
	for _, name := range wireFields {
		v.Set(name, strconv.Itoa(*w.field(name)))
	}
	return v
}

// FromWire builds the structured record named name from a wire object.
func FromWire(name string, w Wire) Record {
	return Record{
		Name:      name,
		Hue:       Range{Min: w.HueMin, Max: w.HueMax},
		Sat:       Range{Min: w.SatMin, Max: w.SatMax},
		Val:       Range{Min: w.ValMin, Max: w.ValMax},
		Erosions:  w.Erosions,
		Dilations: w.Dilations,
	}
}

// ToWire flattens r and tags it with the dispatch fields the backend expects.
func (r Record) ToWire(callback, typ string) Wire {
	return Wire{
		Callback:  callback,
		Type:      typ,
		HueMin:    r.Hue.Min,
		HueMax:    r.Hue.Max,
		SatMin:    r.Sat.Min,
		SatMax:    r.Sat.Max,
		ValMin:    r.Val.Min,
		ValMax:    r.Val.Max,
		Erosions:  r.Erosions,
		Dilations: r.Dilations,
	}
}
