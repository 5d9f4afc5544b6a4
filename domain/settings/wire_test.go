package settings

import (
	"errors"
	"testing"
)

func TestParseWire_RoundTrip(t *testing.T) {
	cases := []Wire{
		{HueMin: 0, HueMax: 30, SatMin: 50, SatMax: 200, ValMin: 20, ValMax: 220, Erosions: 1, Dilations: 2},
		{Callback: "settings", Type: "hand", HueMin: 5, HueMax: 179, SatMin: 0, SatMax: 255, ValMin: 0, ValMax: 255},
		{Callback: "setBgSettings", HueMin: 90, HueMax: 10, SatMin: 300, SatMax: -1, Erosions: 7},
	}
	for _, in := range cases {
		rec := FromWire("ball", in)
		out := rec.ToWire(in.Callback, in.Type)
		if out != in {
			t.Fatalf("round trip mismatch: in=%+v out=%+v", in, out)
		}
	}
}

func TestParseWire_BackendBody(t *testing.T) {
	body := []byte(`{"hueMax":30,"hueMin":0,"satMax":200,"satMin":50,"valMax":220,"valMin":20,"erosions":1,"dilations":2}`)
	w, err := ParseWire(body)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	rec := FromWire("ball", w)
	if rec.Hue != (Range{0, 30}) || rec.Sat != (Range{50, 200}) || rec.Val != (Range{20, 220}) || rec.Erosions != 1 || rec.Dilations != 2 {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

func TestParseWire_CoercesNumericStrings(t *testing.T) {
	body := []byte(`{"hueMin":"10","hueMax":" 40 ","satMin":1,"satMax":2.0,"valMin":"3","valMax":4,"erosions":"0","dilations":0}`)
	w, err := ParseWire(body)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if w.HueMin != 10 || w.HueMax != 40 || w.SatMax != 2 || w.ValMin != 3 {
		t.Fatalf("coercion failed: %+v", w)
	}
}

func TestParseWire_Errors(t *testing.T) {
	cases := []struct {
		name  string
		body  string
		field string
		want  error
	}{
		{"missing", `{"hueMin":0,"hueMax":1,"satMin":0,"satMax":1,"valMin":0,"valMax":1,"erosions":0}`, "dilations", ErrMissingField},
		{"string", `{"hueMin":"abc","hueMax":1,"satMin":0,"satMax":1,"valMin":0,"valMax":1,"erosions":0,"dilations":0}`, "hueMin", ErrNotNumeric},
		{"fraction", `{"hueMin":0,"hueMax":1.5,"satMin":0,"satMax":1,"valMin":0,"valMax":1,"erosions":0,"dilations":0}`, "hueMax", ErrNotNumeric},
		{"null", `{"hueMin":0,"hueMax":1,"satMin":null,"satMax":1,"valMin":0,"valMax":1,"erosions":0,"dilations":0}`, "satMin", ErrNotNumeric},
		{"overflow", `{"hueMin":1e300,"hueMax":1,"satMin":0,"satMax":1,"valMin":0,"valMax":1,"erosions":0,"dilations":0}`, "hueMin", ErrNotNumeric},
		{"negative overflow", `{"hueMin":0,"hueMax":1,"satMin":0,"satMax":1,"valMin":-1e19,"valMax":1,"erosions":0,"dilations":0}`, "valMin", ErrNotNumeric},
		{"numeric callback", `{"callback":7,"hueMin":0,"hueMax":1,"satMin":0,"satMax":1,"valMin":0,"valMax":1,"erosions":0,"dilations":0}`, "callback", ErrNotString},
		{"object type", `{"type":{},"hueMin":0,"hueMax":1,"satMin":0,"satMax":1,"valMin":0,"valMax":1,"erosions":0,"dilations":0}`, "type", ErrNotString},
	}
	for _, tc := range cases {
		_, err := ParseWire([]byte(tc.body))
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Fatalf("%s: expected ParseError, got %v", tc.name, err)
		}
		if pe.Field != tc.field || !errors.Is(err, tc.want) {
			t.Fatalf("%s: field=%q err=%v, want field=%q err=%v", tc.name, pe.Field, pe.Err, tc.field, tc.want)
		}
	}
}

func TestParseWire_InvalidJSON(t *testing.T) {
	_, err := ParseWire([]byte("Frame not ready"))
	var pe *ParseError
	if !errors.As(err, &pe) || pe.Field != "" {
		t.Fatalf("expected field-less ParseError, got %v", err)
	}
}

func TestWire_Values(t *testing.T) {
	w := DefaultRecord("hand").ToWire("settings", "hand")
	v := w.Values()
	if v.Get("callback") != "settings" || v.Get("type") != "hand" {
		t.Fatalf("dispatch fields missing: %v", v)
	}
	if v.Get("hueMax") != "179" || v.Get("satMax") != "255" || v.Get("erosions") != "0" {
		t.Fatalf("numeric fields wrong: %v", v)
	}
	if _, ok := DefaultRecord("ball").ToWire("setBallSettings", "").Values()["type"]; ok {
		t.Fatalf("empty type must be omitted")
	}
}
