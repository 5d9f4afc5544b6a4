package settings

import (
	"fmt"
	"strconv"
	"strings"
)

// Separators used by the range controls: the hue control encodes its pair with ';',
// the linear sat/val controls with ','.
const (
	SepHue    = ';'
	SepLinear = ','
)

// FormatRange encodes r as "min<sep>max".
func FormatRange(r Range, sep rune) string {
	return strconv.Itoa(r.Min) + string(sep) + strconv.Itoa(r.Max)
}

// ParseRange decodes "min<sep>max". Surrounding whitespace is ignored.
// Min > Max is returned unchanged.
func ParseRange(s string, sep rune) (Range, error) {
	lo, hi, ok := strings.Cut(strings.TrimSpace(s), string(sep))
	if !ok {
		return Range{}, fmt.Errorf("range %q: missing %q separator", s, sep)
	}
	var r Range
	var err error
	if r.Min, err = strconv.Atoi(strings.TrimSpace(lo)); err != nil {
		return Range{}, fmt.Errorf("range %q: min: %w", s, ErrNotNumeric)
	}
	if r.Max, err = strconv.Atoi(strings.TrimSpace(hi)); err != nil {
		return Range{}, fmt.Errorf("range %q: max: %w", s, ErrNotNumeric)
	}
	return r, nil
}
