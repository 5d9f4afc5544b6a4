package settings

import "fmt"

// Range is an inclusive (min, max) threshold pair for one HSV channel.
// Min <= Max is expected but not enforced; values are forwarded to the backend as-is.
type Range struct {
	Min int
	Max int
}

func (r Range) String() string { return fmt.Sprintf("%d-%d", r.Min, r.Max) }

// Record is one named threshold parameter set (ball, bg, hand, ...).
type Record struct {
	Name      string
	Hue       Range
	Sat       Range
	Val       Range
	Erosions  int
	Dilations int
}

// Channel bounds. Hue follows the OpenCV convention but shares the range type.
const (
	HueMax     = 179
	ChannelMax = 255
)

// DefaultRecord returns the values a record holds before its first successful fetch.
func DefaultRecord(name string) Record {
	return Record{
		Name: name,
		Hue:  Range{Min: 0, Max: HueMax},
		Sat:  Range{Min: 0, Max: ChannelMax},
		Val:  Range{Min: 0, Max: ChannelMax},
	}
}

// WithValues returns r with every threshold field taken from src and r's name kept.
func (r Record) WithValues(src Record) Record {
	src.Name = r.Name
	return src
}
