package timecode

import (
	"fmt"
	"strconv"
)

// Style selects one of the closed set of text renderings for a Duration.
type Style int

const (
	// StyleMinSec renders "mm:ss". Default for cut-window text.
	StyleMinSec Style = iota
	// StyleYouTube renders "hh:mm:ss", the format video-sharing sites
	// accept in chapter description lines.
	StyleYouTube
	// StyleFull renders "hh.mm.ss.msec" with a 4-wide millisecond field,
	// matching the recorder's filename convention.
	StyleFull
)

// ParseStyle maps a flag value to a Style.
func ParseStyle(s string) (Style, error) {
	switch s {
	case "minsec", "":
		return StyleMinSec, nil
	case "youtube":
		return StyleYouTube, nil
	case "full":
		return StyleFull, nil
	}
	return 0, fmt.Errorf("unknown style %q (want full, youtube or minsec)", s)
}

// Duration is a fixed-field elapsed time. Fields are non-negative;
// Msec stays in [0,999] after construction. There is no upper bound
// on Hr.
type Duration struct {
	Hr   int
	Min  int
	Sec  int
	Msec int
}

// New builds a Duration from four field values. A millisecond value of
// 1000 or more is a 4-digit token from the recorder's earlier filename
// convention and is truncated by integer division by 10. The truncation
// is lossy on purpose; downstream offsets depend on it staying exact.
func New(hr, min, sec, msec int) Duration {
	if msec >= 1000 {
		msec /= 10
	}
	return Duration{Hr: hr, Min: min, Sec: sec, Msec: msec}
}

// Parse builds a Duration from four decimal field tokens, applying the
// same 4-digit millisecond shim as New.
func Parse(hr, min, sec, msec string) (Duration, error) {
	fields := [4]int{}
	for i, s := range [4]string{hr, min, sec, msec} {
		n, err := strconv.Atoi(s)
		if err != nil {
			return Duration{}, fmt.Errorf("duration field %q: %w", s, err)
		}
		fields[i] = n
	}
	return New(fields[0], fields[1], fields[2], fields[3]), nil
}

// FromSeconds converts a float seconds value (as reported by ffprobe)
// into a Duration. The fractional part is truncated, not rounded.
// Negative inputs are out of contract.
func FromSeconds(x float64) Duration {
	sec := int(x)
	msec := int((x - float64(sec)) * 1000)
	min := sec / 60
	return Duration{
		Hr:   min / 60,
		Min:  min % 60,
		Sec:  sec % 60,
		Msec: msec,
	}
}

// Milliseconds returns the total length as an integer millisecond count.
func (d Duration) Milliseconds() int {
	return ((d.Hr*3600+d.Min*60+d.Sec)*1000 + d.Msec)
}

// Format renders the Duration in the given style.
func (d Duration) Format(style Style) string {
	switch style {
	case StyleFull:
		return fmt.Sprintf("%02d.%02d.%02d.%04d", d.Hr, d.Min, d.Sec, d.Msec)
	case StyleYouTube:
		return fmt.Sprintf("%02d:%02d:%02d", d.Hr, d.Min, d.Sec)
	default:
		return fmt.Sprintf("%02d:%02d", d.Min, d.Sec)
	}
}

// CutWindow is the trim sub-range a lossless-cut tool encoded in a
// filename. Absence is a nil *CutWindow, never a zero value.
type CutWindow struct {
	Start Duration
	End   Duration
}

// Format renders the window as "<start>-<end>" in the given style.
func (c *CutWindow) Format(style Style) string {
	return c.Start.Format(style) + "-" + c.End.Format(style)
}
