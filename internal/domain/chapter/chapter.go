// Package chapter turns recorded-video filenames into structured chapter
// metadata. The recorder's filename convention changed over time, so
// parsing is an ordered chain of all-or-nothing patterns; the first one
// that fully matches wins.
package chapter

import (
	"fmt"
	"regexp"

	"github.com/enhoshen/dvrsplice/internal/domain/timecode"
)

// Identity is the part of a chapter parsed from the filename alone.
type Identity struct {
	Name  string
	Date  string // YYYY.MM.DD
	Time  string // HH.MM.SS
	Index string // numeric, empty for the legacy convention
	Cut   *timecode.CutWindow
}

// Chapter is one clip's identity plus its probed length.
type Chapter struct {
	Identity
	Length timecode.Duration
}

// New builds a Chapter from a parsed identity and a probed duration in
// seconds.
func New(id Identity, durationSec float64) Chapter {
	return Chapter{Identity: id, Length: timecode.FromSeconds(durationSec)}
}

// Title renders the chapter title line used in metadata blocks:
// "<date>-<time>" plus the cut window when one is present.
func (c Chapter) Title(style timecode.Style) string {
	t := c.Date + "-" + c.Time
	if c.Cut != nil {
		t += " " + c.Cut.Format(style)
	}
	return t
}

// NoMatchError reports a filename that no registered pattern accepts.
// It is recoverable: the caller skips the file and continues the batch.
type NoMatchError struct {
	Filename string
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("filename %q matches no registered pattern", e.Filename)
}

// Pattern is one filename convention. Parse is all-or-nothing: it either
// returns a complete identity or reports no match.
type Pattern struct {
	Name  string
	Parse func(filename string) (Identity, bool)
}

// Registry holds the known conventions in trial order, newest first.
var Registry = []Pattern{
	{Name: "dvr", Parse: parseDVR},
	{Name: "legacy", Parse: parseLegacy},
}

// Parse runs the filename (no directory part) through the registry and
// returns the first full match, or *NoMatchError if every pattern fails.
func Parse(filename string) (Identity, error) {
	for _, p := range Registry {
		if id, ok := p.Parse(filename); ok {
			return id, nil
		}
	}
	return Identity{}, &NoMatchError{Filename: filename}
}

// Current convention:
//
//	<name> <YYYY.MM.DD> - <HH.MM.SS>.<index>.DVR[.mp4]<trailing>
//
// The name capture is greedy, mirroring the recorder's own splitting.
// A non-empty trailing segment must be a lossless-cut suffix or the
// whole pattern fails.
var dvrRE = regexp.MustCompile(
	`^(.*) (\d{4}\.\d{2}\.\d{2}) - (\d{2}\.\d{2}\.\d{2})\.(\d+)\.DVR(?:\.mp4)?(.*)$`,
)

func parseDVR(filename string) (Identity, bool) {
	m := dvrRE.FindStringSubmatch(filename)
	if m == nil {
		return Identity{}, false
	}
	id := Identity{Name: m[1], Date: m[2], Time: m[3], Index: m[4]}
	if trailing := m[5]; trailing != "" {
		cut, ok := parseCut(trailing)
		if !ok {
			return Identity{}, false
		}
		id.Cut = cut
	}
	return id, true
}

// Legacy convention, before the recorder added the explicit index and
// the .DVR marker: the time token carries a millisecond field which is
// dropped, and there is no index.
var legacyRE = regexp.MustCompile(
	`^(.*) (\d{4}\.\d{2}\.\d{2}) - (\d{2}\.\d{2}\.\d{2})\.\d{3}\.mp4$`,
)

func parseLegacy(filename string) (Identity, bool) {
	m := legacyRE.FindStringSubmatch(filename)
	if m == nil {
		return Identity{}, false
	}
	// The source this replaces left Cut as an empty string on this path
	// while every other path produced an optional window; absent and
	// empty collapse to the same nil here.
	return Identity{Name: m[1], Date: m[2], Time: m[3]}, true
}

// Lossless-cut suffix appended to an already-complete recording name:
//
//	-<HH.MM.SS.mmm>-<HH.MM.SS.mmm>.mp4
//
// The millisecond field is 3 digits here, unlike the outer time token
// which carries none.
var cutRE = regexp.MustCompile(
	`^-?(\d{2})\.(\d{2})\.(\d{2})\.(\d{3})-(\d{2})\.(\d{2})\.(\d{2})\.(\d{3})(?:\.mp4)?$`,
)

func parseCut(trailing string) (*timecode.CutWindow, bool) {
	m := cutRE.FindStringSubmatch(trailing)
	if m == nil {
		return nil, false
	}
	start, err := timecode.Parse(m[1], m[2], m[3], m[4])
	if err != nil {
		return nil, false
	}
	end, err := timecode.Parse(m[5], m[6], m[7], m[8])
	if err != nil {
		return nil, false
	}
	return &timecode.CutWindow{Start: start, End: end}, true
}
