// Package sequence aggregates parsed clips into the timeline of one
// concatenated output video and renders the artifacts the concat tooling
// consumes.
package sequence

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/enhoshen/dvrsplice/internal/domain/chapter"
	"github.com/enhoshen/dvrsplice/internal/domain/timecode"
	"github.com/enhoshen/dvrsplice/internal/types"
)

// State tracks whether a clip still sits where it was discovered.
type State int

const (
	StateRecorded State = iota
	StateRelocated
)

// ClipRecord is one source file: its current path, the opaque probe
// report, and the chapter parsed from its name.
type ClipRecord struct {
	Path    string
	State   State
	Report  types.ProbeReport
	Chapter chapter.Chapter
}

// Relocate records that the file was moved or copied to newPath.
// Path-dependent artifacts must be regenerated after this transition.
func (r *ClipRecord) Relocate(newPath string) {
	r.Path = newPath
	r.State = StateRelocated
}

// Sequence is an ordered set of clips destined for one concatenated
// video. Order is fixed at construction; callers sort beforehand.
type Sequence struct {
	Clips []*ClipRecord
}

func New(clips []*ClipRecord) *Sequence {
	return &Sequence{Clips: clips}
}

// StartOffsets returns n+1 cumulative millisecond offsets: offsets[i] is
// where clip i starts in the concatenated timeline, offsets[n] is the
// total length.
func (s *Sequence) StartOffsets() []int {
	offsets := make([]int, len(s.Clips)+1)
	for i, c := range s.Clips {
		offsets[i+1] = offsets[i] + c.Chapter.Length.Milliseconds()
	}
	return offsets
}

// Title derives the sequence title from the first and last clip only.
// An empty sequence yields "".
func (s *Sequence) Title() string {
	if len(s.Clips) == 0 {
		return ""
	}
	first := s.Clips[0].Chapter
	last := s.Clips[len(s.Clips)-1].Chapter
	return fmt.Sprintf("%s %s-%s %s-%s",
		first.Name, first.Date, first.Time, last.Date, last.Time)
}

// FFMetadata renders the ffmetadata chapter file: the ;FFMETADATA1
// header, the sequence title, then one [CHAPTER] block per clip. END of
// one chapter equals START of the next by construction of the prefix
// sum.
func (s *Sequence) FFMetadata(cutStyle timecode.Style) string {
	var b strings.Builder
	b.WriteString(";FFMETADATA1\n")
	fmt.Fprintf(&b, "title=%s\n", s.Title())
	offsets := s.StartOffsets()
	for i, c := range s.Clips {
		b.WriteString("[CHAPTER]\n")
		b.WriteString("TIMEBASE=1/1000\n")
		fmt.Fprintf(&b, "START=%d\n", offsets[i])
		fmt.Fprintf(&b, "END=%d\n", offsets[i+1])
		fmt.Fprintf(&b, "title=%s\n", c.Chapter.Title(cutStyle))
		if c.Chapter.Index != "" {
			fmt.Fprintf(&b, "index=%s\n", c.Chapter.Index)
		}
	}
	return b.String()
}

// ChapterText renders the human-readable timestamp list: the title line,
// then one "<hh:mm:ss> <chapter title>" line per clip. Each displayed
// timestamp is re-derived from the millisecond offset through the float
// seconds conversion; that repetition is the compatible behavior, not a
// shortcut to optimize away.
func (s *Sequence) ChapterText(cutStyle timecode.Style) string {
	var b strings.Builder
	b.WriteString(s.Title() + "\n")
	offsets := s.StartOffsets()
	for i, c := range s.Clips {
		at := timecode.FromSeconds(float64(offsets[i]) / 1000.0)
		fmt.Fprintf(&b, "%s %s\n", at.Format(timecode.StyleYouTube), c.Chapter.Title(cutStyle))
	}
	return b.String()
}

// InputList renders the concat demuxer file list from the clips' current
// paths, one "file '<basename>'" line per clip in sequence order.
func (s *Sequence) InputList() string {
	var b strings.Builder
	for _, c := range s.Clips {
		fmt.Fprintf(&b, "file '%s'\n", filepath.Base(c.Path))
	}
	return b.String()
}
