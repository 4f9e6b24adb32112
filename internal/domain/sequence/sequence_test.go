package sequence

import (
	"strings"
	"testing"

	"github.com/enhoshen/dvrsplice/internal/domain/chapter"
	"github.com/enhoshen/dvrsplice/internal/domain/timecode"
)

func clip(t *testing.T, path string, durationSec float64) *ClipRecord {
	t.Helper()
	id, err := chapter.Parse(strings.TrimPrefix(path, "rec/"))
	if err != nil {
		t.Fatalf("parse %s: %v", path, err)
	}
	return &ClipRecord{Path: path, Chapter: chapter.New(id, durationSec)}
}

func testSequence(t *testing.T) *Sequence {
	t.Helper()
	return New([]*ClipRecord{
		clip(t, "rec/Project Zomboid 2025.07.13 - 02.09.03.696.DVR.mp4", 60),
		clip(t, "rec/Project Zomboid 2025.07.13 - 03.39.22.704.DVR.mp4-00.00.23.029-00.00.31.281.mp4", 30),
		clip(t, "rec/Project Zomboid 2025.07.14 - 01.05.00.100.DVR.mp4", 15),
	})
}

func TestStartOffsets(t *testing.T) {
	s := testSequence(t)
	got := s.StartOffsets()
	want := []int{0, 60000, 90000, 105000}
	if len(got) != len(want) {
		t.Fatalf("offsets = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("offsets = %v, want %v", got, want)
		}
	}
}

func TestTitle(t *testing.T) {
	s := testSequence(t)
	want := "Project Zomboid 2025.07.13-02.09.03 2025.07.14-01.05.00"
	if got := s.Title(); got != want {
		t.Fatalf("title = %q, want %q", got, want)
	}
}

func TestTitle_Empty(t *testing.T) {
	s := New(nil)
	if got := s.Title(); got != "" {
		t.Fatalf("empty title = %q, want empty", got)
	}
}

func TestFFMetadata(t *testing.T) {
	s := testSequence(t)
	got := s.FFMetadata(timecode.StyleMinSec)

	if !strings.HasPrefix(got, ";FFMETADATA1\ntitle=Project Zomboid 2025.07.13-02.09.03 2025.07.14-01.05.00\n") {
		t.Fatalf("bad header:\n%s", got)
	}
	wantBlock := strings.Join([]string{
		"[CHAPTER]",
		"TIMEBASE=1/1000",
		"START=60000",
		"END=90000",
		"title=2025.07.13-03.39.22 00:23-00:31",
		"index=704",
	}, "\n")
	if !strings.Contains(got, wantBlock) {
		t.Fatalf("missing chapter block %q in:\n%s", wantBlock, got)
	}
	if strings.Count(got, "[CHAPTER]") != 3 {
		t.Fatalf("expected 3 chapter blocks:\n%s", got)
	}
	// END of each chapter is the START of the next; total closes the file.
	if !strings.Contains(got, "START=90000\nEND=105000\n") {
		t.Fatalf("bad final block:\n%s", got)
	}
}

func TestFFMetadata_Empty(t *testing.T) {
	got := New(nil).FFMetadata(timecode.StyleMinSec)
	if got != ";FFMETADATA1\ntitle=\n" {
		t.Fatalf("empty metadata = %q", got)
	}
}

func TestChapterText(t *testing.T) {
	s := testSequence(t)
	got := s.ChapterText(timecode.StyleMinSec)
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected title + 3 lines, got %d:\n%s", len(lines), got)
	}
	if lines[1] != "00:00:00 2025.07.13-02.09.03" {
		t.Fatalf("line 1 = %q", lines[1])
	}
	if lines[2] != "00:01:00 2025.07.13-03.39.22 00:23-00:31" {
		t.Fatalf("line 2 = %q", lines[2])
	}
	if lines[3] != "00:01:30 2025.07.14-01.05.00" {
		t.Fatalf("line 3 = %q", lines[3])
	}
}

func TestInputList_FollowsRelocation(t *testing.T) {
	s := testSequence(t)
	before := s.InputList()
	if !strings.HasPrefix(before, "file 'Project Zomboid 2025.07.13 - 02.09.03.696.DVR.mp4'\n") {
		t.Fatalf("input list:\n%s", before)
	}

	s.Clips[0].Relocate("proj/renamed.mp4")
	if s.Clips[0].State != StateRelocated {
		t.Fatalf("expected relocated state")
	}
	after := s.InputList()
	if !strings.HasPrefix(after, "file 'renamed.mp4'\n") {
		t.Fatalf("input list after relocate:\n%s", after)
	}
}
