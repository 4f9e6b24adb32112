//go:build integration

package itest

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/enhoshen/dvrsplice/internal/domain/timecode"
	"github.com/enhoshen/dvrsplice/internal/logging"
	"github.com/enhoshen/dvrsplice/internal/pipeline"
)

// makeClip builds a short silent mp4 fixture with a DVR-style name.
func makeClip(t *testing.T, dir, name string, seconds int) {
	t.Helper()
	ff := exec.Command("ffmpeg",
		"-y",
		"-f", "lavfi",
		"-i", "color=c=black:s=640x360:d="+strconv.Itoa(seconds),
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		filepath.Join(dir, name),
	)
	if b, err := ff.CombinedOutput(); err != nil {
		t.Fatalf("ffmpeg fixture failed: %v\n%s", err, string(b))
	}
}

func TestE2E(t *testing.T) {
	tmp := t.TempDir()
	rec := filepath.Join(tmp, "rec")
	if err := os.MkdirAll(rec, 0o755); err != nil {
		t.Fatal(err)
	}
	makeClip(t, rec, "Project Zomboid 2025.07.13 - 02.09.03.696.DVR.mp4", 2)
	makeClip(t, rec, "Project Zomboid 2025.07.13 - 03.39.22.704.DVR.mp4", 3)

	out := filepath.Join(tmp, "out")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	cfg := pipeline.Config{
		Dir:      rec,
		OutDir:   out,
		CutStyle: "minsec",
		Log:      logging.New(true),
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("config: %v", err)
	}
	if err := pipeline.Run(ctx, cfg); err != nil {
		t.Fatalf("pipeline failed: %v", err)
	}

	runs, err := os.ReadDir(out)
	if err != nil || len(runs) != 1 {
		t.Fatalf("expected one run dir, got %v (err=%v)", runs, err)
	}
	runDir := filepath.Join(out, runs[0].Name())
	for _, name := range []string{"chapter.ffmetadata", "chapters.txt", "inputs.txt", "concat.sh"} {
		if _, err := os.Stat(filepath.Join(runDir, name)); err != nil {
			t.Fatalf("missing artifact %s: %v", name, err)
		}
	}

	meta, err := os.ReadFile(filepath.Join(runDir, "chapter.ffmetadata"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(meta), ";FFMETADATA1\n") {
		t.Fatalf("metadata header:\n%s", meta)
	}
	if !strings.Contains(string(meta), "title=2025.07.13-02.09.03") {
		t.Fatalf("metadata chapters:\n%s", meta)
	}

	// The second chapter starts where the first clip's probed length ends.
	first := filepath.Join(rec, "Project Zomboid 2025.07.13 - 02.09.03.696.DVR.mp4")
	sec, err := probeDurationSeconds(first)
	if err != nil {
		t.Fatal(err)
	}
	wantStart := "START=" + strconv.Itoa(timecode.FromSeconds(sec).Milliseconds())
	if !strings.Contains(string(meta), wantStart) {
		t.Fatalf("expected %s in metadata:\n%s", wantStart, meta)
	}
}
