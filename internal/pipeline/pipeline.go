package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/rs/zerolog"

	"github.com/enhoshen/dvrsplice/internal/domain/timecode"
	"github.com/enhoshen/dvrsplice/internal/ports"
	"github.com/enhoshen/dvrsplice/internal/ports/adapters/ffprobe"
	"github.com/enhoshen/dvrsplice/internal/usecase"
)

type Config struct {
	// Dir is the directory holding the recorded clips.
	Dir string
	// OutDir is the root under which one project directory is created
	// per run.
	OutDir string

	CutStyle string
	Move     bool
	Copy     bool

	FFmpegPath  string
	FFprobePath string

	Log zerolog.Logger
}

func (c Config) Validate() error {
	if c.Dir == "" {
		return errors.New("clip directory is empty")
	}
	if _, err := os.Stat(c.Dir); err != nil {
		return fmt.Errorf("stat clip directory: %w", err)
	}
	if c.Move && c.Copy {
		return errors.New("move and copy are mutually exclusive")
	}
	if _, err := timecode.ParseStyle(c.CutStyle); err != nil {
		return err
	}
	return nil
}

// Run wires the ffprobe adapter into the usecase and executes one
// project run, creating a fresh project directory under cfg.OutDir.
func Run(ctx context.Context, cfg Config) error {
	style, err := timecode.ParseStyle(cfg.CutStyle)
	if err != nil {
		return err
	}

	prober := ffprobe.New(cfg.FFprobePath)
	uc := usecase.New(usecase.Deps{Prober: prober, Log: cfg.Log})

	outRoot := cfg.OutDir
	if outRoot == "" {
		outRoot = "out"
	}
	runDir := buildRunOutDir(outRoot, cfg.Dir, time.Now().UTC())
	cfg.Log.Info().Str("dir", cfg.Dir).Str("project", runDir).Msg("starting project run")

	mode := usecase.RelocateNone
	switch {
	case cfg.Move:
		mode = usecase.RelocateMove
	case cfg.Copy:
		mode = usecase.RelocateCopy
	}

	res, err := uc.Run(ctx, usecase.Input{
		Dir:      cfg.Dir,
		OutDir:   runDir,
		CutStyle: style,
		FFmpeg:   cfg.FFmpegPath,
		Relocate: mode,
	})
	if err != nil {
		return err
	}

	cfg.Log.Info().
		Int("clips", len(res.Sequence.Clips)).
		Int("skipped", len(res.Skipped)).
		Str("script", res.ScriptPath).
		Msg("project artifacts written")
	return nil
}

// buildRunOutDir places each run in its own directory, named after the
// clip directory and a UTC timestamp.
func buildRunOutDir(outRoot, clipDir string, now time.Time) string {
	name := normalizePathSegment(filepath.Base(clipDir))
	if name == "" {
		name = "project"
	}
	ts := now.UTC().Format("20060102-150405Z")
	return filepath.Join(outRoot, fmt.Sprintf("%s-%s", name, ts))
}

func normalizePathSegment(s string) string {
	var b strings.Builder
	prevDash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
			prevDash = false
		default:
			if !prevDash {
				b.WriteByte('-')
				prevDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

// ensure adapters implement ports
var _ ports.MediaProber = (*ffprobe.Adapter)(nil)
