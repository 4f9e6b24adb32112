package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/enhoshen/dvrsplice/internal/domain/chapter"
	"github.com/enhoshen/dvrsplice/internal/domain/sequence"
	"github.com/enhoshen/dvrsplice/internal/domain/timecode"
	"github.com/enhoshen/dvrsplice/internal/ports"
	"github.com/enhoshen/dvrsplice/internal/script"
)

type Deps struct {
	Prober ports.MediaProber
	Log    zerolog.Logger
}

type Usecase struct{ d Deps }

func New(d Deps) Usecase { return Usecase{d: d} }

// RelocateMode selects what happens to the source clips once every
// path-independent artifact has been generated.
type RelocateMode int

const (
	RelocateNone RelocateMode = iota
	RelocateMove
	RelocateCopy
)

type Input struct {
	Dir      string
	OutDir   string
	CutStyle timecode.Style
	FFmpeg   string
	Relocate RelocateMode
}

type Result struct {
	Sequence *sequence.Sequence
	Skipped  []string
	// Artifact paths, in the output directory.
	MetadataPath  string
	ChaptersPath  string
	InputListPath string
	ScriptPath    string
}

const (
	metadataFile = "chapter.ffmetadata"
	chaptersFile = "chapters.txt"
	inputsFile   = "inputs.txt"
	scriptFile   = "concat.sh"
)

// Discover lists dir non-recursively and returns the names ending in
// .mp4, lexically ordered. The suffix match is case-sensitive.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasSuffix(e.Name(), ".mp4") {
			names = append(names, e.Name())
		}
	}
	// os.ReadDir sorts by filename; that lexical order is the final
	// sequence order.
	return names, nil
}

// parseClip probes one file and parses its name. A grammar miss comes
// back as *chapter.NoMatchError; a probe failure aborts the batch.
func (u Usecase) parseClip(ctx context.Context, path string) (*sequence.ClipRecord, error) {
	report, err := u.d.Prober.Probe(ctx, path)
	if err != nil {
		return nil, err
	}
	id, err := chapter.Parse(filepath.Base(path))
	if err != nil {
		return nil, err
	}
	return &sequence.ClipRecord{
		Path:    path,
		Report:  report,
		Chapter: chapter.New(id, report.DurationSec),
	}, nil
}

// Run discovers clips, assembles the sequence, and writes every output
// artifact into in.OutDir. Relocation, when requested, happens after the
// path-independent artifacts are written; the input list is rendered
// from the post-relocation paths.
func (u Usecase) Run(ctx context.Context, in Input) (Result, error) {
	names, err := Discover(in.Dir)
	if err != nil {
		return Result{}, err
	}

	var clips []*sequence.ClipRecord
	var skipped []string
	for _, name := range names {
		rec, err := u.parseClip(ctx, filepath.Join(in.Dir, name))
		if err != nil {
			var nm *chapter.NoMatchError
			if errors.As(err, &nm) {
				u.d.Log.Warn().Str("file", name).Msg("filename matches no pattern, skipping")
				skipped = append(skipped, name)
				continue
			}
			return Result{}, fmt.Errorf("probe %s: %w", name, err)
		}
		clips = append(clips, rec)
	}

	seq := sequence.New(clips)
	if len(clips) == 0 {
		u.d.Log.Warn().Str("dir", in.Dir).Msg("no clips matched, writing empty artifacts")
	}

	if err := os.MkdirAll(in.OutDir, 0o755); err != nil {
		return Result{}, err
	}

	res := Result{
		Sequence:      seq,
		Skipped:       skipped,
		MetadataPath:  filepath.Join(in.OutDir, metadataFile),
		ChaptersPath:  filepath.Join(in.OutDir, chaptersFile),
		InputListPath: filepath.Join(in.OutDir, inputsFile),
		ScriptPath:    filepath.Join(in.OutDir, scriptFile),
	}

	if err := os.WriteFile(res.MetadataPath, []byte(seq.FFMetadata(in.CutStyle)), 0o644); err != nil {
		return Result{}, err
	}
	if err := os.WriteFile(res.ChaptersPath, []byte(seq.ChapterText(in.CutStyle)), 0o644); err != nil {
		return Result{}, err
	}

	if in.Relocate != RelocateNone {
		if err := u.relocate(seq, in.OutDir, in.Relocate); err != nil {
			return Result{}, err
		}
	}
	if err := os.WriteFile(res.InputListPath, []byte(seq.InputList()), 0o644); err != nil {
		return Result{}, err
	}

	sh, err := script.Render(script.Data{
		FFmpeg:    in.FFmpeg,
		InputList: inputsFile,
		Metadata:  metadataFile,
		Output:    outputName(seq),
	})
	if err != nil {
		return Result{}, err
	}
	if err := os.WriteFile(res.ScriptPath, []byte(sh), 0o755); err != nil {
		return Result{}, err
	}
	return res, nil
}

func (u Usecase) relocate(seq *sequence.Sequence, outDir string, mode RelocateMode) error {
	for _, c := range seq.Clips {
		dst := filepath.Join(outDir, filepath.Base(c.Path))
		switch mode {
		case RelocateMove:
			if err := os.Rename(c.Path, dst); err != nil {
				return fmt.Errorf("move %s: %w", c.Path, err)
			}
		case RelocateCopy:
			if err := copyFile(c.Path, dst); err != nil {
				return fmt.Errorf("copy %s: %w", c.Path, err)
			}
		}
		u.d.Log.Debug().Str("from", c.Path).Str("to", dst).Msg("relocated clip")
		c.Relocate(dst)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// outputName derives the concatenated video's filename from the
// sequence title; an empty sequence falls back to a placeholder.
func outputName(seq *sequence.Sequence) string {
	title := seq.Title()
	if title == "" {
		return "output.mp4"
	}
	return title + ".mp4"
}
