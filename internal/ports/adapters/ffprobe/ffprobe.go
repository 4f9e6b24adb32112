package ffprobe

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"

	"github.com/enhoshen/dvrsplice/internal/types"
)

type Adapter struct {
	ffprobe string
}

func New(ffprobePath string) *Adapter {
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	return &Adapter{ffprobe: ffprobePath}
}

// Probe runs ffprobe on one file and returns its duration together with
// the full JSON report. The report stays opaque; downstream output only
// forwards it.
func (a *Adapter) Probe(ctx context.Context, path string) (types.ProbeReport, error) {
	cmd := exec.CommandContext(ctx, a.ffprobe,
		"-v", "error",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	)
	b, err := cmd.Output()
	if err != nil {
		return types.ProbeReport{}, fmt.Errorf("ffprobe %s: %w", path, err)
	}

	var report struct {
		Format struct {
			Duration string `json:"duration"`
		} `json:"format"`
	}
	if err := json.Unmarshal(b, &report); err != nil {
		return types.ProbeReport{}, fmt.Errorf("parse ffprobe output for %s: %w", path, err)
	}
	sec, err := strconv.ParseFloat(report.Format.Duration, 64)
	if err != nil {
		return types.ProbeReport{}, fmt.Errorf("parse duration %q: %w", report.Format.Duration, err)
	}
	return types.ProbeReport{DurationSec: sec, Raw: json.RawMessage(b)}, nil
}
