package ports

import (
	"context"

	"github.com/enhoshen/dvrsplice/internal/types"
)

// MediaProber inspects one media file and reports its duration plus the
// raw probe output. A probe failure is fatal for that file and is
// propagated by callers.
type MediaProber interface {
	Probe(ctx context.Context, path string) (types.ProbeReport, error)
}
