package types

import "encoding/json"

// ProbeReport is what the media prober returns for one file. Raw is the
// prober's full JSON output, kept opaque and passed through to the
// concat tooling untouched; only the duration is interpreted.
type ProbeReport struct {
	DurationSec float64
	Raw         json.RawMessage
}
