// Package script renders the shell script that hands the generated
// artifacts to ffmpeg for the actual concatenation and metadata
// injection. The core never invokes ffmpeg itself.
package script

import (
	"fmt"
	"strings"
	"text/template"
)

// Data is the fields fed into the concat script template.
type Data struct {
	FFmpeg    string // ffmpeg executable, defaults to "ffmpeg"
	InputList string // concat demuxer file list
	Metadata  string // ffmetadata chapter file
	Output    string // concatenated output video
}

var concatTmpl = template.Must(template.New("concat").
	Funcs(template.FuncMap{"quote": shellQuote}).
	Parse(`#!/bin/sh
set -e

{{.FFmpeg}} \
	-f concat -safe 0 -i {{quote .InputList}} \
	-i {{quote .Metadata}} \
	-map_metadata 1 \
	-c copy \
	{{quote .Output}}
`))

// Render produces the concat script text.
func Render(d Data) (string, error) {
	if d.FFmpeg == "" {
		d.FFmpeg = "ffmpeg"
	}
	var b strings.Builder
	if err := concatTmpl.Execute(&b, d); err != nil {
		return "", fmt.Errorf("render concat script: %w", err)
	}
	return b.String(), nil
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
