package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/enhoshen/dvrsplice/internal/logging"
	"github.com/enhoshen/dvrsplice/internal/pipeline"
)

func run(cmd *cobra.Command, dir string) error {
	outDir, _ := cmd.Flags().GetString("out")
	cutStyle, _ := cmd.Flags().GetString("cut-style")
	move, _ := cmd.Flags().GetBool("move")
	cp, _ := cmd.Flags().GetBool("copy")
	verbose, _ := cmd.Flags().GetBool("verbose")

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := pipeline.Config{
		Dir:      absDir,
		OutDir:   outDir,
		CutStyle: cutStyle,
		Move:     move,
		Copy:     cp,

		FFmpegPath:  getenvDefault("DVRSPLICE_FFMPEG", "ffmpeg"),
		FFprobePath: getenvDefault("DVRSPLICE_FFPROBE", "ffprobe"),

		Log: logging.New(verbose),
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return pipeline.Run(ctx, cfg)
}

func getenvDefault(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
