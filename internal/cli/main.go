package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func Main() {
	_ = godotenv.Load() // best-effort: load .env if present

	root := &cobra.Command{
		Use:          "dvrsplice [dir]",
		Short:        "Assemble recorded DVR clips into one chaptered video",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return run(cmd, dir)
		},
	}

	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)
	root.SilenceErrors = true

	root.Flags().String("out", "out", "Output root directory")
	root.Flags().String("cut-style", "minsec", "Cut window text style (full, youtube, minsec)")
	root.Flags().Bool("move", false, "Move source clips into the project directory")
	root.Flags().Bool("copy", false, "Copy source clips into the project directory")
	root.Flags().BoolP("verbose", "v", false, "Verbose output")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
