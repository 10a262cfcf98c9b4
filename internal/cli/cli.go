// Package cli implements the monumentdemo command-line interface.
//
// The demo runs the full pipeline against a dataset and a font, using the
// in-process partitioner and the recording render view, and reports what
// the view ended up holding.
//
// # Commands
//
//   - run: lay out a dataset and prepare its geometry
//   - strategies: list the antialiasing strategies
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The
// charmbracelet/log logger is installed as the monument slog handler, so
// pipeline stage logs share its formatting.
package cli

import (
	"context"
	"io"
	"log/slog"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/gogpu/monument"
)

// NewRootCommand builds the command tree. Log output goes to logOut.
func NewRootCommand(logOut io.Writer) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          "monumentdemo",
		Short:        "Lay out a monument of names as justified glyph geometry",
		Version:      monument.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			logger := newLogger(logOut, level)
			monument.SetLogger(slog.New(logger))
			cmd.SetContext(withLogger(cmd.Context(), logger))
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newRunCmd())
	root.AddCommand(newStrategiesCmd())
	return root
}

// Execute runs the command line in args.
func Execute(ctx context.Context, args []string, out, logOut io.Writer) error {
	root := NewRootCommand(logOut)
	root.SetArgs(args)
	root.SetOut(out)
	root.SetErr(logOut)
	return root.ExecuteContext(ctx)
}
