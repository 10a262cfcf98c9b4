package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/gogpu/monument"
	"github.com/gogpu/monument/fetch"
	"github.com/gogpu/monument/partition"
	"github.com/gogpu/monument/pipeline"
	"github.com/gogpu/monument/render"
)

const (
	defaultWidth  = 1280
	defaultHeight = 720
)

// runOpts holds the flags of the run command.
type runOpts struct {
	dataset   string
	font      string
	config    string
	strategy  string
	parser    string
	width     int
	height    int
	tolerance float64
	showLines int
}

func newRunCmd() *cobra.Command {
	opts := runOpts{width: defaultWidth, height: defaultHeight, showLines: 5}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Lay out a dataset and prepare its glyph geometry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.dataset, "dataset", "", "dataset path or URL (required)")
	cmd.Flags().StringVar(&opts.font, "font", "", "font path or URL (required)")
	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "TOML configuration file")
	cmd.Flags().StringVar(&opts.strategy, "aa", "", "antialiasing strategy, overrides the configuration")
	cmd.Flags().StringVar(&opts.parser, "parser", "", "font parser backend, overrides the configuration")
	cmd.Flags().IntVar(&opts.width, "width", opts.width, "viewport width in pixels")
	cmd.Flags().IntVar(&opts.height, "height", opts.height, "viewport height in pixels")
	cmd.Flags().Float64Var(&opts.tolerance, "tolerance", 0, "curve flattening tolerance in pixels")
	cmd.Flags().IntVar(&opts.showLines, "show", opts.showLines, "number of laid out lines to print")
	_ = cmd.MarkFlagRequired("dataset")
	_ = cmd.MarkFlagRequired("font")

	return cmd
}

func loadConfig(opts runOpts) (monument.Config, error) {
	cfg := monument.DefaultConfig()
	if opts.config != "" {
		var err error
		if cfg, err = monument.LoadConfig(opts.config); err != nil {
			return cfg, err
		}
	}
	if opts.strategy != "" {
		cfg.Antialiasing.Strategy = opts.strategy
	}
	if opts.parser != "" {
		cfg.Font.Parser = opts.parser
	}
	return cfg, nil
}

func runPipeline(cmd *cobra.Command, opts runOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	datasetSrc, err := fetch.Open(opts.dataset)
	if err != nil {
		return err
	}
	fontSrc, err := fetch.Open(opts.font)
	if err != nil {
		return err
	}

	view := render.NewRecorder(opts.width, opts.height, render.WithCameraConfig(cfg.Camera))
	p, err := pipeline.New(cfg, pipeline.Deps{
		Dataset:     datasetSrc,
		Font:        fontSrc,
		Partitioner: partition.NewLocal(partition.WithTolerance(opts.tolerance)),
		View:        view,
	})
	if err != nil {
		return err
	}
	defer p.Close()

	prog := newProgress(logger)
	if err := p.Run(ctx); err != nil {
		return err
	}
	prog.done("Pipeline ready")

	return printSummary(cmd.OutOrStdout(), p, view, opts.showLines)
}

func printSummary(w io.Writer, p *pipeline.Pipeline, view *render.Recorder, showLines int) error {
	snap := view.Snapshot()
	lines := p.Lines()
	font := p.Font()

	fmt.Fprintf(w, "run:        %s\n", p.ID())
	fmt.Fprintf(w, "font:       %s (%s, %d units/em)\n", font.Name(), font.Parser(), font.UnitsPerEm())
	fmt.Fprintf(w, "strategy:   %v\n", snap.Strategy)
	fmt.Fprintf(w, "lines:      %d\n", len(lines))
	fmt.Fprintf(w, "paths:      %d\n", snap.Paths)
	fmt.Fprintf(w, "triangles:  %d\n", snap.Triangles)
	fmt.Fprintf(w, "cover:      %d vertices\n", snap.CoverVertices)
	fmt.Fprintf(w, "attributes: %d rows\n", snap.AttributeRows)

	for i, l := range lines {
		if i >= showLines {
			fmt.Fprintf(w, "  ... %d more\n", len(lines)-showLines)
			break
		}
		fmt.Fprintf(w, "  %4d  spacing %-10.1f", l.Index, l.Spacing)
		for _, r := range l.Runs {
			fmt.Fprintf(w, " %s", r.Name)
		}
		fmt.Fprintln(w)
	}
	return nil
}
