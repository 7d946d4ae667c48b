package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/radialtext/pkg/errors"
	"github.com/matzehuels/radialtext/pkg/radial"
	"github.com/matzehuels/radialtext/pkg/render/raster"
	"github.com/matzehuels/radialtext/pkg/scene"
)

const (
	defaultWidth  = 800 // default preview viewport width
	defaultHeight = 600 // default preview viewport height
)

// previewOpts holds the command-line flags for the preview command.
type previewOpts struct {
	scene  sceneFlags
	width  float64
	height float64
	output string
}

// previewCommand creates the preview command that writes the live SVG.
func (c *CLI) previewCommand() *cobra.Command {
	opts := previewOpts{width: defaultWidth, height: defaultHeight}

	cmd := &cobra.Command{
		Use:   "preview [file|-]",
		Short: "Write the fitted preview SVG and show the export size",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.applyConfig(cmd, args); err != nil {
				return err
			}
			cfg, err := opts.scene.normalize(cmd, args)
			if err != nil {
				return err
			}
			return runPreview(cmd.Context(), cfg, &opts)
		},
	}

	opts.scene.register(cmd)
	cmd.Flags().Float64Var(&opts.width, "width", opts.width, "viewport width")
	cmd.Flags().Float64Var(&opts.height, "height", opts.height, "viewport height")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output SVG file (default stdout)")

	return cmd
}

// preview is a fitted live scene with its export estimate.
type preview struct {
	svg    string
	lines  int
	width  int
	height int
}

func buildPreview(cfg radial.Config, vp radial.Viewport) (*preview, error) {
	if vp.Width <= 0 || vp.Height <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "invalid viewport %vx%v", vp.Width, vp.Height)
	}
	live := radial.Build(cfg)
	if err := radial.Fit(live, cfg, vp, raster.TextMeasurer); err != nil {
		return nil, err
	}
	w, h, err := radial.Estimate(live, raster.TextMeasurer)
	if err != nil {
		return nil, err
	}
	svg, err := scene.MarshalString(live)
	if err != nil {
		return nil, err
	}
	return &preview{svg: svg, lines: radial.LineCount(live), width: w, height: h}, nil
}

func runPreview(ctx context.Context, cfg radial.Config, opts *previewOpts) error {
	logger := loggerFromContext(ctx)
	p, err := buildPreview(cfg, radial.Viewport{Width: opts.width, Height: opts.height})
	if err != nil {
		return err
	}
	dims := radial.FormatDimensions(p.width, p.height)

	if opts.output == "" {
		fmt.Println(p.svg)
		logger.Info("preview", "lines", p.lines, "dimensions", dims)
		return nil
	}
	if err := os.WriteFile(opts.output, []byte(p.svg), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	printSuccess("Preview written")
	printFile(opts.output)
	printKeyValue("Lines", strconv.Itoa(p.lines))
	printKeyValue("Dimensions", dims)
	printNextStep("Export it", "radialtext render --format png <file>")
	return nil
}
