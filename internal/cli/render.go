package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/aymanbagabas/go-osc52/v2"
	"github.com/spf13/cobra"

	"github.com/matzehuels/radialtext/pkg/blob"
	rtio "github.com/matzehuels/radialtext/pkg/io"
	"github.com/matzehuels/radialtext/pkg/radial"
	"github.com/matzehuels/radialtext/pkg/render/export"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	scene   sceneFlags
	format  string // png, jpg, jpeg or webp
	quality string // (0, 100], jpeg and webp only
	output  string // output file, "-" for stdout
	copy    bool   // write a data URL to the clipboard instead of a file
}

// renderCommand creates the render command for exporting images.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [file|-]",
		Short: "Export radial text as a PNG, JPEG or WEBP image",
		Long: `Export radial text as an image.

Text lines are read from a file, from stdin with "-", or from --text. The
image is written to RadialText_<unix millis>.<ext> unless --output is given.
With --copy the image is copied to the clipboard as a Base64 data URL and
printed to stdout.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.applyConfig(cmd, args); err != nil {
				return err
			}
			cfg, err := opts.scene.normalize(cmd, args)
			if err != nil {
				return err
			}
			return runRender(cmd.Context(), cfg, &opts, cmd.OutOrStdout())
		},
	}

	opts.scene.register(cmd)
	cmd.Flags().StringVarP(&opts.format, "format", "f", string(export.PNG), "image format: png, jpg, webp")
	cmd.Flags().StringVarP(&opts.quality, "quality", "q", "", "image quality 1-100 for jpg and webp (default 100)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file, - for stdout")
	cmd.Flags().BoolVarP(&opts.copy, "copy", "c", false, "copy a Base64 data URL to the clipboard")

	return cmd
}

// exportQuality applies the form default: unset, unparseable and zero
// qualities mean defaultQuality.
func exportQuality(s string) *float64 {
	v, ok := radial.Number(s).Float()
	if !ok || v == 0 {
		v = defaultQuality
	}
	return &v
}

// runRender exports cfg. Images for the Stdout path go to stdout.
func runRender(ctx context.Context, cfg radial.Config, opts *renderOpts, stdout io.Writer) error {
	logger := loggerFromContext(ctx)
	store := blob.NewMemoryStore()
	defer store.Close()

	exp := export.New(store, export.WithLogger(logger))
	req := export.Request{
		Scene:   radial.Build(cfg),
		Kind:    export.TransientURL,
		Format:  export.ParseFormat(opts.format),
		Quality: exportQuality(opts.quality),
	}
	if opts.copy {
		req.Kind = export.EmbeddedURL
	}
	if opts.quality != "" && export.NormalizeQuality(req.Format, req.Quality) == nil {
		printWarning("--quality is ignored for %s", req.Format)
	}

	prog := newProgress(logger)
	spinner := newSpinner(ctx, "Processing image...")
	restore := trackExport(spinner, logger)
	spinner.Start()
	res, err := exp.Export(ctx, req)
	spinner.Stop()
	restore()
	if spinner.Cancelled() {
		return ctx.Err()
	}
	if err != nil {
		return err
	}
	defer exp.Tracker().Release(ctx)

	if opts.copy {
		return copyDataURL(res, prog)
	}

	path := opts.output
	if path == rtio.Stdout {
		return rtio.WriteResult(ctx, stdout, res, store)
	}
	if path == "" {
		path = rtio.DownloadName(res.Format, time.Now())
	}
	if err := rtio.ExportResult(ctx, path, res, store); err != nil {
		return err
	}
	prog.done("Exported " + path)
	printSuccess("Rendered %s", res.MIMEType)
	printFile(path)
	printStats(len(cfg.Lines), radial.FormatDimensions(res.Width, res.Height))
	return nil
}

// copyDataURL prints the data URL and sends it to the terminal clipboard
// with an OSC 52 sequence on stderr.
func copyDataURL(res *export.Result, prog *progress) error {
	fmt.Println(res.URL)
	if _, err := osc52.New(res.URL).WriteTo(os.Stderr); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	prog.done("Base64-encoded data has been copied to the clipboard.")
	return nil
}
