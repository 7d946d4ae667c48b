package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/radialtext/pkg/errors"
	rtio "github.com/matzehuels/radialtext/pkg/io"
	"github.com/matzehuels/radialtext/pkg/radial"
)

// sceneFlags binds the radial text settings to command flags.
type sceneFlags struct {
	settings  radial.Settings
	keepEmpty bool
}

func (f *sceneFlags) register(cmd *cobra.Command) {
	s := &f.settings
	fl := cmd.Flags()
	fl.StringVar(&s.TextLines, "text", "", "text lines (instead of a file), separated by newlines")
	fl.BoolVar(&f.keepEmpty, "keep-empty", false, "keep whitespace-only lines")
	fl.StringVar((*string)(&s.FontSize), "font-size", "", "font size in px (default 16)")
	fl.StringVar(&s.FontWeight, "font-weight", "", "font weight: lighter, normal, bold, bolder")
	fl.StringVar(&s.FontStyle, "font-style", "", "font style: normal, italic")
	fl.StringVar((*string)(&s.LineHeight), "line-height", "", "line height multiplier (default 1)")
	fl.StringVar((*string)(&s.CentricCircleRadius), "radius", "", "centric circle radius in px (default: lines just touch)")
	fl.StringVar((*string)(&s.Rotation), "rotation", "", "rotation in degrees")
	fl.StringVar(&s.Color, "color", "", "text color (default: spectrum)")
	fl.StringVar(&s.BgColor, "bg-color", "", "background color (default: transparent)")
	fl.BoolVar(&s.IsZoomedIn, "zoomed-in", false, "show the preview at natural size")
}

// resolve returns the settings with text read from args[0] (a file, or
// "-" for stdin) unless --text was given.
func (f *sceneFlags) resolve(cmd *cobra.Command, args []string) (radial.Settings, error) {
	s := f.settings
	ignore := !f.keepEmpty
	s.IgnoreEmpty = &ignore

	switch {
	case len(args) > 0 && cmd.Flags().Changed("text"):
		return s, errors.New(errors.ErrCodeInvalidInput, "use either a file or --text, not both")
	case len(args) > 0:
		text, err := rtio.ImportText(args[0])
		if err != nil {
			return s, err
		}
		s.TextLines = text
	}
	return s, s.Validate()
}

// normalize resolves the settings and refuses scenes without lines.
func (f *sceneFlags) normalize(cmd *cobra.Command, args []string) (radial.Config, error) {
	s, err := f.resolve(cmd, args)
	if err != nil {
		return radial.Config{}, err
	}
	cfg := radial.Normalize(s)
	if len(cfg.Lines) == 0 {
		return cfg, errors.New(errors.ErrCodeInvalidInput, "no text lines; pass a file, - for stdin, or --text")
	}
	return cfg, nil
}
