// Package radial lays text lines out around a circle.
//
// The package turns loosely typed form settings into a normalized [Config],
// builds the live scene for it and fits that scene into a preview viewport:
//
//	cfg := radial.Normalize(settings)
//	root := radial.Build(cfg)
//	if err := radial.Fit(root, cfg, radial.Viewport{Width: 800, Height: 600}, measurer); err != nil {
//	    return err
//	}
//	w, h, err := radial.Estimate(root, measurer)
//
// Line i is rotated by i·CentralAngle+Rotation degrees and pushed out by the
// circle radius. With no explicit radius the circle is just large enough for
// neighbouring lines to touch at the center (see [AutoRadius]).
package radial
