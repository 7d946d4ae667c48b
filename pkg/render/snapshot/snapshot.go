// Package snapshot prepares a live scene for export.
//
// A snapshot is a detached deep copy of the scene at its natural geometry:
// the preview transform on the text group is removed, the preview-only
// sizing styles on the root are cleared, and presentation properties the
// host resolved by inheritance are written onto the root so the copy renders
// the same once serialized on its own.
package snapshot

import (
	"github.com/matzehuels/radialtext/pkg/radial"
	"github.com/matzehuels/radialtext/pkg/scene"
)

// Inherited holds presentation properties resolved by the host for the
// live scene's root. Empty fields are not written.
type Inherited struct {
	FontFamily string
}

// previewStyles are root styles used only to place the preview.
var previewStyles = []string{"width", "height", "margin"}

// Build returns the export snapshot of live. live itself is not modified.
// A nil scene yields nil.
func Build(live *scene.Element, inherited Inherited) *scene.Element {
	if live == nil {
		return nil
	}
	snap := live.Clone()

	if group := snap.Find(radial.GroupClass); group != nil {
		group.RemoveAttr("transform")
	}
	for _, prop := range previewStyles {
		snap.Style.Remove(prop)
	}
	if inherited.FontFamily != "" {
		snap.Style.Set("font-family", inherited.FontFamily)
	}
	return snap
}
