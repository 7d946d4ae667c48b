// Package scene provides the in-memory vector scene used by radialtext.
//
// A scene is a tree of [Element] values mirroring the SVG document that is
// previewed and exported. Elements keep their attributes in document order
// and carry inline CSS declarations in a separate [Style] so that layout code
// can read and rewrite individual properties the way a browser would.
//
// # Serialization
//
// [Marshal] writes a tree as compact SVG text and [Parse] reads it back:
//
//	root := scene.New("svg").SetAttr("class", "canvas")
//	var buf bytes.Buffer
//	if err := scene.Marshal(&buf, root); err != nil {
//	    return err
//	}
//	copy, err := scene.Parse(&buf)
//
// # Transforms and Colors
//
// [ParseTransform] understands both SVG transform attributes
// ("translate(10,20) scale(0.5)") and CSS transform declarations with units
// ("rotate(90deg) translate(40px,0)"). [ParseColor] resolves hex, rgb(),
// hsl() and named colors.
package scene
