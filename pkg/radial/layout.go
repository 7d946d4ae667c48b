package radial

import (
	"fmt"
	"math"

	"github.com/matzehuels/radialtext/pkg/scene"
)

// CentralAngle returns the angle in degrees between neighbouring lines.
// A single line (or none) is not rotated.
func CentralAngle(n int) float64 {
	if n <= 1 {
		return 0
	}
	return 360 / float64(n)
}

// AutoRadius returns the circle radius at which lines of the given height
// just touch at the center: fontSize·lineHeight/2/tan(angle/2).
func AutoRadius(fontSize, lineHeight, angle float64) float64 {
	if angle == 0 {
		return 0
	}
	return fontSize * lineHeight / 2 / math.Tan(angle*math.Pi/180/2)
}

// SpectrumColor returns the automatic fill of line i.
func SpectrumColor(i int, angle float64) string {
	hue := float64(i) * angle
	if math.IsNaN(hue) {
		hue = 0
	}
	return fmt.Sprintf("hsl(%sdeg,100%%,50%%)", scene.FormatNumber(hue))
}

// LineAngle returns the rotation of line i in degrees.
func (c Config) LineAngle(i int) float64 {
	return float64(i)*c.CentralAngle + c.Rotation
}
