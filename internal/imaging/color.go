package imaging

import (
	"image"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// FillColorHex returns the mean color of rect in img as "#rrggbb".
//
// Pixels are averaged in linear RGB so that antialiased text inside a colored
// block pulls the result toward the block color rather than toward gray.
// Fully transparent pixels are skipped. An empty region, or one that is
// entirely transparent, yields "".
func FillColorHex(img image.Image, rect image.Rectangle) string {
	rect = rect.Intersect(img.Bounds())
	if rect.Empty() {
		return ""
	}

	var sr, sg, sb float64
	n := 0
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			c, ok := colorful.MakeColor(img.At(x, y))
			if !ok {
				continue
			}
			r, g, b := c.LinearRgb()
			sr += r
			sg += g
			sb += b
			n++
		}
	}
	if n == 0 {
		return ""
	}

	mean := colorful.LinearRgb(sr/float64(n), sg/float64(n), sb/float64(n))
	return mean.Clamped().Hex()
}
