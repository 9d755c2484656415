package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strconv"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// DefaultOverlayColor is the outline color used when none is given.
const DefaultOverlayColor = "#00FF00"

// DrawRegions returns a copy of img with each rectangle outlined and labeled
// with its 1-based position in rects.
//
// The source image is never modified, so the overlay can be produced while
// other readers still hold img.
//
// Parameters:
//   - colorHex: Outline color as "#RRGGBB" or "#RRGGBBAA". Invalid or empty
//     values fall back to DefaultOverlayColor.
//   - thickness: Outline width in pixels, drawn inward from each rectangle
//     edge. Values < 1 are treated as 1.
func DrawRegions(img image.Image, rects []image.Rectangle, colorHex string, thickness int) *image.RGBA {
	bounds := img.Bounds()

	outline, err := parseHexColor(colorHex)
	if err != nil {
		outline, _ = parseHexColor(DefaultOverlayColor)
	}
	if thickness < 1 {
		thickness = 1
	}

	result := image.NewRGBA(bounds)
	draw.Draw(result, bounds, img, bounds.Min, draw.Src)

	labelColor := color.RGBA{255, 255, 255, 255}
	for i, r := range rects {
		r = r.Intersect(bounds)
		if r.Empty() {
			continue
		}
		drawOutline(result, r, outline, thickness)
		drawLabel(result, r.Min.X+thickness+1, r.Min.Y+thickness+1, strconv.Itoa(i+1), labelColor, outline)
	}

	return result
}

// drawOutline strokes the inside edge of r.
func drawOutline(img *image.RGBA, r image.Rectangle, c color.RGBA, thickness int) {
	u := image.NewUniform(c)
	edges := []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+thickness),
		image.Rect(r.Min.X, r.Max.Y-thickness, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y, r.Min.X+thickness, r.Max.Y),
		image.Rect(r.Max.X-thickness, r.Min.Y, r.Max.X, r.Max.Y),
	}
	for _, e := range edges {
		draw.Draw(img, e.Intersect(r), u, image.Point{}, draw.Over)
	}
}

// parseHexColor parses a hex color string like "#FF0000" or "#FF000080"
func parseHexColor(hex string) (color.RGBA, error) {
	if len(hex) == 0 {
		return color.RGBA{}, fmt.Errorf("empty color string")
	}
	if hex[0] == '#' {
		hex = hex[1:]
	}

	var r, g, b, a uint8 = 0, 0, 0, 255

	switch len(hex) {
	case 6:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, err
		}
		r = uint8(val >> 16)
		g = uint8(val >> 8)
		b = uint8(val)
	case 8:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, err
		}
		r = uint8(val >> 24)
		g = uint8(val >> 16)
		b = uint8(val >> 8)
		a = uint8(val)
	default:
		return color.RGBA{}, fmt.Errorf("invalid hex color length")
	}

	return color.RGBA{R: r, G: g, B: b, A: a}, nil
}

// drawLabel draws text on a filled background box whose top-left is (x, y).
func drawLabel(img *image.RGBA, x, y int, text string, fg, bg color.RGBA) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(fg),
		Face: face,
	}

	width := d.MeasureString(text).Ceil()
	box := image.Rect(x-1, y-1, x+width+1, y+face.Height)
	draw.Draw(img, box.Intersect(img.Bounds()), image.NewUniform(bg), image.Point{}, draw.Src)

	d.Dot = fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y + face.Ascent)}
	d.DrawString(text)
}
