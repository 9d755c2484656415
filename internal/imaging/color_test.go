package imaging

import (
	"image"
	"image/color"
	"testing"
)

// createInMemoryImage creates an in-memory test image
func createInMemoryImage(width, height int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// createPatternImage creates an image with different colors in each quadrant
func createPatternImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var c color.Color
			if x < width/2 && y < height/2 {
				c = color.RGBA{255, 0, 0, 255} // Red top-left
			} else if x >= width/2 && y < height/2 {
				c = color.RGBA{0, 255, 0, 255} // Green top-right
			} else if x < width/2 && y >= height/2 {
				c = color.RGBA{0, 0, 255, 255} // Blue bottom-left
			} else {
				c = color.RGBA{255, 255, 255, 255} // White bottom-right
			}
			img.Set(x, y, c)
		}
	}
	return img
}

func TestFillColorHex(t *testing.T) {
	img := createPatternImage(100, 100)

	tests := []struct {
		name string
		rect image.Rectangle
		want string
	}{
		{"red quadrant", image.Rect(0, 0, 50, 50), "#ff0000"},
		{"green quadrant", image.Rect(60, 0, 100, 40), "#00ff00"},
		{"blue quadrant", image.Rect(0, 50, 50, 100), "#0000ff"},
		{"white quadrant", image.Rect(50, 50, 100, 100), "#ffffff"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FillColorHex(img, tt.rect); got != tt.want {
				t.Errorf("FillColorHex: got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestFillColorHex_EmptyRegion(t *testing.T) {
	img := createPatternImage(100, 100)

	if got := FillColorHex(img, image.Rect(200, 200, 300, 300)); got != "" {
		t.Errorf("region outside image: got %q, want empty", got)
	}
}

func TestFillColorHex_Transparent(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 20, 20))

	if got := FillColorHex(img, img.Bounds()); got != "" {
		t.Errorf("transparent region: got %q, want empty", got)
	}
}
