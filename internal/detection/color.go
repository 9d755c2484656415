package detection

import (
	"image"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ColorConfig tunes ColorBlockDetector. Thresholds use the 0-255 scale.
type ColorConfig struct {
	MinSaturation int    `yaml:"min_saturation"`
	MinValue      int    `yaml:"min_value"`
	CloseKernel   Kernel `yaml:"close_kernel"`
}

// DefaultColorConfig returns the standard color-block tuning.
func DefaultColorConfig() ColorConfig {
	return ColorConfig{
		MinSaturation: 30,
		MinValue:      30,
		CloseKernel:   Kernel{Width: 5, Height: 5},
	}
}

// ColorBlockDetector finds saturated color tiles of any hue, such as the
// blocks of a rendered calendar.
//
// A pixel is foreground when its HSV saturation and value are both at least
// the configured floor, which excludes near-white, near-gray and near-black
// pixels. Small gaps, such as the text inside a tile, are then closed.
type ColorBlockDetector struct {
	cfg ColorConfig
}

// NewColorBlockDetector creates a ColorBlockDetector.
func NewColorBlockDetector(cfg ColorConfig) *ColorBlockDetector {
	return &ColorBlockDetector{cfg: cfg}
}

// Detect implements Detector.
func (d *ColorBlockDetector) Detect(img image.Image) (*image.Gray, error) {
	src, err := toRGBA(img)
	if err != nil {
		return nil, err
	}

	minS := float64(d.cfg.MinSaturation)
	minV := float64(d.cfg.MinValue)

	bounds := src.Bounds()
	mask := image.NewGray(bounds)
	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			c, ok := colorful.MakeColor(src.RGBAAt(x, y))
			if !ok {
				continue
			}
			_, s, v := c.Hsv()
			if s*255 >= minS && v*255 >= minV {
				mask.Pix[y*mask.Stride+x] = 255
			}
		}
	}

	return Close(mask, d.cfg.CloseKernel, 1), nil
}
