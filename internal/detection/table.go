package detection

import (
	"image"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/effect"
)

// TableConfig tunes TableLineDetector.
type TableConfig struct {
	// BlockSize is the odd side length of the adaptive threshold
	// neighbourhood.
	BlockSize int `yaml:"block_size"`

	// Offset is subtracted from the local mean to form the threshold.
	Offset float64 `yaml:"offset"`

	// NoiseKernel is the structuring element of the speckle-removing open.
	NoiseKernel Kernel `yaml:"noise_kernel"`

	// StrokeKernel is the structuring element of the single stroke dilation.
	StrokeKernel Kernel `yaml:"stroke_kernel"`

	// LineLength is the minimum run, in pixels, kept as a ruled line.
	LineLength int `yaml:"line_length"`

	// LineIterations is the iteration count of each line-extraction open.
	LineIterations int `yaml:"line_iterations"`
}

// DefaultTableConfig returns the standard table-line tuning.
func DefaultTableConfig() TableConfig {
	return TableConfig{
		BlockSize:      11,
		Offset:         2,
		NoiseKernel:    Kernel{Width: 1, Height: 1},
		StrokeKernel:   Kernel{Width: 1, Height: 1},
		LineLength:     40,
		LineIterations: 2,
	}
}

// TableLineDetector finds the ruled grid of a table.
//
// # Algorithm
//
//  1. Grayscale conversion
//  2. Adaptive Gaussian threshold, inverted so ink is foreground: a pixel is
//     set when it is at least Offset darker than its Gaussian-weighted
//     neighbourhood of BlockSize pixels
//  3. Open with NoiseKernel to drop speckles
//  4. Dilate once with StrokeKernel
//  5. Open with a LineLength×1 kernel to keep horizontal rules and with a
//     1×LineLength kernel to keep vertical rules
//  6. Pixel-wise maximum of the two rule masks
//
// Printed text is shorter than LineLength in both directions, so it does not
// survive step 5.
type TableLineDetector struct {
	cfg TableConfig
}

// NewTableLineDetector creates a TableLineDetector.
func NewTableLineDetector(cfg TableConfig) *TableLineDetector {
	return &TableLineDetector{cfg: cfg}
}

// Detect implements Detector.
func (d *TableLineDetector) Detect(img image.Image) (*image.Gray, error) {
	src, err := toRGBA(img)
	if err != nil {
		return nil, err
	}

	binary := d.adaptiveThreshold(src)
	binary = Open(binary, d.cfg.NoiseKernel, 1)
	binary = Dilate(binary, d.cfg.StrokeKernel, 1)

	horizontal := Open(binary, Kernel{Width: d.cfg.LineLength, Height: 1}, d.cfg.LineIterations)
	vertical := Open(binary, Kernel{Width: 1, Height: d.cfg.LineLength}, d.cfg.LineIterations)

	return Max(horizontal, vertical), nil
}

func (d *TableLineDetector) adaptiveThreshold(src *image.RGBA) *image.Gray {
	gray := effect.Grayscale(src)

	radius := float64(d.cfg.BlockSize-1) / 2
	mean := blur.Gaussian(gray, radius)

	bounds := gray.Bounds()
	dst := image.NewGray(bounds)
	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			v := float64(gray.Pix[y*gray.Stride+x*4])
			m := float64(mean.Pix[y*mean.Stride+x*4])
			if v <= m-d.cfg.Offset {
				dst.Pix[y*dst.Stride+x] = 255
			}
		}
	}
	return dst
}
