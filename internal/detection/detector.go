package detection

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
)

// ErrUnknownStrategy is returned by NewDetector for an unrecognized strategy.
var ErrUnknownStrategy = errors.New("detection: unknown strategy")

// ErrEmptyImage is returned when a detector is given an image with no pixels.
var ErrEmptyImage = errors.New("detection: empty image")

// Strategy names a region detection approach.
type Strategy string

const (
	// StrategyTable finds ruled table grids.
	StrategyTable Strategy = "table"

	// StrategyColor finds saturated color blocks.
	StrategyColor Strategy = "color"
)

// DefaultMinSize returns the rectangle size floor that suits the strategy.
// Colored blocks can be thinner than table cells, so their floor is lower.
func (s Strategy) DefaultMinSize() (width, height int) {
	if s == StrategyTable {
		return 50, 20
	}
	return 20, 10
}

// Detector produces a binary mask (0 or 255 per pixel) marking candidate
// text-bearing regions. The mask has its origin at (0, 0) and the same
// width and height as the input image.
type Detector interface {
	Detect(img image.Image) (*image.Gray, error)
}

// Options carries the tuning parameters of every strategy. Only the block
// matching the chosen strategy is used.
type Options struct {
	Table TableConfig `yaml:"table"`
	Color ColorConfig `yaml:"color"`
}

// DefaultOptions returns the default tuning for both strategies.
func DefaultOptions() Options {
	return Options{
		Table: DefaultTableConfig(),
		Color: DefaultColorConfig(),
	}
}

// NewDetector creates a detector for the given strategy.
func NewDetector(strategy Strategy, opts Options) (Detector, error) {
	switch strategy {
	case StrategyTable:
		return NewTableLineDetector(opts.Table), nil
	case StrategyColor:
		return NewColorBlockDetector(opts.Color), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
	}
}

// toRGBA copies img into an RGBA image whose origin is (0, 0).
func toRGBA(img image.Image) (*image.RGBA, error) {
	b := img.Bounds()
	if b.Empty() {
		return nil, ErrEmptyImage
	}
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst, nil
}
