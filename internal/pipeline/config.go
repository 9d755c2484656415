package pipeline

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ironsheep/schedule-ocr-mcp/internal/detection"
	"github.com/ironsheep/schedule-ocr-mcp/internal/imaging"
	"github.com/ironsheep/schedule-ocr-mcp/internal/ocr"
)

// EnvConfig names the environment variable the binary reads for the path of
// a YAML configuration file.
const EnvConfig = "SCHEDULE_MCP_CONFIG"

// Config is the complete, explicit configuration of a pipeline run.
type Config struct {
	// Strategy selects the region detector: "color" or "table".
	Strategy detection.Strategy `yaml:"strategy"`

	// MinWidth and MinHeight are the rectangle size floor. Zero selects the
	// strategy default (table 50x20, color 20x10).
	MinWidth  int `yaml:"min_width"`
	MinHeight int `yaml:"min_height"`

	// MinImageSize is the smallest accepted image width and height.
	MinImageSize int `yaml:"min_image_size"`

	// Upscale is the factor applied to each crop before recognition.
	Upscale float64 `yaml:"upscale"`

	// Language is one or more Tesseract language codes joined by "+".
	Language string `yaml:"language"`

	// PageSegMode is the Tesseract page segmentation mode.
	PageSegMode int `yaml:"page_seg_mode"`

	// TessdataPrefix is an optional traineddata directory.
	TessdataPrefix string `yaml:"tessdata_prefix"`

	// Workers bounds the number of regions recognized concurrently.
	Workers int `yaml:"workers"`

	// Retrieval selects outer boundaries ("external") or enclosed cells.
	Retrieval detection.Retrieval `yaml:"retrieval"`

	Table detection.TableConfig `yaml:"table"`
	Color detection.ColorConfig `yaml:"color"`
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		Strategy:     detection.StrategyColor,
		MinImageSize: imaging.DefaultMinSize,
		Upscale:      ocr.DefaultScale,
		Language:     "eng",
		PageSegMode:  ocr.PSMSingleBlock,
		Workers:      1,
		Retrieval:    detection.RetrievalExternal,
		Table:        detection.DefaultTableConfig(),
		Color:        detection.DefaultColorConfig(),
	}
}

// LoadConfig reads a YAML file over DefaultConfig. Keys missing from the
// file keep their default values. The result is validated.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// MinSize returns the effective rectangle size floor.
func (c Config) MinSize() (width, height int) {
	width, height = c.MinWidth, c.MinHeight
	dw, dh := c.Strategy.DefaultMinSize()
	if width == 0 {
		width = dw
	}
	if height == 0 {
		height = dh
	}
	return width, height
}

// Validate reports the first invalid field, wrapped in ErrInvalidConfig.
func (c Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
	}

	switch c.Strategy {
	case detection.StrategyTable, detection.StrategyColor:
	default:
		return invalid("unknown strategy %q", c.Strategy)
	}
	if _, err := detection.ParseRetrieval(string(c.Retrieval)); err != nil {
		return invalid("%v", err)
	}
	if c.MinWidth < 0 || c.MinHeight < 0 {
		return invalid("min_width and min_height must not be negative")
	}
	if c.MinImageSize < 1 {
		return invalid("min_image_size must be positive, got %d", c.MinImageSize)
	}
	if c.Upscale <= 0 {
		return invalid("upscale must be positive, got %g", c.Upscale)
	}
	if c.PageSegMode < 0 || c.PageSegMode > 13 {
		return invalid("page_seg_mode must be 0-13, got %d", c.PageSegMode)
	}
	if c.Workers < 1 {
		return invalid("workers must be at least 1, got %d", c.Workers)
	}

	t := c.Table
	if t.BlockSize < 3 || t.BlockSize%2 == 0 {
		return invalid("table.block_size must be odd and at least 3, got %d", t.BlockSize)
	}
	if t.LineLength < 1 || t.LineIterations < 1 {
		return invalid("table.line_length and table.line_iterations must be positive")
	}
	kernels := []struct {
		name string
		k    detection.Kernel
	}{
		{"table.noise_kernel", t.NoiseKernel},
		{"table.stroke_kernel", t.StrokeKernel},
		{"color.close_kernel", c.Color.CloseKernel},
	}
	for _, kn := range kernels {
		if kn.k.Width < 1 || kn.k.Height < 1 {
			return invalid("%s must be at least 1x1, got %v", kn.name, kn.k)
		}
	}

	if !inByteRange(c.Color.MinSaturation) || !inByteRange(c.Color.MinValue) {
		return invalid("color.min_saturation and color.min_value must be 0-255")
	}
	return nil
}

// OCROptions returns the engine options carried by the configuration.
func (c Config) OCROptions() ocr.Options {
	return ocr.Options{
		Language:       c.Language,
		PageSegMode:    c.PageSegMode,
		TessdataPrefix: c.TessdataPrefix,
	}
}

func (c Config) detectionOptions() detection.Options {
	return detection.Options{Table: c.Table, Color: c.Color}
}

func inByteRange(v int) bool {
	return v >= 0 && v <= 255
}
