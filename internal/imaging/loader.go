package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"io"
	"io/fs"
	"os"

	"github.com/disintegration/imaging"
)

// DefaultMinSize is the smallest width and height, in pixels, that can hold
// legible schedule text.
const DefaultMinSize = 100

var (
	// ErrNotFound is returned when the image path does not exist.
	ErrNotFound = errors.New("imaging: image file not found")

	// ErrDecode is returned when the source cannot be decoded into a raster.
	ErrDecode = errors.New("imaging: failed to read image file")

	// ErrTooSmall is returned when either image dimension is below the minimum.
	ErrTooSmall = errors.New("imaging: image dimensions too small")
)

// Load reads and decodes the image at path.
//
// Parameters:
//   - path: Path to a PNG, JPEG, or GIF file.
//   - minSize: Minimum accepted width and height in pixels. Values <= 0 disable
//     the check.
//
// Returns:
//   - image.Image: A freshly decoded image owned by the caller. EXIF orientation
//     is applied to JPEG sources.
//   - error: ErrNotFound, ErrDecode, or ErrTooSmall (wrapped), or the underlying
//     open error for unreadable paths.
func Load(path string, minSize int) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	return decode(f, minSize)
}

// LoadBytes decodes an in-memory image buffer. It applies the same validation
// as Load; ErrNotFound is never returned.
func LoadBytes(data []byte, minSize int) (image.Image, error) {
	return decode(bytes.NewReader(data), minSize)
}

func decode(r io.Reader, minSize int) (image.Image, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if err := CheckSize(img, minSize); err != nil {
		return nil, err
	}
	return img, nil
}

// CheckSize returns a wrapped ErrTooSmall when img is narrower or shorter than
// minSize pixels.
func CheckSize(img image.Image, minSize int) error {
	if minSize <= 0 {
		return nil
	}
	b := img.Bounds()
	if b.Dx() < minSize || b.Dy() < minSize {
		return fmt.Errorf("%w: %dx%d, minimum %dx%d", ErrTooSmall, b.Dx(), b.Dy(), minSize, minSize)
	}
	return nil
}

// ImageInfo contains metadata about an image file.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the decoder that recognized the content: "png", "jpeg", or "gif".
	Format string `json:"format"`

	// ColorDepth indicates the bit depth per channel: "8-bit" or "16-bit".
	ColorDepth string `json:"color_depth"`

	// HasAlpha indicates whether the image has an alpha (transparency) channel.
	HasAlpha bool `json:"has_alpha"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`

	// MeetsMinimum reports whether both dimensions reach the minimum size
	// requested from LoadImageInfo.
	MeetsMinimum bool `json:"meets_minimum"`
}

// LoadImageInfo decodes the image at path and reports its metadata.
//
// Unlike Load, an undersized image is not an error here: MeetsMinimum is set
// to false instead, so callers can explain why a parse would be rejected.
//
// # Color Depth Detection
//
// Color depth is determined by the decoded Go image type:
//   - *image.RGBA64, *image.NRGBA64, *image.Gray16 -> "16-bit"
//   - All other types -> "8-bit"
func LoadImageInfo(path string, minSize int) (*ImageInfo, error) {
	stat, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	hasAlpha := false
	colorDepth := "8-bit"
	switch img.(type) {
	case *image.RGBA, *image.NRGBA:
		hasAlpha = true
	case *image.RGBA64, *image.NRGBA64:
		hasAlpha = true
		colorDepth = "16-bit"
	case *image.Gray16:
		colorDepth = "16-bit"
	}

	bounds := img.Bounds()
	return &ImageInfo{
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		Format:        format,
		ColorDepth:    colorDepth,
		HasAlpha:      hasAlpha,
		FileSizeBytes: stat.Size(),
		MeetsMinimum:  CheckSize(img, minSize) == nil,
	}, nil
}
