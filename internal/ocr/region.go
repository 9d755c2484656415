package ocr

import (
	"fmt"
	"image"
	"strings"

	"github.com/ironsheep/schedule-ocr-mcp/internal/imaging"
)

// DefaultScale is the upscale factor applied to a crop before recognition.
const DefaultScale = 2.0

// RecognizeRegion crops rect out of img, scales the crop by scale with
// Catmull-Rom interpolation, and runs engine on it. The returned text has
// surrounding whitespace trimmed.
//
// rect is clipped to the image first; a region with no pixels left returns
// ErrEmptyCrop without calling the engine.
func RecognizeRegion(engine Engine, img image.Image, rect image.Rectangle, scale float64) (string, error) {
	rect = rect.Intersect(img.Bounds())
	if rect.Empty() {
		return "", ErrEmptyCrop
	}

	crop, err := imaging.CropScaled(img, rect, scale)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEmptyCrop, err)
	}

	text, err := engine.Recognize(crop)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}
