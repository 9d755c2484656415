package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
)

// PNGResult carries an encoded image back to the MCP client.
type PNGResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// CropScaled extracts rect from img and resizes it by scale using Catmull-Rom
// (bicubic) interpolation.
//
// The rectangle must lie inside the image bounds and be non-empty. A scale of
// 1.0 (or <= 0) returns the crop at its native size.
func CropScaled(img image.Image, rect image.Rectangle, scale float64) (*image.NRGBA, error) {
	bounds := img.Bounds()
	if rect.Empty() {
		return nil, fmt.Errorf("invalid crop region %v: empty", rect)
	}
	if !rect.In(bounds) {
		return nil, fmt.Errorf("crop region %v outside image bounds %v", rect, bounds)
	}

	cropped := imaging.Crop(img, rect)

	if scale != 1.0 && scale > 0 {
		newWidth := int(float64(rect.Dx()) * scale)
		newHeight := int(float64(rect.Dy()) * scale)
		if newWidth < 1 || newHeight < 1 {
			return nil, fmt.Errorf("scale %.2f collapses region %v", scale, rect)
		}
		cropped = imaging.Resize(cropped, newWidth, newHeight, imaging.CatmullRom)
	}

	return cropped, nil
}

// EncodePNG encodes img as PNG bytes.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodePNGResult encodes img as base64 PNG for transport.
func EncodePNGResult(img image.Image) (*PNGResult, error) {
	data, err := EncodePNG(img)
	if err != nil {
		return nil, err
	}
	return &PNGResult{
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(data),
		MimeType:    "image/png",
	}, nil
}
