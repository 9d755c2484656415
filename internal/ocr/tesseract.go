//go:build cgo

package ocr

import (
	"fmt"
	"image"

	"github.com/otiai10/gosseract/v2"

	"github.com/ironsheep/schedule-ocr-mcp/internal/imaging"
)

const backend = "gosseract"

// Tesseract is an Engine backed by the native Tesseract library.
//
// A fresh gosseract client is created for every call, so a single Tesseract
// value can serve concurrent recognitions.
type Tesseract struct {
	opts Options
}

// NewTesseract creates a Tesseract engine.
func NewTesseract(opts Options) (*Tesseract, error) {
	if opts.PageSegMode < 0 || opts.PageSegMode > int(gosseract.PSM_RAW_LINE) {
		return nil, fmt.Errorf("ocr: invalid page segmentation mode %d", opts.PageSegMode)
	}
	return &Tesseract{opts: opts}, nil
}

// Recognize implements Engine. The image is handed to Tesseract as an
// in-memory PNG; nothing is written to disk.
func (t *Tesseract) Recognize(img image.Image) (string, error) {
	data, err := imaging.EncodePNG(img)
	if err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if t.opts.TessdataPrefix != "" {
		if err := client.SetTessdataPrefix(t.opts.TessdataPrefix); err != nil {
			return "", fmt.Errorf("failed to set tessdata path: %w", err)
		}
	}

	if err := client.SetLanguage(t.opts.Languages()...); err != nil {
		return "", fmt.Errorf("failed to set language: %w", err)
	}

	if err := client.SetPageSegMode(gosseract.PageSegMode(t.opts.PageSegMode)); err != nil {
		return "", fmt.Errorf("failed to set page segmentation mode: %w", err)
	}

	if err := client.SetImageFromBytes(data); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}
	return text, nil
}

// GetInfo reports the linked Tesseract version and the installed languages.
func GetInfo() Info {
	info := Info{
		Available: true,
		Version:   gosseract.Version(),
		Backend:   backend,
	}

	langs, err := gosseract.GetAvailableLanguages()
	if err != nil {
		info.Error = fmt.Sprintf("failed to list languages: %v", err)
		return info
	}
	info.Languages = langs
	if len(langs) == 0 {
		info.Available = false
		info.Error = "no traineddata files found"
	}
	return info
}
