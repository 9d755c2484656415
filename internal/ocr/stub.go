//go:build !cgo

package ocr

import "image"

// Tesseract is a stub engine used when the binary is built without cgo.
// Every call returns ErrOCRNotEnabled.
type Tesseract struct{}

// NewTesseract returns ErrOCRNotEnabled.
func NewTesseract(opts Options) (*Tesseract, error) {
	return nil, ErrOCRNotEnabled
}

// Recognize returns ErrOCRNotEnabled.
func (t *Tesseract) Recognize(img image.Image) (string, error) {
	return "", ErrOCRNotEnabled
}

// GetInfo reports OCR as unavailable.
func GetInfo() Info {
	return Info{
		Available: false,
		Backend:   "none",
		Error:     ErrOCRNotEnabled.Error(),
	}
}
