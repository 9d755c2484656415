package ocr

import (
	"errors"
	"image"
	"strings"
)

// ErrOCRNotEnabled is returned when the binary was built without cgo and
// therefore without Tesseract.
var ErrOCRNotEnabled = errors.New("ocr: support not enabled; rebuild with CGO_ENABLED=1 and Tesseract installed")

// ErrEmptyCrop is returned when a region has no pixels inside the image.
var ErrEmptyCrop = errors.New("ocr: empty crop")

// PSMSingleBlock is the Tesseract page segmentation mode that treats the
// input as a single uniform block of text.
const PSMSingleBlock = 6

// Engine recognizes the text in an image.
//
// Implementations must be safe for concurrent use: the pipeline may call
// Recognize from several goroutines at once.
type Engine interface {
	Recognize(img image.Image) (string, error)
}

// Options configures the Tesseract engine.
type Options struct {
	// Language is one or more Tesseract language codes joined by "+",
	// e.g. "eng" or "eng+deu".
	Language string

	// PageSegMode is the Tesseract page segmentation mode.
	PageSegMode int

	// TessdataPrefix is the directory holding *.traineddata files.
	// Empty uses the Tesseract default.
	TessdataPrefix string
}

// DefaultOptions returns English, single-block recognition.
func DefaultOptions() Options {
	return Options{
		Language:    "eng",
		PageSegMode: PSMSingleBlock,
	}
}

// Languages splits Language into individual codes.
func (o Options) Languages() []string {
	var langs []string
	for _, l := range strings.Split(o.Language, "+") {
		if l = strings.TrimSpace(l); l != "" {
			langs = append(langs, l)
		}
	}
	if len(langs) == 0 {
		return []string{"eng"}
	}
	return langs
}

// Info describes the OCR subsystem.
type Info struct {
	Available bool     `json:"available"`
	Version   string   `json:"version,omitempty"`
	Backend   string   `json:"backend"`
	Languages []string `json:"languages,omitempty"`
	Error     string   `json:"error,omitempty"`
}
