//go:build cgo

package ocr

import (
	"image"
	"image/color"
	"slices"
	"strings"
	"testing"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// requireTesseract skips the test unless Tesseract has English data.
func requireTesseract(t *testing.T) {
	t.Helper()
	info := GetInfo()
	if !info.Available || !slices.Contains(info.Languages, "eng") {
		t.Skipf("Tesseract not available: %s", info.Error)
	}
}

// drawText draws text on an image using basicfont
func drawText(img *image.RGBA, x, y int, text string, col color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(text)
}

// createTextImage renders text and enlarges it by an integer factor so that
// Tesseract sees glyphs of a readable size.
func createTextImage(text string, scale int) *image.RGBA {
	small := createSolidImage(len(text)*7+40, 40, color.White)
	drawText(small, 20, 25, text, color.Black)

	b := small.Bounds()
	img := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	for y := 0; y < img.Bounds().Dy(); y++ {
		for x := 0; x < img.Bounds().Dx(); x++ {
			img.Set(x, y, small.At(x/scale, y/scale))
		}
	}
	return img
}

func TestTesseract_Recognize(t *testing.T) {
	requireTesseract(t)

	engine, err := NewTesseract(DefaultOptions())
	if err != nil {
		t.Fatalf("NewTesseract failed: %v", err)
	}

	text, err := engine.Recognize(createTextImage("HELLO", 3))
	if err != nil {
		t.Fatalf("Recognize failed: %v", err)
	}
	if !strings.Contains(strings.ToUpper(text), "HELLO") {
		t.Errorf("expected HELLO in %q", text)
	}
}

func TestTesseract_RecognizeRegion(t *testing.T) {
	requireTesseract(t)

	engine, err := NewTesseract(DefaultOptions())
	if err != nil {
		t.Fatalf("NewTesseract failed: %v", err)
	}

	img := createSolidImage(400, 200, color.White)
	block := createTextImage("MATH", 2)
	for y := 0; y < block.Bounds().Dy(); y++ {
		for x := 0; x < block.Bounds().Dx(); x++ {
			img.Set(100+x, 60+y, block.At(x, y))
		}
	}

	rect := image.Rect(100, 60, 100+block.Bounds().Dx(), 60+block.Bounds().Dy())
	text, err := RecognizeRegion(engine, img, rect, DefaultScale)
	if err != nil {
		t.Fatalf("RecognizeRegion failed: %v", err)
	}
	if text != strings.TrimSpace(text) {
		t.Errorf("text not trimmed: %q", text)
	}
	if !strings.Contains(strings.ToUpper(text), "MATH") {
		t.Errorf("expected MATH in %q", text)
	}
}

func TestTesseract_BlankImage(t *testing.T) {
	requireTesseract(t)

	engine, _ := NewTesseract(DefaultOptions())
	text, err := engine.Recognize(createSolidImage(200, 100, color.White))
	if err != nil {
		t.Fatalf("Recognize failed: %v", err)
	}
	if strings.TrimSpace(text) != "" {
		t.Errorf("expected no text from a blank image, got %q", text)
	}
}

func TestNewTesseract_InvalidPageSegMode(t *testing.T) {
	if _, err := NewTesseract(Options{Language: "eng", PageSegMode: 99}); err == nil {
		t.Error("NewTesseract should reject page segmentation mode 99")
	}
}

func TestGetInfo(t *testing.T) {
	info := GetInfo()
	if info.Backend != backend {
		t.Errorf("Backend: got %q, want %q", info.Backend, backend)
	}
	if info.Version == "" {
		t.Error("Version should not be empty when linked against Tesseract")
	}
}
