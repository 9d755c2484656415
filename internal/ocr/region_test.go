package ocr

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"reflect"
	"testing"
)

// fakeEngine records the images it was asked to recognize.
type fakeEngine struct {
	text string
	err  error
	seen []image.Rectangle
}

func (f *fakeEngine) Recognize(img image.Image) (string, error) {
	f.seen = append(f.seen, img.Bounds())
	return f.text, f.err
}

func createSolidImage(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

func TestRecognizeRegion(t *testing.T) {
	engine := &fakeEngine{text: "  Math 9am\n\n"}
	img := createSolidImage(200, 200, color.White)

	text, err := RecognizeRegion(engine, img, image.Rect(60, 80, 140, 120), DefaultScale)
	if err != nil {
		t.Fatalf("RecognizeRegion failed: %v", err)
	}
	if text != "Math 9am" {
		t.Errorf("text: got %q, want %q", text, "Math 9am")
	}

	if len(engine.seen) != 1 {
		t.Fatalf("engine called %d times, want 1", len(engine.seen))
	}
	if got := engine.seen[0]; got.Dx() != 160 || got.Dy() != 80 {
		t.Errorf("engine saw %dx%d, want 160x80 (2x upscale)", got.Dx(), got.Dy())
	}
}

func TestRecognizeRegion_ClipsToImage(t *testing.T) {
	engine := &fakeEngine{text: "x"}
	img := createSolidImage(100, 100, color.White)

	if _, err := RecognizeRegion(engine, img, image.Rect(80, 80, 140, 140), 1.0); err != nil {
		t.Fatalf("RecognizeRegion failed: %v", err)
	}
	if got := engine.seen[0]; got.Dx() != 20 || got.Dy() != 20 {
		t.Errorf("engine saw %v, want 20x20 clipped crop", got)
	}
}

func TestRecognizeRegion_EmptyCrop(t *testing.T) {
	engine := &fakeEngine{text: "never"}
	img := createSolidImage(100, 100, color.White)

	tests := []struct {
		name string
		rect image.Rectangle
	}{
		{"zero width", image.Rect(10, 10, 10, 50)},
		{"outside image", image.Rect(200, 200, 300, 300)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := RecognizeRegion(engine, img, tt.rect, DefaultScale)
			if !errors.Is(err, ErrEmptyCrop) {
				t.Errorf("expected ErrEmptyCrop, got %v", err)
			}
		})
	}
	if len(engine.seen) != 0 {
		t.Errorf("engine called %d times for empty crops", len(engine.seen))
	}
}

func TestRecognizeRegion_EngineError(t *testing.T) {
	boom := errors.New("engine exploded")
	engine := &fakeEngine{err: boom}
	img := createSolidImage(100, 100, color.White)

	_, err := RecognizeRegion(engine, img, image.Rect(0, 0, 50, 50), DefaultScale)
	if !errors.Is(err, boom) {
		t.Errorf("expected engine error, got %v", err)
	}
}

func TestOptions_Languages(t *testing.T) {
	tests := []struct {
		language string
		want     []string
	}{
		{"eng", []string{"eng"}},
		{"eng+deu", []string{"eng", "deu"}},
		{" eng + fra ", []string{"eng", "fra"}},
		{"", []string{"eng"}},
		{"+", []string{"eng"}},
	}

	for _, tt := range tests {
		got := Options{Language: tt.language}.Languages()
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Languages(%q): got %v, want %v", tt.language, got, tt.want)
		}
	}
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	if opts.Language != "eng" {
		t.Errorf("Language: got %q, want eng", opts.Language)
	}
	if opts.PageSegMode != PSMSingleBlock {
		t.Errorf("PageSegMode: got %d, want %d", opts.PageSegMode, PSMSingleBlock)
	}
}
