package pipeline

import (
	"encoding/json"
	"image"
	"strings"
)

// Position is a rectangle in image pixel coordinates.
type Position struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// PositionOf converts an image.Rectangle.
func PositionOf(r image.Rectangle) Position {
	return Position{X: r.Min.X, Y: r.Min.Y, Width: r.Dx(), Height: r.Dy()}
}

// Rect converts p back to an image.Rectangle.
func (p Position) Rect() image.Rectangle {
	return image.Rect(p.X, p.Y, p.X+p.Width, p.Y+p.Height)
}

// TextBlock is one recognized region.
type TextBlock struct {
	Text     string   `json:"text"`
	Position Position `json:"position"`
}

// RegionText is the outcome of recognizing one region. A failed region has
// Err set and empty Text.
type RegionText struct {
	Rect image.Rectangle
	Text string
	Err  error
}

// Result is the outcome of one pipeline run. It serializes to exactly one
// of three shapes:
//
//	{"schedule": [...]}
//	{"warning": "...", "schedule": []}
//	{"error": "..."}
type Result struct {
	Schedule []TextBlock
	Warning  string
	Error    string

	// Err is the error behind Error, for errors.Is checks. Not serialized.
	Err error
}

// Failed reports whether r is an error result.
func (r Result) Failed() bool {
	return r.Error != ""
}

// Kind classifies the failure behind r.
func (r Result) Kind() Kind {
	if !r.Failed() {
		return KindNone
	}
	if r.Err == nil {
		return KindUnexpectedFailure
	}
	return KindOf(r.Err)
}

// MarshalJSON implements json.Marshaler.
func (r Result) MarshalJSON() ([]byte, error) {
	if r.Failed() {
		return json.Marshal(struct {
			Error string `json:"error"`
		}{r.Error})
	}

	schedule := r.Schedule
	if schedule == nil {
		schedule = []TextBlock{}
	}
	if len(schedule) == 0 {
		warning := r.Warning
		if warning == "" {
			warning = WarningNoText
		}
		return json.Marshal(struct {
			Warning  string      `json:"warning"`
			Schedule []TextBlock `json:"schedule"`
		}{warning, schedule})
	}

	return json.Marshal(struct {
		Schedule []TextBlock `json:"schedule"`
	}{schedule})
}

// ErrorResult converts err into an error result with the caller-facing
// message for its kind.
func ErrorResult(err error) Result {
	return Result{Error: KindOf(err).Message(), Err: err}
}

// Assemble builds a result from per-region outcomes, keeping their order.
// Regions with no text, including failed ones, are dropped. If nothing is
// left the result carries WarningNoText.
func Assemble(regions []RegionText) Result {
	blocks := make([]TextBlock, 0, len(regions))
	for _, r := range regions {
		text := strings.TrimSpace(r.Text)
		if text == "" {
			continue
		}
		blocks = append(blocks, TextBlock{Text: text, Position: PositionOf(r.Rect)})
	}

	if len(blocks) == 0 {
		return Result{Schedule: blocks, Warning: WarningNoText}
	}
	return Result{Schedule: blocks}
}
