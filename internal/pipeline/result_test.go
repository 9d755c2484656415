package pipeline

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/schedule-ocr-mcp/internal/imaging"
)

func TestAssemble(t *testing.T) {
	res := Assemble([]RegionText{
		{Rect: image.Rect(0, 0, 50, 20), Text: " Math 9am \n"},
		{Rect: image.Rect(60, 0, 110, 20), Text: "   "},
		{Rect: image.Rect(0, 30, 50, 50), Err: errors.New("boom")},
		{Rect: image.Rect(60, 30, 110, 50), Text: "Art"},
	})

	require.Len(t, res.Schedule, 2)
	assert.Empty(t, res.Warning)
	assert.Equal(t, TextBlock{Text: "Math 9am", Position: Position{X: 0, Y: 0, Width: 50, Height: 20}}, res.Schedule[0])
	assert.Equal(t, TextBlock{Text: "Art", Position: Position{X: 60, Y: 30, Width: 50, Height: 20}}, res.Schedule[1])
}

func TestAssemble_Empty(t *testing.T) {
	res := Assemble(nil)
	assert.NotNil(t, res.Schedule)
	assert.Empty(t, res.Schedule)
	assert.Equal(t, WarningNoText, res.Warning)
	assert.False(t, res.Failed())
}

func TestResult_MarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		res  Result
		want string
	}{
		{
			name: "schedule",
			res:  Result{Schedule: []TextBlock{{Text: "Math", Position: Position{1, 2, 3, 4}}}},
			want: `{"schedule":[{"text":"Math","position":{"x":1,"y":2,"width":3,"height":4}}]}`,
		},
		{
			name: "zero value is a warning",
			res:  Result{},
			want: `{"warning":"no text extracted","schedule":[]}`,
		},
		{
			name: "error wins over schedule",
			res:  Result{Error: "File not found", Schedule: []TextBlock{{Text: "x"}}},
			want: `{"error":"File not found"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.res)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(data))
		})
	}
}

func TestErrorResult(t *testing.T) {
	tests := []struct {
		err  error
		kind Kind
		msg  string
	}{
		{fmt.Errorf("%w: a.png", imaging.ErrNotFound), KindNotFound, "File not found"},
		{fmt.Errorf("%w: bad header", imaging.ErrDecode), KindDecodeError, "Image processing failed: failed to read image file"},
		{fmt.Errorf("%w: 50x50", imaging.ErrTooSmall), KindTooSmall, "Image processing failed: image dimensions too small"},
		{errors.New("disk on fire"), KindUnexpectedFailure, "unexpected failure"},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			res := ErrorResult(tt.err)
			assert.True(t, res.Failed())
			assert.Equal(t, tt.kind, res.Kind())
			assert.Equal(t, tt.msg, res.Error)
			assert.ErrorIs(t, res.Err, tt.err)
		})
	}
}

func TestKindOf_Nil(t *testing.T) {
	assert.Equal(t, KindNone, KindOf(nil))
	assert.Equal(t, KindNone, Result{}.Kind())
	assert.Equal(t, KindUnexpectedFailure, Result{Error: "x"}.Kind())
}

func TestPosition_Rect(t *testing.T) {
	r := image.Rect(10, 20, 90, 60)
	assert.Equal(t, r, PositionOf(r).Rect())
}
