package pipeline

import (
	"errors"

	"github.com/ironsheep/schedule-ocr-mcp/internal/imaging"
)

var (
	// ErrInvalidConfig is returned for invalid configuration values.
	ErrInvalidConfig = errors.New("pipeline: invalid configuration")

	// ErrUnexpected wraps failures that no earlier stage converted into a
	// typed error, including recovered panics.
	ErrUnexpected = errors.New("pipeline: unexpected failure")
)

// WarningNoText is the warning attached to a run that found no text.
const WarningNoText = "no text extracted"

// Kind classifies a pipeline failure.
type Kind int

const (
	KindNone Kind = iota
	KindNotFound
	KindDecodeError
	KindTooSmall
	// KindRecognitionFailure is recorded per region and never aborts a run.
	KindRecognitionFailure
	KindUnexpectedFailure
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindNotFound:
		return "NotFound"
	case KindDecodeError:
		return "DecodeError"
	case KindTooSmall:
		return "TooSmall"
	case KindRecognitionFailure:
		return "RecognitionFailure"
	default:
		return "UnexpectedFailure"
	}
}

// Message returns the caller-facing error text for k.
func (k Kind) Message() string {
	switch k {
	case KindNone:
		return ""
	case KindNotFound:
		return "File not found"
	case KindDecodeError:
		return "Image processing failed: failed to read image file"
	case KindTooSmall:
		return "Image processing failed: image dimensions too small"
	case KindRecognitionFailure:
		return "text recognition failed"
	default:
		return "unexpected failure"
	}
}

// KindOf classifies err. A nil error is KindNone; anything not recognized
// is KindUnexpectedFailure.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, imaging.ErrNotFound):
		return KindNotFound
	case errors.Is(err, imaging.ErrDecode):
		return KindDecodeError
	case errors.Is(err, imaging.ErrTooSmall):
		return KindTooSmall
	default:
		return KindUnexpectedFailure
	}
}
