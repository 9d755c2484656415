package detection

import (
	"fmt"
	"image"
	"strconv"
	"strings"
)

// Kernel is a rectangular structuring element.
//
// Kernels marshal to and from text as "WxH" (e.g. "40x1"), which is how they
// appear in configuration files.
type Kernel struct {
	Width  int
	Height int
}

// String returns the kernel as "WxH".
func (k Kernel) String() string {
	return fmt.Sprintf("%dx%d", k.Width, k.Height)
}

// ParseKernel parses a "WxH" kernel size.
func ParseKernel(s string) (Kernel, error) {
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return Kernel{}, fmt.Errorf("invalid kernel %q: expected WxH", s)
	}
	width, err := strconv.Atoi(w)
	if err != nil {
		return Kernel{}, fmt.Errorf("invalid kernel width %q: %w", w, err)
	}
	height, err := strconv.Atoi(h)
	if err != nil {
		return Kernel{}, fmt.Errorf("invalid kernel height %q: %w", h, err)
	}
	if width < 1 || height < 1 {
		return Kernel{}, fmt.Errorf("invalid kernel %q: dimensions must be positive", s)
	}
	return Kernel{Width: width, Height: height}, nil
}

// MarshalText implements encoding.TextMarshaler.
func (k Kernel) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kernel) UnmarshalText(text []byte) error {
	parsed, err := ParseKernel(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Erode shrinks the foreground of a binary mask: a pixel stays set only if
// every pixel under the kernel is set. Pixels outside the mask never erode
// their neighbours.
func Erode(mask *image.Gray, k Kernel, iterations int) *image.Gray {
	return morph(mask, k, iterations, true)
}

// Dilate grows the foreground of a binary mask: a pixel becomes set if any
// pixel under the reflected kernel is set.
func Dilate(mask *image.Gray, k Kernel, iterations int) *image.Gray {
	return morph(mask, k, iterations, false)
}

// Open erodes then dilates, each iterations times. The result is always a
// subset of the input.
func Open(mask *image.Gray, k Kernel, iterations int) *image.Gray {
	return Dilate(Erode(mask, k, iterations), k, iterations)
}

// Close dilates then erodes, each iterations times.
func Close(mask *image.Gray, k Kernel, iterations int) *image.Gray {
	return Erode(Dilate(mask, k, iterations), k, iterations)
}

// Max returns the pixel-wise maximum of two masks with identical bounds.
func Max(a, b *image.Gray) *image.Gray {
	bounds := a.Bounds()
	dst := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			va := a.Pix[a.PixOffset(x, y)]
			vb := b.Pix[b.PixOffset(x, y)]
			dst.Pix[dst.PixOffset(x, y)] = max(va, vb)
		}
	}
	return dst
}

// morph applies a rectangular erosion or dilation. A rectangle is separable,
// so each iteration is one horizontal pass of Width followed by one vertical
// pass of Height.
func morph(mask *image.Gray, k Kernel, iterations int, erode bool) *image.Gray {
	if iterations < 1 {
		iterations = 1
	}
	out := mask
	for i := 0; i < iterations; i++ {
		out = pass(out, k.Width, true, erode)
		out = pass(out, k.Height, false, erode)
	}
	if out == mask {
		out = cloneGray(mask)
	}
	return out
}

// pass runs a 1-D window of length n along every row (horizontal) or column
// of src, counting set pixels with a running prefix sum.
//
// The anchor sits at n/2. Erosion looks at offsets [-n/2, n-1-n/2]; dilation
// looks at the reflected range so that Open never adds pixels.
func pass(src *image.Gray, n int, horizontal, erode bool) *image.Gray {
	if n <= 1 {
		return src
	}

	b := src.Bounds()
	lines, length := b.Dy(), b.Dx()
	if !horizontal {
		lines, length = b.Dx(), b.Dy()
	}
	point := func(line, i int) (int, int) {
		if horizontal {
			return b.Min.X + i, b.Min.Y + line
		}
		return b.Min.X + line, b.Min.Y + i
	}

	before, after := n/2, n-1-n/2
	if !erode {
		before, after = after, before
	}

	dst := image.NewGray(b)
	prefix := make([]int, length+1)
	for line := 0; line < lines; line++ {
		for i := 0; i < length; i++ {
			prefix[i+1] = prefix[i]
			if src.Pix[src.PixOffset(point(line, i))] != 0 {
				prefix[i+1]++
			}
		}
		for i := 0; i < length; i++ {
			lo := max(i-before, 0)
			hi := min(i+after+1, length)
			count := prefix[hi] - prefix[lo]

			set := count > 0
			if erode {
				set = count == hi-lo
			}
			if set {
				dst.Pix[dst.PixOffset(point(line, i))] = 255
			}
		}
	}
	return dst
}

func cloneGray(src *image.Gray) *image.Gray {
	dst := image.NewGray(src.Bounds())
	for y := src.Bounds().Min.Y; y < src.Bounds().Max.Y; y++ {
		for x := src.Bounds().Min.X; x < src.Bounds().Max.X; x++ {
			dst.Pix[dst.PixOffset(x, y)] = src.Pix[src.PixOffset(x, y)]
		}
	}
	return dst
}
