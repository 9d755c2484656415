package detection

import (
	"fmt"
	"image"
)

// Retrieval selects which connected regions of a mask Extract reports.
type Retrieval string

const (
	// RetrievalExternal reports the outermost foreground components only.
	// Components nested inside another component's hole are not reported,
	// and holes are never reported.
	RetrievalExternal Retrieval = "external"

	// RetrievalCells reports the holes: background regions completely
	// enclosed by foreground, such as the cells of a ruled table.
	RetrievalCells Retrieval = "cells"
)

// ParseRetrieval validates a retrieval mode name. The empty string selects
// RetrievalExternal.
func ParseRetrieval(s string) (Retrieval, error) {
	switch Retrieval(s) {
	case "", RetrievalExternal:
		return RetrievalExternal, nil
	case RetrievalCells:
		return RetrievalCells, nil
	default:
		return "", fmt.Errorf("unknown retrieval mode %q", s)
	}
}

type point struct {
	x, y int
}

var (
	neighbors4 = []point{{0, -1}, {-1, 0}, {1, 0}, {0, 1}}
	neighbors8 = []point{{-1, -1}, {0, -1}, {1, -1}, {-1, 0}, {1, 0}, {-1, 1}, {0, 1}, {1, 1}}
)

// Extract traces the connected regions of a binary mask and returns the
// axis-aligned bounding rectangle of each, in raster order of each region's
// first pixel.
//
// Foreground is 8-connected and background is 4-connected, the usual dual
// pairing that keeps a diagonal stroke from leaking the inside of a shape
// to the outside.
//
// Rectangles are in mask coordinates. No size filtering happens here.
func Extract(mask *image.Gray, mode Retrieval) []image.Rectangle {
	b := mask.Bounds()
	g := &grid{w: b.Dx(), h: b.Dy()}
	if g.w == 0 || g.h == 0 {
		return nil
	}
	g.set = make([]bool, g.w*g.h)
	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			g.set[y*g.w+x] = mask.Pix[mask.PixOffset(b.Min.X+x, b.Min.Y+y)] != 0
		}
	}

	outside := g.outsideBackground()

	var rects []image.Rectangle
	if mode == RetrievalCells {
		rects = g.holes(outside)
	} else {
		rects = g.externalComponents(outside)
	}

	for i := range rects {
		rects[i] = rects[i].Add(b.Min)
	}
	return rects
}

// grid is a mask flattened to booleans in row-major order.
type grid struct {
	w, h int
	set  []bool
}

func (g *grid) inside(x, y int) bool {
	return x >= 0 && x < g.w && y >= 0 && y < g.h
}

// floodFill labels every pixel reachable from start whose set value equals
// want, using the given connectivity. It returns the bounding rectangle of
// the labeled region and calls visit for each pixel.
//
// The fill is iterative to stay safe on large regions.
func (g *grid) floodFill(start point, want bool, conn []point, labels []int32, label int32, visit func(p point)) image.Rectangle {
	minX, minY := start.x, start.y
	maxX, maxY := start.x, start.y

	labels[start.y*g.w+start.x] = label
	stack := []point{start}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if visit != nil {
			visit(p)
		}
		minX, maxX = min(minX, p.x), max(maxX, p.x)
		minY, maxY = min(minY, p.y), max(maxY, p.y)

		for _, d := range conn {
			nx, ny := p.x+d.x, p.y+d.y
			if !g.inside(nx, ny) {
				continue
			}
			i := ny*g.w + nx
			if labels[i] != 0 || g.set[i] != want {
				continue
			}
			labels[i] = label
			stack = append(stack, point{nx, ny})
		}
	}

	return image.Rect(minX, minY, maxX+1, maxY+1)
}

// outsideBackground marks background pixels 4-connected to the image border.
func (g *grid) outsideBackground() []bool {
	labels := make([]int32, g.w*g.h)
	outside := make([]bool, g.w*g.h)
	mark := func(p point) { outside[p.y*g.w+p.x] = true }

	seed := func(x, y int) {
		i := y*g.w + x
		if !g.set[i] && labels[i] == 0 {
			g.floodFill(point{x, y}, false, neighbors4, labels, 1, mark)
		}
	}
	for x := 0; x < g.w; x++ {
		seed(x, 0)
		seed(x, g.h-1)
	}
	for y := 0; y < g.h; y++ {
		seed(0, y)
		seed(g.w-1, y)
	}
	return outside
}

// externalComponents returns the foreground components that touch the
// image border or the outside background.
func (g *grid) externalComponents(outside []bool) []image.Rectangle {
	labels := make([]int32, g.w*g.h)
	var rects []image.Rectangle
	var label int32

	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			i := y*g.w + x
			if !g.set[i] || labels[i] != 0 {
				continue
			}
			label++
			external := false
			rect := g.floodFill(point{x, y}, true, neighbors8, labels, label, func(p point) {
				if external {
					return
				}
				if p.x == 0 || p.y == 0 || p.x == g.w-1 || p.y == g.h-1 {
					external = true
					return
				}
				for _, d := range neighbors4 {
					if outside[(p.y+d.y)*g.w+p.x+d.x] {
						external = true
						return
					}
				}
			})
			if external {
				rects = append(rects, rect)
			}
		}
	}
	return rects
}

// holes returns the background components not connected to the border.
func (g *grid) holes(outside []bool) []image.Rectangle {
	labels := make([]int32, g.w*g.h)
	var rects []image.Rectangle
	var label int32

	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			i := y*g.w + x
			if g.set[i] || outside[i] || labels[i] != 0 {
				continue
			}
			label++
			rects = append(rects, g.floodFill(point{x, y}, false, neighbors4, labels, label, nil))
		}
	}
	return rects
}
