package detection

import (
	"image"
	"sort"
)

// Filter splits rects into those at least minWidth wide and minHeight tall
// and those that are smaller. Input order is preserved in both slices.
func Filter(rects []image.Rectangle, minWidth, minHeight int) (kept, dropped []image.Rectangle) {
	kept = make([]image.Rectangle, 0, len(rects))
	for _, r := range rects {
		if r.Dx() < minWidth || r.Dy() < minHeight {
			dropped = append(dropped, r)
			continue
		}
		kept = append(kept, r)
	}
	return kept, dropped
}

// ReadingOrderLess reports whether a precedes b top-to-bottom, then
// left-to-right.
func ReadingOrderLess(a, b image.Rectangle) bool {
	if a.Min.Y != b.Min.Y {
		return a.Min.Y < b.Min.Y
	}
	return a.Min.X < b.Min.X
}

// SortReadingOrder sorts rects in place by ReadingOrderLess.
func SortReadingOrder(rects []image.Rectangle) {
	sort.Slice(rects, func(i, j int) bool {
		return ReadingOrderLess(rects[i], rects[j])
	})
}

// FilterSort drops undersized rectangles and returns the survivors in
// reading order. rects is not modified.
func FilterSort(rects []image.Rectangle, minWidth, minHeight int) []image.Rectangle {
	kept, _ := Filter(rects, minWidth, minHeight)
	SortReadingOrder(kept)
	return kept
}
