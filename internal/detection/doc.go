// Package detection finds the rectangular regions of a schedule image that
// are likely to hold one text item each.
//
// Detection runs in three steps, each a pure function of its input:
//
//  1. A Detector turns the image into a binary mask (0 or 255 per pixel).
//     Two strategies are provided: TableLineDetector keeps the ruled lines of
//     a table, ColorBlockDetector keeps saturated color tiles.
//  2. Extract traces the connected regions of the mask into bounding
//     rectangles.
//  3. FilterSort drops rectangles below a minimum size and orders the rest
//     top-to-bottom, then left-to-right.
//
// # Morphology
//
// Erode, Dilate, Open and Close operate on masks with rectangular structuring
// elements (Kernel). Pixels outside the mask never influence the result, so
// regions touching the image edge are not eaten away by erosion.
//
// # Coordinate System
//
// All coordinates use the standard image convention:
//   - Origin (0, 0) at top-left corner
//   - X increases rightward
//   - Y increases downward
//   - Rectangles use inclusive top-left and exclusive bottom-right
//
// Masks produced by detectors always start at (0, 0), whatever the bounds of
// the source image.
//
// # Limitations
//
// The table strategy needs ruled lines at least LineLength pixels long; a
// borderless table produces an empty mask. The color strategy treats every
// saturated pixel as part of a block, so colorful photographs produce noisy
// masks. Neither strategy handles rotated layouts.
package detection
