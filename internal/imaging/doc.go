// Package imaging provides the raster-level operations of the schedule pipeline.
//
// This package loads schedule images from disk or memory, enforces the minimum
// legible size, crops and upscales regions ahead of text recognition, samples
// region fill colors, and renders the diagnostic overlay. All operations work
// with standard Go image.Image types and use a coordinate system where (0,0) is
// the top-left corner, X increases rightward, and Y increases downward.
//
// # Coordinate System
//
// Regions are image.Rectangle values: Min is inclusive, Max is exclusive, so a
// region's width and height are Dx() and Dy().
//
// # Ownership
//
// Load and LoadBytes return a freshly decoded image on every call. Nothing in
// this package caches or shares decoded images, so each pipeline run owns its
// raster exclusively. DrawRegions never mutates its input; it draws onto a copy.
//
// # Error Handling
//
// Loading failures are reported through sentinel errors that callers match
// with errors.Is:
//   - ErrNotFound: the source path does not exist
//   - ErrDecode: the bytes are not a PNG, JPEG, or GIF image
//   - ErrTooSmall: either dimension is below the configured minimum
package imaging
