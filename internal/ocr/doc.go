// Package ocr recognizes the text inside one region of a schedule image.
//
// The Engine interface is the only thing the rest of the program depends on.
// The Tesseract implementation wraps the native library via gosseract/v2;
// tests substitute a fake engine.
//
// # Prerequisites
//
// Tesseract must be installed on the system and the binary built with cgo:
//   - Ubuntu/Debian: apt-get install tesseract-ocr libtesseract-dev
//   - macOS: brew install tesseract
//
// Language data files are required for each language:
//   - Ubuntu/Debian: apt-get install tesseract-ocr-eng (for English)
//   - Other languages: tesseract-ocr-<lang> packages
//
// Without cgo the package still builds, but NewTesseract returns
// ErrOCRNotEnabled and GetInfo reports OCR as unavailable.
//
// # Recognition Mode
//
// Each region is recognized as a single uniform block of text (page
// segmentation mode 6) using Tesseract's default engine mode, which picks the
// LSTM recognizer when its data is installed. RecognizeRegion upscales the
// crop 2x before recognition; small crops otherwise read poorly.
package ocr
