// Package canvas provides driven.Canvas implementations.
//
//   - Recorder keeps the elements it receives, for text output and tests.
//   - Raster draws elements onto an RGBA page using golang.org/x/image/vector
//     for shapes and a scaled basicfont face for text labels.
package canvas
