// Package render turns scene frames into pictures: an antialiased raster
// (PNG and GIF frames), an SVG document, and a scoped GIF recording session.
//
// Frames are in normalised [-1, 1] coordinates; the renderer maps them onto
// a square canvas with the y axis pointing down.
package render
