// Package viz is the terminal view of a scene.
//
// The live view draws every frame onto a braille [Canvas] inside a Bubble Tea
// program, themed from the scene's palette with lipgloss:
//
//   - [Model]: the live view of one composed scene
//   - [NewPicker]: a preset and seed menu that opens a live view
//   - [Canvas]: Braille-based pixel canvas, 2x4 dots per cell
//
// # Key Bindings
//
//	Space - Pause/Resume
//	T     - Cycle palettes
//	A     - Toggle grid arrows
//	G     - Start/stop GIF recording
//	?     - Show help overlay
//	Q     - Quit
//
// # Recording
//
// G renders frames at full resolution through the raster renderer and keeps
// them in a GIF export under the data directory. A recording stops itself
// at the configured frame limit.
package viz
