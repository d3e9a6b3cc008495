// Package viz is the terminal presentation of the demos, built on Bubble Tea.
//
//   - [Menu]: demo picker, the root program of the CLI
//   - [LiveModel]: one running demo with readouts, toasts and a results panel
//   - [Canvas]: Braille pixel buffer the scenes are drawn on
//   - [Follow]: spring camera that keeps the vehicle in view on the track
//
// # Key Bindings
//
//	S/Enter - Start, restarting from zero
//	Space   - Pause/Resume
//	R       - Reset
//	Tab     - Select parameter
//	Up/Down - Adjust parameter
//	T       - Cycle color themes
//	Esc     - Back to the menu
package viz
