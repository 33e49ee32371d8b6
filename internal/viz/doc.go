// Package viz renders simulations in the terminal.
//
// [Canvas] is a Braille-based pixel canvas; [View] maps world
// coordinates onto it and draws body outlines and contact points.
// [Model] is a Bubble Tea program that steps a space in real time
// with a stats sidebar.
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	R     - Rebuild the scene
//	C     - Toggle contact markers
//	+/-   - Zoom
//	Q     - Quit
package viz
