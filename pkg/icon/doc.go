// Package icon draws the terminal-window app icon.
//
// Two designs are available as a [Style]: [StyleLogo] (dark background, ring
// logo, cursor and prompt dots) and [StyleCursor] (blue background with a
// single prompt cursor). [ComputeLayout] derives all geometry from the pixel
// size alone, so one design renders consistently from 20px to 1024px.
// [Render] paints a layout onto a canvas, and [Set] returns the built-in
// tables of sizes and file names.
package icon
