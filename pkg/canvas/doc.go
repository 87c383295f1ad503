// Package canvas provides an opaque RGB raster surface with the handful of
// shape primitives needed to draw icons. Drawing is delegated to
// [github.com/gogpu/gg].
package canvas
