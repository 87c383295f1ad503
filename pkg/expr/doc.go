// Package expr provides CEL (Common Expression Language) functionality
// for selecting icon specs.
//
// Expressions have access to variables:
//   - `size` (int): The icon edge length in pixels
//   - `filename` (string): The output file name
//
// And to the functions:
//   - pathBase(string), pathExt(string): file name helpers
//   - scale(string): the "@Nx" factor in a file name, 1 if absent
//   - points(string, int): a pixel size divided by the file name's scale
package expr
