// Package generate renders icon sets into an output directory.
//
// A [Generator] is bound to one existing directory, opened with [os.OpenRoot]
// so that every write stays inside it. [Generator.GenerateAll] renders and
// writes each [icon.Spec] in order. A failed write is logged and recorded in
// the [Result]; the remaining icons are still generated.
//
// Progress is reported to channels registered with [Generator.Subscribe].
// [Watch] re-runs a callback when a configuration file changes.
package generate
