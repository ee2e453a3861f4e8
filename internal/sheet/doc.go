// Package sheet implements the resizable bottom sheet: position clamping,
// snap-point resolution and the drag gesture state machine that drives a
// ports.Panel.
//
// Sizes are absolute (rows, pixels) and snap points are fractions of the
// container extent. Every drag-move applies its size synchronously; nothing
// in this package blocks or defers work.
package sheet
