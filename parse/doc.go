// Package parse provides plist parsing support.
//
// Parse accepts a whole document in any of the four wire formats (XML,
// binary, OpenStep, JSON) and produces an ir.Node tree. Parsing is
// all-or-nothing: on error no tree is returned, never a partial one.
package parse
