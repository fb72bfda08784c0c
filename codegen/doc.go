// Package codegen assembles compiled script code into a complete script
// file for a target scripting dialect.
//
// A [Dialect] knows how to write comments, code, section headers, and
// console output in one language. A [Builder] frames each script fragment
// with a section header using its dialect, and a [Generator] wraps the
// result in a collection's start and end code.
package codegen
