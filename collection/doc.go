// Package collection parses declarative script collections.
//
// A collection file declares a target operating system, a scripting
// definition, a tree of categories holding scripts, and a set of shared
// functions. [Load] decodes a YAML document into [CollectionData] and
// [Parse] validates it into an immutable [Collection] whose scripts carry
// fully compiled code and revert code.
//
// The individual parsers ([ParseScript], [ParseCategory], and
// [ParseFunctions]) are exported so that fragments of a collection can be
// validated on their own.
package collection
