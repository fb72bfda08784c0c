// Package function defines shared functions and expands calls to them into
// concrete code.
//
// A [SharedFunction] is a named, parameterized unit of code stored in a
// [Registry]. Its body is either inline (a do template and an optional
// revert template) or composite (a sequence of [Call] values to other
// functions whose argument expressions may reference the caller's
// parameters). A [Compiler] resolves a call sequence against a registry,
// recursively expanding composite bodies depth-first and substituting
// arguments with an [expression.Compiler], and merges the results into a
// single [CompiledCode].
package function
