// Package expression substitutes parameter placeholders in code templates.
//
// A placeholder names a parameter with a leading dollar sign inside double
// braces:
//
//	echo {{ $message }}
//
// A placeholder may pipe its value through one or more functions, evaluated
// left to right by [github.com/expr-lang/expr]:
//
//	echo "{{ $message | escapeDoubleQuotes }}"
//	export PATH="{{ $path | pathPrefix(":", "/opt/bin") }}"
//	echo {{ $name | orDefault("world") | upper }}
//
// Every expr-lang builtin that accepts a string as its first argument (upper,
// lower, trim, replace, ...) is available as a pipe, along with the functions
// listed in [Pipes].
//
// A placeholder whose parameter has no binding is an error. Templates with no
// placeholders are returned unchanged.
package expression
