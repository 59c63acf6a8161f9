/*
Package scan reads formatted input from a reader.Stream the way scanf does, directed by a template
of literal text and %-directives.

Literal template text must match the input codepoint by codepoint; a mismatch ends the scan
quietly. Each directive is looked up by its letter in a fixed table and handed to its handler,
which reads the input and binds the result to the next argument:

	%s %S      narrow / UTF-16 string up to pad or whitespace
	%c %C      one narrow / UTF-16 character
	%d %i      decimal integer
	%u         unsigned integer
	%x %X %o   hexadecimal / octal integer
	%p         pointer, hexadecimal
	%f         decimal number
	%e %E      scientific number
	%g %G      decimal or scientific, whichever reads further
	%P         percentage
	%V         spelled-out number
	%[set]     codepoints of a set pattern
	%n         conversions so far
	%%         a literal percent sign

Letters the table does not know are skipped without effect. The scan returns the number of
arguments bound.
*/
package scan

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'uscan.scan'
func tracer() tracing.Trace {
	return tracing.Select("uscan.scan")
}
