/*
Package lex parses scan templates: literal text interleaved with %-directives of the form

	%[n$][*][(XXXX)][width][h|l|ll|L]letter

where (XXXX) gives the pad character as four hex digits followed by one ignored terminator.
*/
package lex

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'uscan.lex'
func tracer() tracing.Trace {
	return tracing.Select("uscan.lex")
}
