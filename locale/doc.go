/*
Package locale parses the numbers scan directives read: decimal, scientific, percent and spelled-out
numbers with the separators of a locale, and plain digit runs in a radix.

Parsers work on a span of UTF-16 code units and report how many of them they consumed. A parse
that consumes nothing yields the value 0.
*/
package locale

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'uscan.locale'
func tracer() tracing.Trace {
	return tracing.Select("uscan.locale")
}
