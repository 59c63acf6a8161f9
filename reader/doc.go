package reader

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'uscan.reader'
func tracer() tracing.Trace {
	return tracing.Select("uscan.reader")
}
