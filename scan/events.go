package scan

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for scan lifecycle events.
var (
	SignalScanStart    = capitan.NewSignal("uscan.scan.start", "Scan beginning")
	SignalScanComplete = capitan.NewSignal("uscan.scan.complete", "Scan finished")
)

// Keys for scan event fields.
var (
	KeyTemplate  = capitan.NewStringKey("template")
	KeyConverted = capitan.NewIntKey("converted")
	KeyStop      = capitan.NewStringKey("stop")
	KeyConsumed  = capitan.NewIntKey("consumed")
	KeyDuration  = capitan.NewDurationKey("duration")
	KeyError     = capitan.NewErrorKey("error")
)

func emitScanStart(ctx context.Context, template string) {
	capitan.Emit(ctx, SignalScanStart,
		KeyTemplate.Field(template),
	)
}

func emitScanComplete(ctx context.Context, template string, res Result, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyTemplate.Field(template),
		KeyConverted.Field(res.Count),
		KeyStop.Field(res.Stop.String()),
		KeyConsumed.Field(res.Consumed),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalScanComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalScanComplete, fields...)
	}
}
