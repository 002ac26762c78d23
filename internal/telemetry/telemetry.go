// Package telemetry provides OpenTelemetry tracing for calculation
// operations. Without a registered global tracer provider the spans are
// no-ops, so instrumented paths cost nothing in the default setup.
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// tracerName identifies this instrumentation library.
const tracerName = "github.com/agbru/linecalc"

// Tracer returns the application tracer from the global provider.
func Tracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

// StartCalculation starts a span covering the parse-and-evaluate handling
// of one input line. The raw line itself is not recorded, only its length,
// to keep spans free of user input.
func StartCalculation(ctx context.Context, source string, rawLen int) (context.Context, trace.Span) {
	return Tracer().Start(ctx, "linecalc.calculate",
		trace.WithAttributes(
			attribute.String("calc.source", source),
			attribute.Int("calc.input_length", rawLen),
		),
	)
}

// EndCalculation finalizes a calculation span with the operator used and
// the outcome.
func EndCalculation(span trace.Span, operator string, err error) {
	if operator != "" {
		span.SetAttributes(attribute.String("calc.operator", operator))
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
