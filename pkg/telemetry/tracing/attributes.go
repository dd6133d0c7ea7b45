package tracing

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Attribute keys set on build spans.
const (
	AttrBuildID   = attribute.Key("stlc.build_id")
	AttrSource    = attribute.Key("stlc.source")
	AttrErrorKind = attribute.Key("stlc.error_kind")
	AttrNodes     = attribute.Key("stlc.nodes")
	AttrRootKind  = attribute.Key("stlc.root")
)

// BuildStart returns the start option carrying the build identity.
func BuildStart(buildID, source string) trace.SpanStartOption {
	return trace.WithAttributes(
		AttrBuildID.String(buildID),
		AttrSource.String(source),
	)
}

// SetBuildResult records a successful build on span.
func SetBuildResult(span trace.Span, rootKind string, nodes int) {
	span.SetAttributes(
		AttrRootKind.String(rootKind),
		AttrNodes.Int(nodes),
	)
	SetStatus(span, nil)
}

// SetBuildError records a failed build on span.
func SetBuildError(span trace.Span, err error, kind string) {
	span.SetAttributes(AttrErrorKind.String(kind))
	SetStatus(span, err)
}
