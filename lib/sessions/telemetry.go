package sessions

import "go.opentelemetry.io/otel"

var tracer = otel.Tracer("indycargo.lib.sessions")
