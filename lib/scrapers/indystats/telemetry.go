package indystats

import (
	"github.com/TMCabrera/indycargo/lib/restyutil"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("indycargo.lib.scrapers.indystats")

var restyInstrumentOutput restyutil.InstrumentOutput

// SetRestyInstrumentOutput routes full request/response dumps of
// clients constructed after this call to `out`; used by the CLI in
// verbose mode.
func SetRestyInstrumentOutput(out restyutil.InstrumentOutput) {
	restyInstrumentOutput = out
}
