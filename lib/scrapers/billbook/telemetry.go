package billbook

import (
	"github.com/suryaprakash-sp/mybillbook-scrape/lib/restyutil"

	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("scrapers/billbook")

var restyInstrumentOutput restyutil.InstrumentOutput

// SetRestyInstrumentOutput enables per-request HTTP transcript dumps
// for clients created after the call.
func SetRestyInstrumentOutput(out restyutil.InstrumentOutput) {
	restyInstrumentOutput = out
}
