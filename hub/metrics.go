package hub

import "github.com/prometheus/client_golang/prometheus"

// Engine-level metrics. Global counters only, no per-account labels: account
// and asset identifiers are unbounded and would blow up cardinality.
var (
	configuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "streams_configures_total",
		Help: "Total successful stream reconfigurations",
	})
	settlesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "streams_settles_total",
		Help: "Total successful settlement calls",
	})
	settledCyclesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "streams_settled_cycles_total",
		Help: "Total cycles consumed by settlement",
	})
	settledAmountTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "streams_settled_amount_total",
		Help: "Total base units made receivable by settlement",
	})
)

func init() {
	prometheus.MustRegister(configuresTotal, settlesTotal, settledCyclesTotal, settledAmountTotal)
}
