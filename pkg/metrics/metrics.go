package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	AdminLogins = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "contos", Name: "admin_logins_total", Help: "Admin login attempts by result."},
		[]string{"result"},
	)
	GateRejected = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "contos", Name: "admin_gate_rejected_total", Help: "Requests rejected by the admin gate."},
	)
	StoreErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "contos", Name: "store_errors_total", Help: "Document store failures by collection and operation."},
		[]string{"collection", "op"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(AdminLogins)
	reg.MustRegister(GateRejected)
	reg.MustRegister(StoreErrors)
}
