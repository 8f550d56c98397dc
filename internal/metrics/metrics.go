// Package metrics defines and registers the custom Prometheus metrics
// for the Tourvia API. It is the single source of truth for metric
// names, labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tourvia"

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// SessionsIssuedTotal counts sessions created at login.
var SessionsIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_issued_total",
		Help:      "Total number of session tokens issued.",
	},
)

// AvailabilityComputationsTotal counts availability queries.
// Label:
//   - result: "ok", "invalid_window" or "error"
var AvailabilityComputationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "availability_computations_total",
		Help:      "Total number of availability computations, by result.",
	},
	[]string{"result"},
)

// OrdersCreatedTotal counts newly placed orders.
// Label:
//   - resource_type: "attraction", "accommodation", "restaurant" or "guide"
var OrdersCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_created_total",
		Help:      "Total number of orders created, by resource type.",
	},
	[]string{"resource_type"},
)
