// Package metrics defines and registers all custom Prometheus metrics for the
// ShopFlow storefront API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry at import time
// via promauto; the /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "shopflow"

// ── Checkout metrics ──────────────────────────────────────────────────────────

// CheckoutValidationsTotal counts checkout validation requests by outcome.
// Label:
//   - outcome: "valid", "stock_conflict", "not_found", "malformed", "error"
var CheckoutValidationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checkout_validations_total",
		Help:      "Total number of checkout validation requests, by outcome.",
	},
	[]string{"outcome"},
)

// OrdersPlacedTotal counts successfully committed orders.
var OrdersPlacedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_placed_total",
		Help:      "Total number of orders committed.",
	},
)

// OrderValue observes the server-computed total of each committed order.
var OrderValue = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "order_value",
		Help:      "Distribution of committed order totals, in currency units.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500},
	},
)

// StockConflictsTotal counts commit-time stock guard failures: checkouts that
// validated but lost the race for the last units before the decrement.
var StockConflictsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stock_conflicts_total",
		Help:      "Total number of order commits aborted by the stock guard.",
	},
)

// ── Cart metrics ──────────────────────────────────────────────────────────────

// CartSnapshotRestoresTotal counts cart snapshot loads by how the stored
// payload was handled.
// Label:
//   - result: "current" (already at the current schema version),
//     "migrated" (legacy shape upgraded on read), or
//     "reset" (unparseable payload discarded and replaced by an empty cart)
var CartSnapshotRestoresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_snapshot_restores_total",
		Help:      "Total number of cart snapshot loads, by restore result.",
	},
	[]string{"result"},
)
