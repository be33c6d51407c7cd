package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	permissionChecksTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "umoja_permission_checks_total",
		Help: "Total number of admin permission checks evaluated",
	})
	permissionDeniedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "umoja_permission_denied_total",
		Help: "Total number of admin actions denied by scope checks",
	})
	broadcastsDispatchedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "umoja_broadcasts_dispatched_total",
		Help: "Total number of broadcast messages dispatched to delivery channels",
	})
	auditEntriesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "umoja_audit_entries_total",
		Help: "Total number of audit log entries written",
	})
)

// Register registers Prometheus collectors. Call once at startup.
func Register(registry *prometheus.Registry) {
	registry.MustRegister(permissionChecksTotal, permissionDeniedTotal, broadcastsDispatchedTotal, auditEntriesTotal)
}

// IncPermissionCheck increments the evaluated permission checks counter.
func IncPermissionCheck() { permissionChecksTotal.Inc() }

// IncPermissionDenied increments the denied actions counter.
func IncPermissionDenied() { permissionDeniedTotal.Inc() }

// IncBroadcastDispatched increments the dispatched broadcasts counter.
func IncBroadcastDispatched() { broadcastsDispatchedTotal.Inc() }

// IncAuditEntry increments the written audit entries counter.
func IncAuditEntry() { auditEntriesTotal.Inc() }
