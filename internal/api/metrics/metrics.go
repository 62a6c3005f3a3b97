// Package metrics defines the custom Prometheus metrics for the identity
// service. It is the single source of truth for metric names, labels, and
// help strings; counters are registered with the default registry at import
// time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "identity"

// LoginAttemptsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "invalid_credentials", "locked", or "disabled"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, labelled by outcome.",
	},
	[]string{"result"},
)

// LockoutRejectionsTotal counts login attempts rejected because the account
// was locked at the time of the attempt.
var LockoutRejectionsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "lockout_rejections_total",
		Help:      "Total number of login attempts rejected by an active lockout.",
	},
)

// RegistrationsTotal counts account registrations.
// Label:
//   - role: the role assigned at registration ("Admin" or "User")
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registered accounts, by assigned role.",
	},
	[]string{"role"},
)

// AuditEntriesTotal counts audit-trail writes.
// Label:
//   - action: REGISTER, INSERT, UPDATE, DELETE, or REVERT
var AuditEntriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_entries_total",
		Help:      "Total number of audit log entries written, by action.",
	},
	[]string{"action"},
)

// RevertsTotal counts successful point-in-time reverts of user records.
var RevertsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reverts_total",
		Help:      "Total number of user records reverted to a prior version.",
	},
)
