// Package metrics defines and registers the custom Prometheus metrics
// for the auth API. It is the single source of truth for metric names,
// labels, and help strings; everything registers with the default
// registry at package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "authapi"

// RegistrationsTotal counts registration attempts.
// Label:
//   - result: "created", "duplicate", "invalid" or "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials", "throttled" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// SessionsVerifiedTotal counts cookie verifications on protected
// requests.
// Label:
//   - outcome: "valid", "no_token", "invalid" or "expired"
var SessionsVerifiedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_verified_total",
		Help:      "Total number of session cookie verifications, by outcome.",
	},
	[]string{"outcome"},
)

// AccessDeniedTotal counts role-policy denials.
// Label:
//   - required_role: the minimum role the endpoint demanded
var AccessDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_denied_total",
		Help:      "Total number of requests denied by the role policy.",
	},
	[]string{"required_role"},
)
