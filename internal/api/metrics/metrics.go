// Package metrics defines and registers all custom Prometheus metrics for the
// user management API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "usermgmt"

// RegistrationsTotal counts accounts created through self-service registration.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts created via registration.",
	},
)

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

// EmailVerificationsTotal counts verification-token consumption attempts.
// Label:
//   - result: "success" or "invalid_token"
var EmailVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "email_verifications_total",
		Help:      "Total number of email verification attempts, by result.",
	},
	[]string{"result"},
)

// StatusGateRejectionsTotal counts requests rejected by the status gate.
// Label:
//   - reason: "missing_identity", "not_found", "blocked", or "store_error"
var StatusGateRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "status_gate_rejections_total",
		Help:      "Total number of authenticated requests rejected by the status gate.",
	},
	[]string{"reason"},
)

// EmailsSentTotal counts verification email deliveries attempted by the mail
// queue workers.
// Label:
//   - result: "sent", "retried", or "dead_lettered"
var EmailsSentTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "emails_sent_total",
		Help:      "Total number of verification email delivery outcomes.",
	},
	[]string{"result"},
)

// EmailDeliveryDuration measures how long a single SMTP delivery attempt takes.
var EmailDeliveryDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "email_delivery_duration_seconds",
		Help:      "Duration of individual verification email delivery attempts.",
		Buckets:   prometheus.DefBuckets,
	},
)
