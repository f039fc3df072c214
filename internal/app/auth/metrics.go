package auth

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var failedLogins = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "goodplatters",
	Name:      "admin_login_failures_total",
	Help:      "Rejected admin login attempts.",
})
