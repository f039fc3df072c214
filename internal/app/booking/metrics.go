package booking

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	reservationsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "goodplatters",
		Name:      "reservations_submitted_total",
		Help:      "Reservation requests accepted from the public site.",
	})
	inquiriesSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "goodplatters",
		Name:      "inquiries_submitted_total",
		Help:      "Contact inquiries accepted from the public site.",
	})
)
