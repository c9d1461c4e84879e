package backend

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	transitionCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "punch",
		Subsystem: "backend",
		Name:      "transitions_total",
		Help:      "The total number of applied state transitions",
	}, []string{"transition"})

	reviewCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "punch",
		Subsystem: "backend",
		Name:      "reviews_total",
		Help:      "The total number of reviewed correction requests",
	}, []string{"decision", "adjusted"})
)
