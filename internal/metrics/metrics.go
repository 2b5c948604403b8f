package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PushesTotal counts push requests by outcome ("ok", "full", "rejected")
	PushesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stackd_pushes_total",
			Help: "Total number of push requests by outcome",
		},
		[]string{"status"},
	)

	// PopsTotal counts pop requests by outcome ("ok", "empty")
	PopsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stackd_pops_total",
			Help: "Total number of pop requests by outcome",
		},
		[]string{"status"},
	)

	// OperationDurationSeconds measures the latency of stack operations
	OperationDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "stackd_operation_duration_seconds",
			Help:    "Duration of stack operations",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	// PayloadBytesTotal tracks payload bytes moved through the stack
	PayloadBytesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stackd_payload_bytes_total",
			Help: "Total payload bytes pushed and popped",
		},
		[]string{"operation"},
	)
)

// StackDepth tracks the number of currently claimed slots
var StackDepth = promauto.NewGauge(
	prometheus.GaugeOpts{
		Name: "stackd_stack_depth",
		Help: "Current number of claimed slots in the stack",
	},
)

// StackCapacity reports the fixed capacity the server was started with
var StackCapacity = promauto.NewGauge(
	prometheus.GaugeOpts{
		Name: "stackd_stack_capacity",
		Help: "Fixed capacity of the stack",
	},
)
