package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	TransactionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_transactions_total",
			Help: "Committed ledger transactions",
		},
		[]string{"kind"}, // transfer|topup
	)
	TransactionsFailed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ledger_transactions_failed_total",
			Help: "Ledger operations that did not commit",
		},
	)
	WorkerQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "worker_queue_depth",
			Help: "Current worker queue depth",
		},
	)
)

var Handler = promhttp.Handler

func Init() {
	prometheus.MustRegister(TransactionsTotal)
	prometheus.MustRegister(TransactionsFailed)
	prometheus.MustRegister(WorkerQueueDepth)
}
