// Package metrics declares the Prometheus counters of the service. They are
// registered on the default registry and exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersPlacedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "parcel_orders_placed_total",
			Help: "Total number of orders placed",
		},
		[]string{"service", "billing_timing"},
	)

	OrderEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "parcel_order_events_total",
			Help: "Total number of order history events reported",
		},
		[]string{"event"},
	)

	BillsIssuedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "parcel_bills_issued_total",
			Help: "Total number of bills issued",
		},
		[]string{"kind"},
	)

	PaymentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "parcel_payments_total",
			Help: "Total number of bill payment attempts",
		},
		[]string{"method", "result"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "parcel_http_requests_total",
			Help: "Total number of HTTP requests served",
		},
		[]string{"method", "route", "status"},
	)

	JobRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "parcel_job_runs_total",
			Help: "Total number of scheduled job runs",
		},
		[]string{"job", "result"},
	)
)

const (
	ResultAccepted = "accepted"
	ResultRejected = "rejected"
	ResultSuccess  = "success"
	ResultFailure  = "failure"
)

// Result maps an error to the success or failure label.
func Result(err error) string {
	if err != nil {
		return ResultFailure
	}
	return ResultSuccess
}
