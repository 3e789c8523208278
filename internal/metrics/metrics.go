// Package metrics exposes Prometheus collectors for the RPC surface and the
// ledger state observed by the last report.
package metrics

import (
	"context"
	"errors"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/mmynk/kaskos/internal/calculator"
)

const namespace = "kaskos"

// Metrics holds every collector the server registers.
type Metrics struct {
	rpcRequests *prometheus.CounterVec
	rpcDuration *prometheus.HistogramVec

	cashPosition     prometheus.Gauge
	membersByStatus  *prometheus.GaugeVec
	degradedRecords  prometheus.Gauge
	unrosteredPayers prometheus.Gauge
}

// New registers the collectors with reg. Pass prometheus.DefaultRegisterer
// in production and a fresh prometheus.NewRegistry() in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		rpcRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "RPC calls by procedure and result code.",
		}, []string{"procedure", "code"}),
		rpcDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "RPC latency by procedure.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure"}),
		cashPosition: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cash_position",
			Help:      "Contributions minus expenditures at the last report.",
		}),
		membersByStatus: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "members",
			Help:      "Roster members by dues status at the last report.",
		}, []string{"status"}),
		degradedRecords: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "degraded_records",
			Help:      "Records that needed defaults during the last snapshot.",
		}),
		unrosteredPayers: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "unrostered_contributors",
			Help:      "Contributors missing from the roster at the last report.",
		}),
	}
}

// Interceptor counts and times every unary RPC.
func (m *Metrics) Interceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			procedure := req.Spec().Procedure

			resp, err := next(ctx, req)

			m.rpcDuration.WithLabelValues(procedure).Observe(time.Since(start).Seconds())
			m.rpcRequests.WithLabelValues(procedure, codeOf(err)).Inc()
			return resp, err
		}
	}
}

// ObserveReport records ledger gauges from a freshly built report.
func (m *Metrics) ObserveReport(report *calculator.Report, degraded int) {
	m.cashPosition.Set(float64(report.Aggregate.CashPosition))
	m.degradedRecords.Set(float64(degraded))
	m.unrosteredPayers.Set(float64(len(report.Unrostered)))

	// Lifetime and period reports use different status sets.
	m.membersByStatus.Reset()
	for _, b := range report.PerMember {
		m.membersByStatus.WithLabelValues(string(b.Status)).Inc()
	}
	for _, b := range report.PeriodMembers {
		m.membersByStatus.WithLabelValues(string(b.Status)).Inc()
	}
}

func codeOf(err error) string {
	if err == nil {
		return "ok"
	}
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return connectErr.Code().String()
	}
	return connect.CodeUnknown.String()
}
