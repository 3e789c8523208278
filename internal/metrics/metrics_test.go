package metrics

import (
	"context"
	"errors"
	"testing"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/mmynk/kaskos/internal/calculator"
)

func TestObserveReport(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveReport(&calculator.Report{
		Mode:      calculator.ModeLifetime,
		Aggregate: calculator.Aggregate{TotalIn: 300, TotalOut: 120, CashPosition: 180},
		PerMember: []calculator.MemberBalance{
			{MemberName: "A", Status: calculator.StatusDelinquent},
			{MemberName: "B", Status: calculator.StatusDelinquent},
			{MemberName: "C", Status: calculator.StatusSurplus},
		},
		Unrostered: []string{"Ghost"},
	}, 2)

	if got := testutil.ToFloat64(m.cashPosition); got != 180 {
		t.Errorf("cash_position = %v, want 180", got)
	}
	if got := testutil.ToFloat64(m.degradedRecords); got != 2 {
		t.Errorf("degraded_records = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.unrosteredPayers); got != 1 {
		t.Errorf("unrostered_contributors = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.membersByStatus.WithLabelValues("DELINQUENT")); got != 2 {
		t.Errorf("members{DELINQUENT} = %v, want 2", got)
	}

	// A period report replaces the lifetime labels.
	m.ObserveReport(&calculator.Report{
		Mode: calculator.ModePeriod,
		PeriodMembers: []calculator.PeriodBalance{
			{MemberName: "A", Status: calculator.PeriodPaid},
		},
	}, 0)
	if got := testutil.CollectAndCount(m.membersByStatus); got != 1 {
		t.Errorf("expected 1 status series after reset, got %d", got)
	}
}

func TestInterceptor(t *testing.T) {
	m := New(prometheus.NewRegistry())
	interceptor := m.Interceptor()

	tests := []struct {
		name string
		err  error
		code string
	}{
		{name: "ok", code: "ok"},
		{name: "connect error", err: connect.NewError(connect.CodePermissionDenied, errors.New("nope")), code: "permission_denied"},
		{name: "plain error", err: errors.New("boom"), code: "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := interceptor(func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
				return nil, tt.err
			})
			req := connect.NewRequest(&struct{}{})
			_, _ = handler(context.Background(), req)

			got := testutil.ToFloat64(m.rpcRequests.WithLabelValues(req.Spec().Procedure, tt.code))
			if got != 1 {
				t.Errorf("rpc_requests_total{code=%s} = %v, want 1", tt.code, got)
			}
		})
	}

	if got := testutil.CollectAndCount(m.rpcRequests); got != 3 {
		t.Errorf("expected 3 code series, got %d", got)
	}
}
