package service

import (
	"time"

	"github.com/mmynk/kaskos/internal/calculator"
	"github.com/mmynk/kaskos/internal/models"
	"github.com/mmynk/kaskos/pkg/api"
)

func memberToAPI(m *models.Member) *api.Member {
	return &api.Member{
		ID:        m.ID,
		Name:      m.Name,
		Role:      string(m.Role),
		CreatedAt: time.Unix(m.CreatedAt, 0).UTC(),
	}
}

func contributionToAPI(c *models.Contribution) *api.Contribution {
	return &api.Contribution{
		ID:        c.ID,
		Member:    c.Member,
		Amount:    c.Amount,
		CreatedAt: c.CreatedAt,
		Note:      c.Note,
		Period:    c.Period.String(),
	}
}

func expenditureToAPI(e *models.Expenditure, loc *time.Location) *api.Expenditure {
	return &api.Expenditure{
		ID:          e.ID,
		Item:        e.Item,
		Amount:      e.Amount,
		PurchasedOn: e.PurchasedOn.In(loc).Format(api.DateLayout),
		RecordedBy:  e.RecordedBy,
		CreatedAt:   e.CreatedAt,
	}
}

func reportToAPI(r *calculator.Report, loc *time.Location) *api.GetReportResponse {
	resp := &api.GetReportResponse{
		Mode:           string(r.Mode),
		Period:         r.Period.String(),
		ElapsedPeriods: r.ElapsedPeriods,
		Obligation:     r.Obligation,
		TotalIn:        r.Aggregate.TotalIn,
		TotalOut:       r.Aggregate.TotalOut,
		CashPosition:   r.Aggregate.CashPosition,
		Members:        make([]*api.MemberBalance, 0, len(r.PerMember)),
		TimeSeries:     make([]*api.SeriesPoint, 0, len(r.TimeSeries)),
		Unrostered:     r.Unrostered,
	}

	for _, b := range r.PerMember {
		resp.Members = append(resp.Members, &api.MemberBalance{
			Name:        b.MemberName,
			Obligation:  b.Obligation,
			Contributed: b.Contributed,
			Balance:     b.Balance,
			Shortfall:   b.Shortfall,
			Status:      string(b.Status),
		})
	}
	for _, b := range r.PeriodMembers {
		resp.PeriodMembers = append(resp.PeriodMembers, &api.PeriodBalance{
			Name:        b.MemberName,
			Rate:        b.Rate,
			Contributed: b.Contributed,
			Shortfall:   b.Shortfall,
			Status:      string(b.Status),
		})
	}
	for _, p := range r.TimeSeries {
		resp.TimeSeries = append(resp.TimeSeries, &api.SeriesPoint{
			Date:       p.Date.In(loc).Format(api.DateLayout),
			Delta:      p.Delta,
			Cumulative: p.Cumulative,
		})
	}

	return resp
}
